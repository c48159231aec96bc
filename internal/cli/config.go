package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/phishscan/internal/config"
	"github.com/yildizm/phishscan/internal/emoji"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage phishscan configuration",
		Long: `Manage phishscan configuration files and settings.

The config command provides subcommands for initializing, viewing,
validating, and locating configuration files.`,
		// config subcommands load the configuration themselves so that an
		// invalid file can still be reported
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
			return nil
		},
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new phishscan configuration file with default values.

By default, creates a full configuration file with all options and comments.
Use --minimal for a compact configuration pointing at a Flask backend.`,
		Example: `  # Create full config in current directory
  phishscan config init

  # Create minimal config
  phishscan config init --minimal

  # Create config at specific path
  phishscan config init --path ~/.config/phishscan/config.yaml

  # Overwrite existing config
  phishscan config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".phishscan.yaml"
			}

			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			content := config.SampleConfig()
			if minimal {
				content = config.MinimalSampleConfig()
			}

			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Configuration file created at: %s\n", GetEmoji("safe"), outputPath)
			if minimal {
				fmt.Fprintf(out, "%s Created minimal configuration with essential settings\n", GetEmoji("info"))
			} else {
				fmt.Fprintf(out, "%s Created full configuration with all options and documentation\n", GetEmoji("info"))
			}

			return nil
		},
	}

	initCmd.Flags().StringVar(&outputPath, "path", "", "output path for config file (default: .phishscan.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current effective configuration after loading from all sources.

Shows the merged configuration from all sources including defaults,
config files, environment variable overrides and command line flags.
The API key is masked.`,
		Example: `  # Show config in YAML format
  phishscan config show

  # Show config in JSON format
  phishscan config show --format json

  # Show config from specific file
  phishscan config show --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			masked := *cfg
			if masked.Analysis.APIKey != "" {
				masked.Analysis.APIKey = "********"
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := json.MarshalIndent(&masked, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(&masked)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				fmt.Fprint(out, string(data))
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}

			return nil
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate a phishscan configuration file for syntax and semantic errors.

Checks the configuration file for:
- Valid YAML syntax
- Known provider, output format, color mode and theme
- An endpoint for remote providers
- Positive timeouts and a usable server address`,
		Example: `  # Validate current config
  phishscan config validate

  # Validate specific config file
  phishscan config validate --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(cmd)
			if err != nil {
				fmt.Fprintf(out, "%s Configuration validation failed:\n", GetEmoji("error"))
				fmt.Fprintf(out, "   %v\n", err)
				return err
			}

			fmt.Fprintf(out, "%s Configuration is valid\n", GetEmoji("safe"))

			ac := cfg.ToAnalysisConfig()
			fmt.Fprintf(out, "%s Configuration summary:\n", GetEmoji("info"))
			fmt.Fprintf(out, "   Version: %s\n", cfg.Version)
			fmt.Fprintf(out, "   Provider: %s\n", ac.ProviderName())
			if ac.ProviderName() != "mock" {
				fmt.Fprintf(out, "   Endpoint: %s\n", cfg.Analysis.Endpoint)
			}
			fmt.Fprintf(out, "   Timeout: %s\n", cfg.Analysis.Timeout)
			fmt.Fprintf(out, "   Output Format: %s\n", cfg.Output.DefaultFormat)
			fmt.Fprintf(out, "   Server Address: %s\n", cfg.Server.Address)

			return nil
		},
	}

	return validateCmd
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths phishscan searches for configuration files.

Shows the search order and indicates which files exist.`,
		Example: `  # Show config search paths
  phishscan config path`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration file search paths (in priority order):")
			fmt.Fprintln(out)

			priority := []string{"Highest", "Medium", "Lowest"}
			for i, path := range config.GetConfigPaths() {
				fmt.Fprintf(out, "  %d. %s %s\n", i+1, path, existsMark(fileExists(path)))
				if i < len(priority) {
					fmt.Fprintf(out, "     Priority: %s\n", priority[i])
				}
				fmt.Fprintln(out)
			}

			if currentConfig, found := config.FindConfigFile(); found {
				fmt.Fprintf(out, "%s Current config file: %s\n", GetEmoji("target"), currentConfig)
			} else {
				fmt.Fprintln(out, "No config file found, using defaults")
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "Environment variables with the %s prefix override file settings\n", config.EnvPrefix)
		},
	}

	return pathCmd
}

// Helper function to check if file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
