package cli

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/config"
	"github.com/yildizm/phishscan/internal/emoji"
	"github.com/yildizm/phishscan/internal/ui"
)

var (
	cfgFile      string
	verbose      bool
	noColor      bool
	noEmoji      bool
	outputFmt    string
	useMock      bool
	providerName string
	endpointURL  string
	timeout      time.Duration

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "phishscan",
		Short: "Roman Urdu phishing message scanner",
		Long: `phishscan checks SMS and chat messages written in Roman Urdu for
phishing. Paste a message, wait for the analysis, and read the verdict.

Without a subcommand it opens the interactive scanner. Messages can also be
scanned from files or stdin, watched for changes, or served over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			globalConfig = cfg

			emoji.SetEmojiDisabled(noEmoji || !cfg.Output.Emoji)
			ui.SetColorDisabled(!colorEnabled(cfg))
			if !ui.SetThemeByName(cfg.UI.Theme) {
				return fmt.Errorf("unknown theme: %s", cfg.UI.Theme)
			}
			return nil
		},
		RunE: runInteractive,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file path")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	flags.StringVarP(&outputFmt, "output", "o", "text", "output format (text, json, markdown, csv)")
	flags.BoolVar(&useMock, "mock", false, "use simulated verdicts instead of a backend")
	flags.StringVarP(&providerName, "provider", "p", "", "analysis provider (mock, http, flask, huggingface, ollama)")
	flags.StringVarP(&endpointURL, "endpoint", "e", "", "analysis endpoint URL")
	flags.DurationVarP(&timeout, "timeout", "t", 0, "request timeout (e.g. 30s)")

	// Add subcommands
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newHealthCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "phishscan %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadConfig loads the configuration and applies command line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	applyFlagOverrides(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command line options: %w", err)
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags over the loaded config
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}

	if changed("provider") {
		cfg.Analysis.Provider = providerName
		cfg.Analysis.UseMock = providerName == "mock"
	}
	if changed("mock") && useMock {
		cfg.Analysis.Provider = analysis.ProviderMock
		cfg.Analysis.UseMock = true
	}
	if changed("endpoint") {
		cfg.Analysis.Endpoint = endpointURL
	}
	if changed("timeout") {
		cfg.Analysis.Timeout = timeout
	}
	if changed("output") {
		cfg.Output.DefaultFormat = outputFmt
	}
	if changed("verbose") {
		cfg.Output.Verbose = verbose
	}
	if changed("no-color") && noColor {
		cfg.Output.ColorMode = "never"
	}
}

// colorEnabled resolves the color mode against the terminal
func colorEnabled(cfg *config.Config) bool {
	switch cfg.Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

// GetGlobalConfig returns the configuration loaded for the running command
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		globalConfig = config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose || GetGlobalConfig().Output.Verbose
}

func getOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}
