package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/phishscan/internal/logger"
	"github.com/yildizm/phishscan/internal/ui"
	"github.com/yildizm/phishscan/internal/workflow"
)

// runInteractive opens the full-screen scanner. Logs go to a file so they do
// not draw over the UI.
func runInteractive(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	logFile, err := openLogFile(cfg.LogFile())
	if err != nil {
		return err
	}
	defer func() {
		_ = logFile.Close()
	}()

	log := logger.NewWithWriter("tui", logger.VerboseFunc(isVerbose), logFile)

	client, err := openClient(log)
	if err != nil {
		return err
	}

	ctrl := workflow.New(client, workflow.WithLogger(log.WithComponent("workflow")))
	if err := ui.Run(ctrl, client.ProviderName(), cfg.UI.AltScreen); err != nil {
		return fmt.Errorf("interactive scanner failed: %w", err)
	}
	return nil
}
