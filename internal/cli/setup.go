package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/analysis/providers"
	"github.com/yildizm/phishscan/internal/formatter"
	"github.com/yildizm/phishscan/internal/logger"
	"github.com/yildizm/phishscan/internal/ui"
	"github.com/yildizm/phishscan/internal/workflow"
)

// GetLogger returns a stderr logger for component honoring --verbose
func GetLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// openClient builds the analysis client selected by the configuration
func openClient(log *logger.Logger) (*analysis.Client, error) {
	reg, err := providers.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to register providers: %w", err)
	}

	client, err := analysis.Open(GetGlobalConfig().ToAnalysisConfig(), reg, analysis.WithLogger(log.WithComponent("analysis")))
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis client: %w", err)
	}

	log.DebugWithFields("analysis client ready", []logger.Field{
		logger.Provider(client.ProviderName()),
		logger.F("timeout", GetGlobalConfig().Analysis.Timeout),
	})
	return client, nil
}

// openLogFile opens the log file used while the interactive UI owns the
// terminal
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// #nosec G304 - path comes from configuration
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// scanMessage runs one message through a fresh controller and reports the
// outcome
func scanMessage(ctx context.Context, analyzer workflow.Analyzer, log *logger.Logger, source, message string) *formatter.Report {
	ctrl := workflow.New(analyzer, workflow.WithLogger(log))
	defer ctrl.Dispose()

	return rescan(ctx, ctrl, source, message)
}

// rescan resets ctrl and scans message with it
func rescan(ctx context.Context, ctrl *workflow.Controller, source, message string) *formatter.Report {
	ctrl.Reset()
	ctrl.OnTextChange(message)

	report := &formatter.Report{Source: source, Message: message}

	result, err := ctrl.Scan(ctx)
	if errors.Is(err, workflow.ErrNotReady) {
		err = analysis.NewInvalidInputError("message is empty")
	}

	report.Result = result
	report.Err = err
	return report
}

// writeReports renders reports in the configured output format
func writeReports(w io.Writer, reports []*formatter.Report) error {
	f, err := formatter.New(getOutputFormat(), !ui.IsColorDisabled())
	if err != nil {
		return err
	}

	data, err := f.Format(reports)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	_, err = w.Write(data)
	return err
}

// baseContext returns the command context, or Background outside Execute
func baseContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func reportsOf(reports ...*formatter.Report) []*formatter.Report {
	return reports
}
