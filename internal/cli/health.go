package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/logger"
)

// healthReport is the JSON shape of the health command
type healthReport struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Endpoint string `json:"endpoint,omitempty"`
	Latency  string `json:"latency"`
	Error    string `json:"error,omitempty"`
}

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the analysis backend is reachable",
		Long: `Probe the configured analysis provider. Flask and HTTP backends are
asked on their health endpoint, ollama must list the configured model, and the
mock is always healthy.

Examples:
  phishscan health --provider flask --endpoint http://localhost:5000/api/analyze
  phishscan health -o json`,
		Args: cobra.NoArgs,
		RunE: runHealth,
	}
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := GetLogger("health")

	client, err := openClient(log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(baseContext(cmd), cfg.Analysis.Timeout)
	defer cancel()

	start := time.Now()
	checkErr := client.HealthCheck(ctx)

	report := healthReport{
		Status:   "healthy",
		Provider: client.ProviderName(),
		Latency:  time.Since(start).Round(time.Millisecond).String(),
	}
	if client.ProviderName() != analysis.ProviderMock {
		report.Endpoint = cfg.Analysis.Endpoint
	}
	if checkErr != nil {
		log.DebugWithFields("health check failed", []logger.Field{
			logger.Provider(report.Provider),
			logger.Error(checkErr),
		})
		report.Status = "unhealthy"
		report.Error = analysis.UserMessage(checkErr)
	}

	out := cmd.OutOrStdout()
	if getOutputFormat() == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal health report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else if checkErr != nil {
		fmt.Fprintf(out, "%s %s is unhealthy: %s\n", GetEmoji("error"), report.Provider, report.Error)
	} else {
		fmt.Fprintf(out, "%s %s is healthy (%s)\n", GetEmoji("safe"), report.Provider, report.Latency)
	}

	if checkErr != nil {
		return fmt.Errorf("analysis backend is unhealthy")
	}
	return nil
}
