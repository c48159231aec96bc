package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yildizm/phishscan/internal/formatter"
	"github.com/yildizm/phishscan/internal/workflow"
)

var (
	scanText        string
	scanLines       bool
	scanConcurrency int
	scanOutputFile  string
)

// maxMessageBytes bounds a single message read from a file or stdin
const maxMessageBytes = 1 << 20

// pendingScan is one message waiting to be analyzed
type pendingScan struct {
	source  string
	message string
}

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [file...]",
		Short: "Scan messages from arguments, files or stdin",
		Long: `Scan one or more messages and print the verdicts.

Each file is one message. With no file (or "-") the message is read from
stdin. Use --lines to treat every non-empty line as its own message.

Examples:
  phishscan scan --text "Aap ka account band ho gaya hai, link kholen"
  phishscan scan sms.txt
  cat inbox.txt | phishscan scan --lines -o csv
  phishscan scan --provider flask --endpoint http://localhost:5000/api/analyze sms.txt`,
		RunE: runScan,
	}

	cmd.Flags().StringVarP(&scanText, "text", "m", "", "message text to scan")
	cmd.Flags().BoolVarP(&scanLines, "lines", "l", false, "treat each non-empty line as a separate message")
	cmd.Flags().IntVar(&scanConcurrency, "concurrency", 4, "number of messages scanned at once")
	cmd.Flags().StringVar(&scanOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	pending, err := collectMessages(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	log := GetLogger("scan")
	client, err := openClient(log)
	if err != nil {
		return err
	}

	reports, err := scanAll(baseContext(cmd), client, pending)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scanOutputFile != "" {
		file, err := createOutputFile(scanOutputFile)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				log.Warn("failed to close output file: %v", cerr)
			}
		}()
		out = file
	}

	if err := writeReports(out, reports); err != nil {
		return err
	}

	if failed := countFailed(reports); failed > 0 {
		return fmt.Errorf("%d of %d scans failed", failed, len(reports))
	}
	return nil
}

// collectMessages gathers the messages named by the flags and arguments
func collectMessages(stdin io.Reader, args []string) ([]pendingScan, error) {
	if scanText != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("--text cannot be combined with file arguments")
		}
		return nonEmpty(splitMessages("text", scanText))
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	var pending []pendingScan
	for _, arg := range args {
		content, source, err := readInput(stdin, arg)
		if err != nil {
			return nil, err
		}
		split, err := splitMessages(source, content)
		if err != nil {
			return nil, err
		}
		pending = append(pending, split...)
	}

	return nonEmpty(pending, nil)
}

// nonEmpty rejects a batch with nothing to scan
func nonEmpty(pending []pendingScan, err error) ([]pendingScan, error) {
	if err != nil {
		return nil, err
	}

	if len(pending) == 0 {
		return nil, fmt.Errorf("no messages to scan")
	}
	return pending, nil
}

// splitMessages applies --lines to content read from source
func splitMessages(source, content string) ([]pendingScan, error) {
	if !scanLines {
		return []pendingScan{{source: source, message: content}}, nil
	}

	var pending []pendingScan
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 64*1024), maxMessageBytes)

	line := 0
	for scanner.Scan() {
		line++
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			pending = append(pending, pendingScan{source: fmt.Sprintf("%s:%d", source, line), message: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to split %s into lines: %w", source, err)
	}
	return pending, nil
}

// readInput reads a whole message from a file or stdin ("-")
func readInput(stdin io.Reader, arg string) (string, string, error) {
	if arg == "-" {
		data, err := io.ReadAll(io.LimitReader(stdin, maxMessageBytes))
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	if err := validateMessageFilePath(arg); err != nil {
		return "", "", fmt.Errorf("invalid file path: %w", err)
	}

	// #nosec G304 - path is validated above
	file, err := os.Open(arg)
	if err != nil {
		return "", "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxMessageBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", arg, err)
	}
	return string(data), filepath.Base(arg), nil
}

// scanAll scans pending with bounded concurrency, keeping input order
func scanAll(ctx context.Context, analyzer workflow.Analyzer, pending []pendingScan) ([]*formatter.Report, error) {
	log := GetLogger("scan")
	reports := make([]*formatter.Report, len(pending))

	limit := scanConcurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, p := range pending {
		g.Go(func() error {
			reports[i] = scanMessage(gctx, analyzer, log, p.source, p.message)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func countFailed(reports []*formatter.Report) int {
	failed := 0
	for _, r := range reports {
		if r.Result == nil {
			failed++
		}
	}
	return failed
}

// createOutputFile creates the --output-file target and its directory
func createOutputFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// #nosec G304 - output path chosen by the user
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}

// validateMessageFilePath validates that a file path is safe to read
func validateMessageFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, must be a file", path)
	}

	return nil
}
