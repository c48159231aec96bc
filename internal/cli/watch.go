package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yildizm/phishscan/internal/logger"
	"github.com/yildizm/phishscan/internal/workflow"
)

var (
	watchDebounce time.Duration
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Rescan a message file whenever it changes",
		Long: `Watch a file holding one message and scan it again every time it is
saved. Useful while drafting test messages in an editor or when another tool
drops the latest SMS into a file. Press Ctrl+C to stop watching.

Examples:
  phishscan watch sms.txt
  phishscan watch --mock -o json latest.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().DurationVar(&watchDebounce, "debounce", 250*time.Millisecond, "wait this long after the last write before scanning")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := filepath.Clean(args[0])

	if err := validateWatchFilePath(filename); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	log := GetLogger("watch")
	client, err := openClient(log)
	if err != nil {
		return err
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher, log)

	ctx, stop := signal.NotifyContext(baseContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := &fileWatcher{
		path:     filename,
		ctrl:     workflow.New(client, workflow.WithLogger(log)),
		out:      cmd.OutOrStdout(),
		log:      log,
		debounce: watchDebounce,
	}
	defer w.ctrl.Dispose()

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Watching %s (Ctrl+C to stop)\n", GetEmoji("watch"), filename)

	// scan what is already there before waiting for changes
	w.scan(ctx)

	return w.run(ctx, watcher)
}

// fileWatcher rescans one file through a single controller
type fileWatcher struct {
	path     string
	ctrl     *workflow.Controller
	out      io.Writer
	log      *logger.Logger
	debounce time.Duration

	last string
}

// run is the main watch loop
func (w *fileWatcher) run(ctx context.Context, watcher *fsnotify.Watcher) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("stopping watch: %v", ctx.Err())
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			w.scan(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)
		}
	}
}

// relevant reports whether event changed the watched file. Editors that save
// by renaming a temp file show up as Create on the directory watch.
func (w *fileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// scan reads the file and scans it when the content changed
func (w *fileWatcher) scan(ctx context.Context) {
	// #nosec G304 - path is validated by validateWatchFilePath
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.log.Warn("failed to read %s: %v", w.path, err)
		return
	}

	message := string(data)
	if message == w.last || strings.TrimSpace(message) == "" {
		return
	}

	report := rescan(ctx, w.ctrl, filepath.Base(w.path), message)
	if err := writeReports(w.out, reportsOf(report)); err != nil {
		w.log.Error("failed to write report: %v", err)
	}

	// a failed scan is retried on the next save even if the text is the same
	if report.Err == nil {
		w.last = message
	}
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Warn("failed to close watcher: %v", err)
	}
}

// createWatcher watches the directory holding filename so that atomic saves
// are seen
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
