package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/phishscan/internal/analysis"
)

// Report is one scanned message and its outcome
type Report struct {
	// Source names where the message came from (file path, "stdin", ...)
	Source string

	Message string
	Result  *analysis.Result

	// Err is set when the scan failed; only its user message is rendered
	Err error
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(reports []*Report) ([]byte, error)
}

// New returns the formatter for format
func New(format string, color bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	case "text", "":
		return NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Formats lists the accepted output format names
func Formats() []string {
	return []string{"text", "json", "markdown", "csv"}
}
