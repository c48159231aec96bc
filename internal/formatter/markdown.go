package formatter

import (
	"fmt"
	"strings"
	"time"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	now func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{now: time.Now}
}

func (f *markdownFormatter) Format(reports []*Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Phishing Scan Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05"))

	f.writeSummaryTable(&b, summarize(reports))

	b.WriteString("## Scans\n\n")
	for i, r := range reports {
		f.writeScanSection(&b, i+1, r)
	}

	return []byte(b.String()), nil
}

// writeSummaryTable writes totals as a table
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, s Summary) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Verdict | Count |\n")
	b.WriteString("|---------|-------|\n")
	fmt.Fprintf(b, "| Safe | %d |\n", s.Safe)
	fmt.Fprintf(b, "| Suspicious | %d |\n", s.Suspicious)
	fmt.Fprintf(b, "| Phishing | %d |\n", s.Phishing)
	fmt.Fprintf(b, "| Failed | %d |\n", s.Failed)
	fmt.Fprintf(b, "| **Total** | %d |\n\n", s.Total)
}

// writeScanSection writes one scan with the message quoted
func (f *markdownFormatter) writeScanSection(b *strings.Builder, n int, r *Report) {
	title := fmt.Sprintf("Scan %d", n)
	if r.Source != "" {
		title += ": " + r.Source
	}

	if r.Result == nil {
		fmt.Fprintf(b, "### %s\n\n", title)
		fmt.Fprintf(b, "**Error**: %s\n\n", errorText(r))
		f.writeQuote(b, r.Message)
		return
	}

	res := r.Result
	fmt.Fprintf(b, "### %s %s\n\n", verdictEmoji(res.Classification), title)
	fmt.Fprintf(b, "**Verdict**: %s\n\n", verdictTitle(res.Classification))
	fmt.Fprintf(b, "**Confidence**: %s %.1f%%\n\n", createConfidenceBar(res.Confidence), res.Confidence)
	if res.Details != "" {
		fmt.Fprintf(b, "**Details**: %s\n\n", res.Details)
	}
	if res.Provider != "" {
		fmt.Fprintf(b, "**Provider**: %s | **Scanned**: %s\n\n", res.Provider, res.Timestamp.Format("2006-01-02 15:04:05"))
	}

	f.writeQuote(b, r.Message)
}

func (f *markdownFormatter) writeQuote(b *strings.Builder, message string) {
	if message == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(message, "\n"), "\n") {
		b.WriteString("> " + line + "\n")
	}
	b.WriteString("\n")
}
