package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/phishscan/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(reports []*Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)

	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		f.writeReport(&b, r)
	}

	if len(reports) > 1 {
		f.writeSummary(&b, summarize(reports))
	}

	return []byte(b.String()), nil
}

// writeHeader writes a boxed header
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Phishing Scan Report"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeReport writes one verdict with tree-style details using go-termfmt
func (f *terminalFormatter) writeReport(b *strings.Builder, r *Report) {
	if r.Source != "" {
		fmt.Fprintf(b, "%s %s\n", emoji.GetEmoji("message"), r.Source)
	}

	if r.Result == nil {
		fmt.Fprintf(b, "%s %s\n", emoji.GetEmoji("error"), errorText(r))
		return
	}

	res := r.Result
	fmt.Fprintf(b, "%s %s\n", verdictEmoji(res.Classification), verdictTitle(res.Classification))

	items := []termfmt.TreeItem{
		{Label: "Classification", Value: res.Classification.String()},
		{Label: "Confidence", Value: fmt.Sprintf("%s %.1f%%", termfmt.CreateConfidenceBar(res.Confidence/100, f.opts), res.Confidence)},
	}
	if res.Details != "" {
		items = append(items, termfmt.TreeItem{Label: "Details", Value: res.Details})
	}
	if res.Provider != "" {
		items = append(items, termfmt.TreeItem{Label: "Provider", Value: res.Provider})
	}
	items = append(items, termfmt.TreeItem{Label: "Scanned", Value: res.Timestamp.Format(time.DateTime), Last: true})

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

// writeSummary writes totals for a batch
func (f *terminalFormatter) writeSummary(b *strings.Builder, s Summary) {
	fmt.Fprintf(b, "\n%s Summary\n", emoji.GetEmoji("shield"))

	items := []termfmt.TreeItem{
		{Label: "Scanned", Value: fmt.Sprintf("%d", s.Total)},
		{Label: "Safe", Value: fmt.Sprintf("%d", s.Safe)},
		{Label: "Suspicious", Value: fmt.Sprintf("%d", s.Suspicious)},
		{Label: "Phishing", Value: fmt.Sprintf("%d", s.Phishing)},
		{Label: "Failed", Value: fmt.Sprintf("%d", s.Failed), Last: true},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}
