package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StepLabels are the wizard steps in order
var StepLabels = []string{"Paste Message", "Processing", "Check Result"}

// StepIndicator renders the wizard progress as a row of numbered steps
type StepIndicator struct {
	// Current is the zero-based active step
	Current int

	ActiveColor   lipgloss.TerminalColor
	DoneColor     lipgloss.TerminalColor
	PendingColor  lipgloss.TerminalColor
	DoneMarker    string
	PendingMarker string
}

// Render renders the steps separated by connectors
func (s *StepIndicator) Render() string {
	parts := make([]string, 0, len(StepLabels)*2)

	for i, label := range StepLabels {
		marker := s.PendingMarker
		style := lipgloss.NewStyle().Foreground(s.PendingColor)

		switch {
		case i < s.Current:
			marker = s.DoneMarker
			style = lipgloss.NewStyle().Foreground(s.DoneColor)
		case i == s.Current:
			marker = s.DoneMarker
			style = lipgloss.NewStyle().Foreground(s.ActiveColor).Bold(true)
		}

		parts = append(parts, style.Render(marker+" "+label))

		if i < len(StepLabels)-1 {
			connector := lipgloss.NewStyle().Foreground(s.PendingColor)
			if i < s.Current {
				connector = lipgloss.NewStyle().Foreground(s.DoneColor)
			}
			parts = append(parts, connector.Render(" "+strings.Repeat("─", 3)+" "))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
