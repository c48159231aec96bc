package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ConfidenceBar renders a percentage in [0,100] as a filled bar
type ConfidenceBar struct {
	Width int
	Color lipgloss.TerminalColor
	Plain bool
}

// NewConfidenceBar creates a new confidence bar
func NewConfidenceBar(width int, color lipgloss.TerminalColor) *ConfidenceBar {
	return &ConfidenceBar{
		Width: width,
		Color: color,
	}
}

// Render renders the bar followed by the percentage
func (b *ConfidenceBar) Render(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filledWidth := int(float64(b.Width)*percent/100 + 0.5)
	emptyWidth := b.Width - filledWidth

	percentText := fmt.Sprintf("%.1f%%", percent)

	if b.Plain {
		return fmt.Sprintf("[%s%s] %s", strings.Repeat("#", filledWidth), strings.Repeat("-", emptyWidth), percentText)
	}

	fillStyle := lipgloss.NewStyle().Foreground(b.Color).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	bar := fillStyle.Render(strings.Repeat("█", filledWidth)) + mutedStyle.Render(strings.Repeat("░", emptyWidth))
	return bar + " " + fillStyle.Render(percentText)
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame     int
	StartTime time.Time
	Label     string
	Color     lipgloss.TerminalColor
}

// NewSpinner creates a new spinner
func NewSpinner(color lipgloss.TerminalColor) *Spinner {
	return &Spinner{
		StartTime: time.Now(),
		Color:     color,
	}
}

// SetLabel sets the spinner label
func (s *Spinner) SetLabel(label string) {
	s.Label = label
}

// Restart resets the frame and elapsed time
func (s *Spinner) Restart() {
	s.Frame = 0
	s.StartTime = time.Now()
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Elapsed returns the time since the spinner was started
func (s *Spinner) Elapsed() time.Duration {
	return time.Since(s.StartTime)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	style := lipgloss.NewStyle().Foreground(s.Color).Bold(true)
	spinner := style.Render(spinnerFrames[s.Frame])

	if s.Label != "" {
		return fmt.Sprintf("%s %s", spinner, s.Label)
	}

	return spinner
}

// FormatDuration formats a duration for display
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}
