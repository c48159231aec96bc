package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/emoji"
	"github.com/yildizm/phishscan/internal/workflow"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Brand colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	// Verdict colors
	Safe       lipgloss.AdaptiveColor
	Suspicious lipgloss.AdaptiveColor
	Phishing   lipgloss.AdaptiveColor

	// UI colors
	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given colors
func buildTheme(name string, primary, secondary, safe, suspicious, phishing, border, muted, highlight [2]string) Theme {
	return Theme{
		Name:       name,
		Primary:    lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary:  lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Safe:       lipgloss.AdaptiveColor{Light: safe[0], Dark: safe[1]},
		Suspicious: lipgloss.AdaptiveColor{Light: suspicious[0], Dark: suspicious[1]},
		Phishing:   lipgloss.AdaptiveColor{Light: phishing[0], Dark: phishing[1]},
		Border:     lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Muted:      lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Highlight:  lipgloss.AdaptiveColor{Light: highlight[0], Dark: highlight[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#007a6e", "#009d8d"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#148a3d", "#1DB954"}, [2]string{"#b39b00", "#ffdd00"}, [2]string{"#d63031", "#ff4d4d"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#E0F2F1", "#0F3D39"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#FFFF00", "#444444"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#A0AEC0", "#718096"}, [2]string{"#F7FAFC", "#2D3748"})
)

var (
	themeMu       sync.RWMutex
	currentTheme  = DefaultTheme
	colorDisabled bool
)

// GetTheme returns the current active theme
func GetTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default", "":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// SetColorDisabled turns styling off regardless of NO_COLOR
func SetColorDisabled(disabled bool) {
	themeMu.Lock()
	defer themeMu.Unlock()
	colorDisabled = disabled
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return colorDisabled || os.Getenv("NO_COLOR") != ""
}

// VerdictStyle is the presentation of one classification
type VerdictStyle struct {
	Emoji string
	Title string
	Color lipgloss.AdaptiveColor
}

// verdictTitles is the single classification to wording table of the UI
var verdictTitles = map[analysis.Classification]struct {
	emojiKey string
	title    string
}{
	analysis.ClassificationSafe:       {"safe", "SAFE MESSAGE"},
	analysis.ClassificationSuspicious: {"suspicious", "SUSPICIOUS - Needs Review"},
	analysis.ClassificationPhishing:   {"phishing", "PHISHING DETECTED!"},
}

// GetVerdictStyle maps a classification to its presentation
func GetVerdictStyle(class analysis.Classification) VerdictStyle {
	theme := GetTheme()

	entry, ok := verdictTitles[class]
	if !ok {
		return VerdictStyle{Emoji: emoji.GetEmoji("help"), Title: class.String(), Color: theme.Secondary}
	}

	color := theme.Secondary
	switch class {
	case analysis.ClassificationSafe:
		color = theme.Safe
	case analysis.ClassificationSuspicious:
		color = theme.Suspicious
	case analysis.ClassificationPhishing:
		color = theme.Phishing
	}

	return VerdictStyle{
		Emoji: emoji.GetEmoji(entry.emojiKey),
		Title: entry.title,
		Color: color,
	}
}

// StepStyle is the presentation of one workflow state
type StepStyle struct {
	// Step is the zero-based index into the step indicator
	Step int

	// Hint is the key help shown at the bottom
	Hint string

	// InputEnabled tells whether the text box accepts typing
	InputEnabled bool
}

var stepStyles = map[workflow.State]StepStyle{
	workflow.StateIdle:        {Step: 0, Hint: "Type or paste a message • ctrl+c quit", InputEnabled: true},
	workflow.StateTextEntered: {Step: 0, Hint: "enter scan • esc clear • ctrl+c quit", InputEnabled: true},
	workflow.StateProcessing:  {Step: 1, Hint: "Scanning… • ctrl+c quit", InputEnabled: false},
	workflow.StateResult:      {Step: 2, Hint: "enter/n new scan • q quit", InputEnabled: false},
}

// GetStepStyle maps a workflow state to its presentation
func GetStepStyle(state workflow.State) StepStyle {
	if style, ok := stepStyles[state]; ok {
		return style
	}
	return stepStyles[workflow.StateIdle]
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style
	Notice lipgloss.Style
	Box    lipgloss.Style
	Input  lipgloss.Style
}

// GetStyles returns common styles based on current theme
func GetStyles() *Styles {
	theme := GetTheme()

	if IsColorDisabled() {
		plain := lipgloss.NewStyle()
		return &Styles{
			Theme:  theme,
			Title:  plain.Bold(true),
			Header: plain.Bold(true),
			Body:   plain,
			Muted:  plain,
			Notice: plain,
			Box:    plain.Border(lipgloss.NormalBorder()).Padding(1, 2),
			Input:  plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		}
	}

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Notice: lipgloss.NewStyle().
			Foreground(theme.Phishing).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),
	}
}
