package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/emoji"
	"github.com/yildizm/phishscan/internal/ui/components"
	"github.com/yildizm/phishscan/internal/workflow"
)

const placeholder = "Paste a suspicious SMS or WhatsApp message here..."

// ScanModel is the bubbletea front end of a workflow controller
type ScanModel struct {
	ctrl     *workflow.Controller
	ctx      context.Context
	cancel   context.CancelFunc
	provider string

	width    int
	height   int
	ready    bool
	quitting bool

	spinner *components.Spinner
}

// NewScanModel creates a model driving ctrl. provider is only displayed.
func NewScanModel(ctrl *workflow.Controller, provider string) *ScanModel {
	ctx, cancel := context.WithCancel(context.Background())
	return &ScanModel{
		ctrl:     ctrl,
		ctx:      ctx,
		cancel:   cancel,
		provider: provider,
		spinner:  components.NewSpinner(GetTheme().Primary),
	}
}

// Init initializes the scan model
func (m *ScanModel) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m *ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		m.spinner.Tick()
		return m, tick()
	case scanOutcomeMsg:
		m.ctrl.Resolve(msg.outcome)
	}

	return m, nil
}

// handleKeyPress dispatches keys by workflow state
func (m *ScanModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}

	switch m.ctrl.State() {
	case workflow.StateResult:
		return m.handleResultKey(msg)
	case workflow.StateProcessing:
		return m, nil
	default:
		return m.handleInputKey(msg)
	}
}

func (m *ScanModel) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "n", "r":
		m.ctrl.Reset()
	case "q", "esc":
		return m.handleQuit()
	}
	return m, nil
}

func (m *ScanModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	message := m.ctrl.Snapshot().Message

	switch msg.Type {
	case tea.KeyEnter:
		return m.handleSubmit()
	case tea.KeyEsc, tea.KeyCtrlU:
		m.ctrl.OnTextChange("")
	case tea.KeyBackspace:
		if runes := []rune(message); len(runes) > 0 {
			m.ctrl.OnTextChange(string(runes[:len(runes)-1]))
		}
	case tea.KeySpace:
		m.ctrl.OnTextChange(message + " ")
	case tea.KeyCtrlJ:
		m.ctrl.OnTextChange(message + "\n")
	case tea.KeyRunes:
		m.ctrl.OnTextChange(message + string(msg.Runes))
	}

	return m, nil
}

// handleSubmit starts the analysis if the controller accepts it
func (m *ScanModel) handleSubmit() (tea.Model, tea.Cmd) {
	job, ok := m.ctrl.Submit()
	if !ok {
		return m, nil
	}

	m.spinner.Restart()
	return m, runJobCommand(m.ctx, job)
}

// handleQuit tears the workflow down so a late outcome is ignored
func (m *ScanModel) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.ctrl.Dispose()
	m.cancel()
	return m, tea.Quit
}

// View renders the scan model
func (m *ScanModel) View() string {
	if m.quitting {
		return ""
	}

	styles := GetStyles()
	snap := m.ctrl.Snapshot()
	step := GetStepStyle(snap.State)

	title := styles.Title.Render(emoji.GetEmoji("shield") + " PhishScan")
	subtitle := styles.Muted.Render("Roman Urdu phishing message detector")

	indicator := &components.StepIndicator{
		Current:       step.Step,
		ActiveColor:   styles.Theme.Primary,
		DoneColor:     styles.Theme.Safe,
		PendingColor:  styles.Theme.Muted,
		DoneMarker:    emoji.GetEmoji("step_done"),
		PendingMarker: emoji.GetEmoji("step_todo"),
	}

	var body string
	switch snap.State {
	case workflow.StateProcessing:
		body = m.renderProcessing(styles)
	case workflow.StateResult:
		body = RenderResultCard(snap.Result, m.contentWidth())
	default:
		body = m.renderInput(styles, snap, step)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subtitle,
		"",
		indicator.Render(),
		"",
		body,
		"",
		styles.Muted.Render(step.Hint),
	)

	if !m.ready {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, styles.Box.Render(content))
}

func (m *ScanModel) renderInput(styles *Styles, snap workflow.Snapshot, step StepStyle) string {
	text := snap.Message
	if text == "" {
		text = styles.Muted.Render(placeholder)
	} else if step.InputEnabled {
		text += "█"
	}

	lines := []string{
		styles.Header.Render(emoji.GetEmoji("message") + " Paste Message"),
		styles.Input.Width(m.contentWidth()).Render(text),
	}

	if snap.Notice != "" {
		lines = append(lines, "", styles.Notice.Render(emoji.GetEmoji("error")+" "+snap.Notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *ScanModel) renderProcessing(styles *Styles) string {
	m.spinner.SetLabel("Analyzing message...")
	elapsed := styles.Muted.Render(fmt.Sprintf("%s %s elapsed", emoji.GetEmoji("clock"), components.FormatDuration(m.spinner.Elapsed())))

	via := ""
	if m.provider != "" {
		via = styles.Muted.Render(emoji.GetEmoji("brain") + " via " + m.provider)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.spinner.Render(), elapsed, via)
}

func (m *ScanModel) contentWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(20, min(m.width-12, 72))
}

// RenderResultCard renders a result as the bordered verdict card
func RenderResultCard(result *analysis.Result, width int) string {
	if result == nil {
		return ""
	}

	styles := GetStyles()
	verdict := GetVerdictStyle(result.Classification)

	headline := lipgloss.NewStyle().Foreground(verdict.Color).Bold(true)
	bar := components.NewConfidenceBar(30, verdict.Color)
	if IsColorDisabled() {
		headline = lipgloss.NewStyle().Bold(true)
		bar.Plain = true
	}

	lines := []string{
		headline.Render(verdict.Emoji + " " + verdict.Title),
		"",
		"Confidence: " + bar.Render(result.Confidence),
	}

	if details := strings.TrimSpace(result.Details); details != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(details))
	}

	meta := result.Timestamp.Format(time.DateTime)
	if result.Provider != "" {
		meta += " • " + result.Provider
	}
	lines = append(lines, "", styles.Muted.Render(emoji.GetEmoji("clock")+" "+meta))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(verdict.Color).
		Padding(0, 1)
	if IsColorDisabled() {
		card = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	}

	return card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Run runs the interactive scan wizard until the user quits
func Run(ctrl *workflow.Controller, provider string, altScreen bool) error {
	model := NewScanModel(ctrl, provider)

	var opts []tea.ProgramOption
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	_, err := tea.NewProgram(model, opts...).Run()
	return err
}
