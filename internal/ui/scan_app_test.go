package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/workflow"
)

type fixedAnalyzer struct {
	result *analysis.Result
	err    error
}

func (f *fixedAnalyzer) Analyze(ctx context.Context, message string) (*analysis.Result, error) {
	return f.result, f.err
}

func newTestModel(a workflow.Analyzer) (*ScanModel, *workflow.Controller) {
	SetColorDisabled(true)
	ctrl := workflow.New(a)
	return NewScanModel(ctrl, "mock"), ctrl
}

func typeText(m *ScanModel, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func press(m *ScanModel, key tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: key})
	return cmd
}

func TestScanModel_FullScan(t *testing.T) {
	defer SetColorDisabled(false)

	result := &analysis.Result{
		Classification: analysis.ClassificationPhishing,
		Confidence:     92,
		Details:        "Asks for identity documents",
		Timestamp:      time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		Provider:       "mock",
	}
	m, ctrl := newTestModel(&fixedAnalyzer{result: result})

	if !strings.Contains(m.View(), placeholder) {
		t.Error("Expected placeholder in idle view")
	}

	typeText(m, "Apni ID yahan bhejein")
	if ctrl.State() != workflow.StateTextEntered {
		t.Fatalf("Expected TextEntered, got %s", ctrl.State())
	}

	cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("Expected a command to run the scan")
	}
	if ctrl.State() != workflow.StateProcessing {
		t.Fatalf("Expected Processing, got %s", ctrl.State())
	}
	if !strings.Contains(m.View(), "Analyzing message") {
		t.Error("Expected processing view")
	}

	typeText(m, "ignored")
	if ctrl.Snapshot().Message != "Apni ID yahan bhejein" {
		t.Error("Typing while processing must be ignored")
	}

	m.Update(cmd())
	if ctrl.State() != workflow.StateResult {
		t.Fatalf("Expected Result, got %s", ctrl.State())
	}

	view := m.View()
	for _, want := range []string{"PHISHING DETECTED!", "92.0%", "Asks for identity documents", "Check Result"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in result view", want)
		}
	}

	press(m, tea.KeyEnter)
	snap := ctrl.Snapshot()
	if snap.State != workflow.StateIdle || snap.Message != "" || snap.Result != nil {
		t.Errorf("Expected reset to Idle, got %+v", snap)
	}
}

func TestScanModel_FailureShowsNotice(t *testing.T) {
	defer SetColorDisabled(false)

	m, ctrl := newTestModel(&fixedAnalyzer{err: analysis.NewStatusError("flask", 502, "upstream exploded")})

	typeText(m, "Hello dost")
	cmd := press(m, tea.KeyEnter)
	m.Update(cmd())

	if ctrl.State() != workflow.StateTextEntered {
		t.Fatalf("Expected TextEntered, got %s", ctrl.State())
	}

	view := m.View()
	if !strings.Contains(view, "Cannot reach analysis service") {
		t.Errorf("Expected user-facing notice in %q", view)
	}
	if strings.Contains(view, "upstream exploded") {
		t.Error("Raw error detail must not be shown")
	}
	if !strings.Contains(view, "Hello dost") {
		t.Error("Expected typed text to be kept")
	}
}

func TestScanModel_Editing(t *testing.T) {
	defer SetColorDisabled(false)

	m, ctrl := newTestModel(&fixedAnalyzer{})

	typeText(m, "ab")
	press(m, tea.KeySpace)
	typeText(m, "c")
	if got := ctrl.Snapshot().Message; got != "ab c" {
		t.Errorf("Expected 'ab c', got %q", got)
	}

	press(m, tea.KeyBackspace)
	if got := ctrl.Snapshot().Message; got != "ab " {
		t.Errorf("Expected 'ab ', got %q", got)
	}

	press(m, tea.KeyEsc)
	if ctrl.State() != workflow.StateIdle || ctrl.Snapshot().Message != "" {
		t.Error("Expected esc to clear the message")
	}

	if cmd := press(m, tea.KeyEnter); cmd != nil {
		t.Error("Expected enter on empty input to do nothing")
	}
}

func TestScanModel_QuitDisposes(t *testing.T) {
	defer SetColorDisabled(false)

	m, ctrl := newTestModel(&fixedAnalyzer{result: &analysis.Result{Classification: analysis.ClassificationSafe, Confidence: 95}})

	typeText(m, "salam")
	cmd := press(m, tea.KeyEnter)

	if quit := press(m, tea.KeyCtrlC); quit == nil {
		t.Fatal("Expected quit command")
	}

	m.Update(cmd())
	if ctrl.State() != workflow.StateProcessing {
		t.Errorf("Outcome after quit must be ignored, got %s", ctrl.State())
	}
}

func TestGetVerdictStyle(t *testing.T) {
	tests := []struct {
		class analysis.Classification
		title string
	}{
		{analysis.ClassificationSafe, "SAFE MESSAGE"},
		{analysis.ClassificationSuspicious, "SUSPICIOUS - Needs Review"},
		{analysis.ClassificationPhishing, "PHISHING DETECTED!"},
	}

	for _, tt := range tests {
		if got := GetVerdictStyle(tt.class).Title; got != tt.title {
			t.Errorf("GetVerdictStyle(%s) = %q, want %q", tt.class, got, tt.title)
		}
	}

	if GetVerdictStyle(analysis.ClassificationSafe).Color == GetVerdictStyle(analysis.ClassificationPhishing).Color {
		t.Error("Expected distinct colors for SAFE and PHISHING")
	}
}

func TestGetStepStyle(t *testing.T) {
	if GetStepStyle(workflow.StateProcessing).Step != 1 {
		t.Error("Expected Processing to be step 1")
	}
	if GetStepStyle(workflow.StateResult).InputEnabled {
		t.Error("Expected input disabled in Result")
	}
	if !GetStepStyle(workflow.StateTextEntered).InputEnabled {
		t.Error("Expected input enabled in TextEntered")
	}
}

func TestSetThemeByName(t *testing.T) {
	defer SetThemeByName("default")

	if !SetThemeByName("minimal") || GetTheme().Name != "minimal" {
		t.Error("Expected minimal theme to be selected")
	}
	if SetThemeByName("neon") {
		t.Error("Expected unknown theme to be rejected")
	}
}
