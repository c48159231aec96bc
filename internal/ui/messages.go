package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/phishscan/internal/workflow"
)

// scanOutcomeMsg carries a finished job back into the update loop
type scanOutcomeMsg struct {
	outcome workflow.Outcome
}

// Animation message
type tickMsg time.Time

// Animation command
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runJobCommand runs job off the update loop
func runJobCommand(ctx context.Context, job *workflow.Job) tea.Cmd {
	return func() tea.Msg {
		return scanOutcomeMsg{outcome: job.Run(ctx)}
	}
}
