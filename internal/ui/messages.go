package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/TextLens/internal/results"
)

// Messages sent by ProgramSurface when the controller updates the display
type (
	entriesMsg struct {
		entries []results.Entry
	}

	errorBannerMsg struct {
		message string
		visible bool
	}

	emptyStateMsg bool

	clearResultsMsg bool

	charCountMsg int

	busyMsg bool
)

// analysisDoneMsg is returned by the command that ran an analysis
type analysisDoneMsg struct {
	all bool
	err error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
