package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/controller"
	"github.com/yildizm/TextLens/internal/emoji"
	"github.com/yildizm/TextLens/internal/formatter"
	"github.com/yildizm/TextLens/internal/logger"
	"github.com/yildizm/TextLens/internal/results"
	"github.com/yildizm/TextLens/internal/ui/components"
)

// Options configures the interactive model
type Options struct {
	Theme  Theme
	Color  bool
	Logger *logger.Logger
}

// Model is the interactive TUI. It edits the controller's text, triggers
// analyses in commands and mirrors the result sink.
type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	styles *Styles
	list   formatter.Formatter
	log    *logger.Logger

	input     []rune
	kinds     []analysis.Kind
	kindIndex int
	charCount int
	busy      bool

	entries      []results.Entry
	errMessage   string
	errVisible   bool
	emptyVisible bool
	clearVisible bool

	spinner *components.Spinner
	viewer  *components.Viewer

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates a model showing the controller's current state
func NewModel(ctx context.Context, ctrl *controller.Controller, opts Options) *Model {
	if opts.Theme.Name == "" {
		opts.Theme = DefaultTheme
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	styles := NewStyles(opts.Theme, opts.Color)

	m := &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		styles:  styles,
		list:    formatter.NewTerminal(opts.Color),
		log:     opts.Logger.WithComponent("ui"),
		kinds:   analysis.Kinds(),
		spinner: components.NewSpinner(styles.Progress),
		viewer:  components.NewViewer("Results", 10),
	}
	m.syncFromController()
	return m
}

// Init starts the animation tick
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.busy {
			m.spinner.Tick()
		}
		return m, tick()

	case entriesMsg:
		m.setEntries(msg.entries)

	case errorBannerMsg:
		m.errMessage = msg.message
		m.errVisible = msg.visible

	case emptyStateMsg:
		m.emptyVisible = bool(msg)

	case clearResultsMsg:
		m.clearVisible = bool(msg)

	case charCountMsg:
		m.charCount = int(msg)

	case busyMsg:
		m.busy = bool(msg)

	case analysisDoneMsg:
		m.busy = false
		if msg.err != nil && !errors.Is(msg.err, analysis.ErrBusy) {
			m.log.Debug("analysis finished with error: %v", msg.err)
		}
		m.syncFromController()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.selectKind(1)
	case "shift+tab":
		m.selectKind(-1)

	case "ctrl+s":
		return m, m.analyze(false)
	case "ctrl+a":
		return m, m.analyze(true)

	case "ctrl+l":
		if m.ctrl.ClearAll() {
			m.input = nil
			m.syncFromController()
		}
	case "ctrl+r":
		if m.ctrl.ClearResults() {
			m.syncFromController()
		}

	case "up":
		m.viewer.ScrollUp(1)
	case "down":
		m.viewer.ScrollDown(1)
	case "pgup":
		m.viewer.ScrollUp(m.viewer.Height)
	case "pgdown":
		m.viewer.ScrollDown(m.viewer.Height)

	case "backspace":
		if len(m.input) > 0 {
			m.edit(m.input[:len(m.input)-1])
		}
	case "enter":
		m.edit(append(cloneRunes(m.input), '\n'))
	case " ":
		m.edit(append(cloneRunes(m.input), ' '))

	default:
		if msg.Type == tea.KeyRunes && !msg.Alt {
			m.edit(append(cloneRunes(m.input), msg.Runes...))
		}
	}
	return m, nil
}

// edit replaces the input unless the controller is busy
func (m *Model) edit(next []rune) {
	if !m.ctrl.SetText(string(next)) {
		return
	}
	m.input = next
	m.charCount = m.ctrl.Snapshot().CharCount
}

func (m *Model) selectKind(step int) {
	n := len(m.kinds)
	next := ((m.kindIndex+step)%n + n) % n
	if m.ctrl.SelectKind(m.kinds[next]) {
		m.kindIndex = next
	}
}

// analyze runs the selected kind, or every kind, in a command
func (m *Model) analyze(all bool) tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	if all {
		m.spinner.Start("Running all analyses")
	} else {
		m.spinner.Start(fmt.Sprintf("Running %s", strings.ToLower(m.kinds[m.kindIndex].Label())))
	}

	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		var err error
		if all {
			err = ctrl.SubmitAll(ctx)
		} else {
			err = ctrl.Submit(ctx)
		}
		return analysisDoneMsg{all: all, err: err}
	}
}

// syncFromController reads state directly so the model is correct even
// when surface messages were dropped
func (m *Model) syncFromController() {
	snap := m.ctrl.Snapshot()
	m.input = []rune(snap.Text)
	m.charCount = snap.CharCount
	m.busy = snap.Busy
	if idx := snap.SelectedKind.Index(); idx >= 0 {
		m.kindIndex = idx
	}

	sink := m.ctrl.Sink()
	m.errMessage, m.errVisible = sink.Error()
	m.setEntries(sink.Entries())
	m.emptyVisible = len(m.entries) == 0
	m.clearVisible = len(m.entries) > 0
}

func (m *Model) setEntries(entries []results.Entry) {
	m.entries = entries
	content, err := m.list.Format(entries)
	if err != nil {
		m.log.Warn("failed to render results: %v", err)
		return
	}
	m.viewer.SetContent(string(content))
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return m.styles.Success.Render("Thanks for using TextLens!") + "\n"
	}
	if !m.ready {
		return "Initializing..."
	}

	width := max(20, m.width-2)
	top := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		m.renderInput(width),
		m.renderStatus(),
	)
	help := m.renderHelp()

	m.viewer.SetHeight(m.height - lipgloss.Height(top) - lipgloss.Height(help) - 3)
	return lipgloss.JoinVertical(lipgloss.Left, top, "", m.renderResults(), "", help)
}

func (m *Model) renderHeader() string {
	return m.styles.Title.Render("TextLens") + m.styles.Muted.Render("AI text analysis")
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(m.kinds))
	for i, kind := range m.kinds {
		label := kind.Icon() + " " + kind.Label()
		if i == m.kindIndex {
			tabs = append(tabs, m.styles.Selected.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderInput(width int) string {
	text := string(m.input)
	if !m.busy {
		text += "█"
	}
	if len(m.input) == 0 && m.busy {
		text = " "
	}

	box := m.styles.Focused
	if m.busy {
		box = m.styles.Box
	}
	counter := m.styles.Muted.Render(fmt.Sprintf("%d characters", m.charCount))
	return lipgloss.JoinVertical(lipgloss.Left, box.Width(width).Render(text), counter)
}

func (m *Model) renderStatus() string {
	switch {
	case m.busy:
		return m.spinner.Render()
	case m.errVisible:
		return m.styles.Error.Render(emoji.GetEmoji("error") + " " + m.errMessage)
	default:
		return ""
	}
}

func (m *Model) renderResults() string {
	if m.emptyVisible {
		return m.styles.Muted.Render(emoji.GetEmoji("empty") + " No results yet. Type some text and press ctrl+s.")
	}
	return m.viewer.Render(m.styles.Header, m.styles.Muted)
}

func (m *Model) renderHelp() string {
	keys := []string{"tab kind", "ctrl+s analyze", "ctrl+a analyze all", "ctrl+l clear"}
	if m.clearVisible {
		keys = append(keys, "ctrl+r clear results")
	}
	keys = append(keys, "↑↓ scroll", "esc quit")
	return m.styles.Muted.Render(emoji.GetEmoji("keyboard") + " " + strings.Join(keys, " • "))
}

func cloneRunes(r []rune) []rune {
	out := make([]rune, len(r), len(r)+1)
	copy(out, r)
	return out
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled
func Run(ctx context.Context, ctrl *controller.Controller, surface *ProgramSurface, opts Options) error {
	model := NewModel(ctx, ctrl, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	surface.Attach(program)
	defer surface.Close()

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}
