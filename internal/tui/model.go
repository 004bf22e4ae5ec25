// Package tui provides the Bubble Tea tracing interface.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/verte-zerg/dalgona/internal/game"
	"github.com/verte-zerg/dalgona/internal/model"
	"github.com/verte-zerg/dalgona/internal/ranking"
)

const (
	// canvasTop is the number of HUD lines drawn above the canvas.
	canvasTop       = 2
	maxFeedbackWrap = 72
)

// Controller is the command surface of the session loop.
type Controller interface {
	Start()
	Advance()
	PointerDown(p model.Point)
	PointerMove(p model.Point)
	PointerUp()
	BeginRankingEntry()
	SubmitRanking(name string)
	ToMenu()
	Updates() <-chan game.Snapshot
}

// IntroSource supplies the start screen tip.
type IntroSource interface {
	IntroMessage(ctx context.Context) string
}

// Options controls canvas size and start screen behavior.
type Options struct {
	CanvasCols     int
	CanvasRows     int
	IntroTimeout   time.Duration
	SavingDisabled bool
}

type (
	snapshotMsg game.Snapshot
	introMsg    string
)

// Model implements the Bubble Tea game UI.
type Model struct {
	ctrl  Controller
	intro IntroSource
	opts  Options

	width  int
	height int

	snap    game.Snapshot
	hasSnap bool
	pressed bool

	introText    string
	introLoading bool

	spinner  spinner.Model
	input    textinput.Model
	renderer *glamour.TermRenderer

	feedbackSrc  string
	feedbackView string
}

// NewModel constructs the game UI around a running loop.
func NewModel(ctrl Controller, intro IntroSource, opts Options) *Model {
	if opts.IntroTimeout <= 0 {
		opts.IntroTimeout = 10 * time.Second
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = "your name"
	ti.CharLimit = ranking.MaxNameLen
	ti.Width = ranking.MaxNameLen + 1
	ti.Focus()

	return &Model{
		ctrl:         ctrl,
		intro:        intro,
		opts:         opts,
		introLoading: intro != nil,
		spinner:      sp,
		input:        ti,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForSnapshot(m.ctrl.Updates()), m.spinner.Tick}
	if m.intro != nil {
		cmds = append(cmds, fetchIntro(m.intro, m.opts.IntroTimeout))
	}
	return tea.Batch(cmds...)
}

func waitForSnapshot(ch <-chan game.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func fetchIntro(src IntroSource, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return introMsg(src.IntroMessage(ctx))
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resetRenderer()
		return m, nil
	case snapshotMsg:
		m.applySnapshot(game.Snapshot(msg))
		return m, waitForSnapshot(m.ctrl.Updates())
	case introMsg:
		m.introText = strings.TrimSpace(string(msg))
		m.introLoading = false
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) applySnapshot(snap game.Snapshot) {
	prev := m.snap.State
	m.snap = snap
	m.hasSnap = true
	if snap.State != model.StatePlaying {
		m.pressed = false
	}
	if snap.State != prev && (snap.State == model.StateStart || snap.State == model.StatePlaying) {
		m.input.Reset()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.snap.State {
	case model.StateStart:
		switch msg.Type {
		case tea.KeyEnter, tea.KeySpace:
			m.ctrl.Start()
		case tea.KeyRunes:
			if msg.String() == "q" {
				return m, tea.Quit
			}
		}
	case model.StateSuccess:
		switch {
		case msg.Type == tea.KeyEnter:
			m.ctrl.Advance()
		case msg.Type == tea.KeyEsc, msg.String() == "m":
			m.ctrl.ToMenu()
		}
	case model.StateFailed, model.StateVictory, model.StateRankingEntry:
		return m.handleNameEntry(msg)
	}
	return m, nil
}

func (m *Model) handleNameEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.ToMenu()
		return m, nil
	case tea.KeyEnter:
		if name := strings.TrimSpace(m.input.Value()); name != "" {
			m.ctrl.SubmitRanking(name)
		}
		return m, nil
	}
	if msg.Type == tea.KeyRunes && m.snap.State != model.StateRankingEntry && m.input.Value() == "" {
		m.ctrl.BeginRankingEntry()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.snap.State != model.StatePlaying {
		return
	}
	col, row := msg.X-m.canvasLeft(), msg.Y-canvasTop
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.inCanvas(col, row) {
			return
		}
		m.pressed = true
		m.ctrl.PointerDown(cellToPoint(col, row, m.opts.CanvasCols, m.opts.CanvasRows))
	case tea.MouseActionMotion:
		if !m.pressed {
			return
		}
		// Leaving the canvas ends the stroke.
		if !m.inCanvas(col, row) {
			m.pressed = false
			m.ctrl.PointerUp()
			return
		}
		m.ctrl.PointerMove(cellToPoint(col, row, m.opts.CanvasCols, m.opts.CanvasRows))
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		m.ctrl.PointerUp()
	}
}

func (m *Model) canvasLeft() int {
	if m.width <= m.opts.CanvasCols {
		return 0
	}
	return (m.width - m.opts.CanvasCols) / 2
}

func (m *Model) inCanvas(col, row int) bool {
	return col >= 0 && row >= 0 && col < m.opts.CanvasCols && row < m.opts.CanvasRows
}

func (m *Model) resetRenderer() {
	wrap := maxFeedbackWrap
	if m.width > 0 && m.width-4 < wrap {
		wrap = m.width - 4
	}
	if wrap < 20 {
		wrap = 20
	}
	// A nil renderer falls back to plain text.
	m.renderer, _ = glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrap),
	)
	m.feedbackSrc = ""
	m.feedbackView = ""
}

// renderFeedback renders markdown feedback, caching the last result.
func (m *Model) renderFeedback(text string) string {
	if text == m.feedbackSrc && m.feedbackView != "" {
		return m.feedbackView
	}
	out := text
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(text); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	m.feedbackSrc = text
	m.feedbackView = out
	return out
}
