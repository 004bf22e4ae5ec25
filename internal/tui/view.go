package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/dalgona/internal/game"
	"github.com/verte-zerg/dalgona/internal/model"
	"github.com/verte-zerg/dalgona/internal/ranking"
)

const stressBarWidth = 20

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	stressStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.hasSnap {
		return ""
	}
	var sections []string
	if m.snap.State == model.StateStart {
		sections = m.renderStart()
	} else {
		sections = append(sections,
			m.fit(m.renderHUD()),
			m.fit(m.renderStressBar()),
			m.indent(rasterize(m.snap.Path, m.snap.Covered, m.snap.Trail, m.opts.CanvasCols, m.opts.CanvasRows).render()),
		)
		sections = append(sections, m.renderResult()...)
	}
	sections = append(sections, "", m.fit(footerStyle.Render(m.renderFooter())))
	return strings.Join(sections, "\n")
}

func (m *Model) renderStart() []string {
	lines := []string{titleStyle.Render("DALGONA"), ""}
	switch {
	case m.introLoading:
		lines = append(lines, m.spinner.View()+mutedStyle.Render(" listening..."))
	case m.introText != "":
		lines = append(lines, m.renderFeedback(m.introText))
	}
	lines = append(lines, "", accentStyle.Render("Hall of fame"))
	if len(m.snap.Board) == 0 {
		lines = append(lines, mutedStyle.Render("No records yet."))
	} else {
		for _, line := range ranking.Lines(m.snap.Board) {
			lines = append(lines, m.fit(line))
		}
	}
	return lines
}

func (m *Model) renderHUD() string {
	s := m.snap
	hud := fmt.Sprintf("LV.%d %s   TIME %ds   TOTAL %ds   COVER %d%% / %d%%",
		s.Level, s.Config.Shape, s.TimeLeft, s.TotalTime,
		int(math.Floor(s.Coverage*100)), int(math.Round(s.Config.RequiredCoverage*100)))
	if s.State == model.StatePlaying && s.TimeLeft <= 3 {
		return dangerStyle.Render(hud)
	}
	return titleStyle.Render(hud)
}

func (m *Model) renderStressBar() string {
	return stressBar(m.snap.Stress)
}

func stressBar(stress float64) string {
	ratio := stress / game.StressCeiling
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(math.Round(ratio * stressBarWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", stressBarWidth-filled)
	style := stressStyle
	if ratio >= 0.7 {
		style = dangerStyle
	}
	return fmt.Sprintf("STRESS %s %3d%%", style.Render(bar), int(math.Round(ratio*100)))
}

func (m *Model) renderResult() []string {
	s := m.snap
	var heading string
	switch s.State {
	case model.StateSuccess:
		heading = successStyle.Render(fmt.Sprintf("LEVEL %d CLEARED", s.Level))
	case model.StateVictory:
		heading = successStyle.Render("ALL LEVELS CLEARED")
	case model.StateRankingEntry:
		heading = failStyle.Render("ELIMINATED")
		if s.Victory {
			heading = successStyle.Render("ALL LEVELS CLEARED")
		}
	case model.StateFailed:
		heading = failStyle.Render("ELIMINATED")
	default:
		return nil
	}
	lines := []string{"", heading}
	switch {
	case s.FeedbackPending:
		lines = append(lines, m.spinner.View()+mutedStyle.Render(" the host is watching..."))
	case s.Feedback != "":
		lines = append(lines, m.renderFeedback(s.Feedback))
	}
	if s.State != model.StateSuccess {
		lines = append(lines, "", m.input.View())
		if m.opts.SavingDisabled {
			lines = append(lines, mutedStyle.Render("leaderboard storage unavailable; this record will not be saved"))
		}
	}
	return lines
}

func (m *Model) renderFooter() string {
	switch m.snap.State {
	case model.StateStart:
		return "enter start  q quit"
	case model.StatePlaying:
		return "drag along the outline  ctrl+c quit"
	case model.StateSuccess:
		return "enter next level  m menu"
	case model.StateFailed, model.StateVictory, model.StateRankingEntry:
		return "type a name, enter record  esc menu"
	default:
		return ""
	}
}

func (m *Model) indent(block string) string {
	left := m.canvasLeft()
	if left == 0 {
		return block
	}
	pad := strings.Repeat(" ", left)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

// fit truncates plain text lines to the terminal width. Styled lines are
// passed through since their escape codes do not occupy cells.
func (m *Model) fit(line string) string {
	if m.width <= 0 || strings.Contains(line, "\x1b") {
		return line
	}
	return runewidth.Truncate(line, m.width, "…")
}
