// Package rankui provides the Bubble Tea leaderboard browser.
package rankui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/dalgona/internal/ranking"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Model implements the Bubble Tea leaderboard UI.
type Model struct {
	board ranking.Board
	table table.Model

	width  int
	height int
}

// NewModel constructs a leaderboard UI model.
func NewModel(board ranking.Board) *Model {
	cols, rows := buildBoardTableData(board)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(maxInt(1, len(rows))),
	)
	t.SetStyles(boardTableStyles())
	return &Model{board: board, table: t}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		_, bodyHeight, _ := m.layoutHeights()
		m.table.SetHeight(maxInt(1, bodyHeight-1))
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc || msg.String() == "q" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(titleStyle.Render("Hall of fame"), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(headerStyle.Render("↑/↓ move  q quit"), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(titleStyle.Render("X"))
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) renderBody() string {
	if len(m.board) == 0 {
		return emptyStyle.Render("No records yet.")
	}
	return m.table.View()
}

func buildBoardTableData(board ranking.Board) ([]table.Column, []table.Row) {
	nameWidth := len("Name")
	for _, rec := range board {
		nameWidth = maxInt(nameWidth, runewidth.StringWidth(rec.Name))
	}
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Name", Width: nameWidth},
		{Title: "Level", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 10},
	}
	rows := make([]table.Row, 0, len(board))
	for i, rec := range board {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			rec.Name,
			fmt.Sprintf("LV.%d", rec.Level),
			fmt.Sprintf("%ds", rec.TotalTime),
			rec.Date,
		})
	}
	return columns, rows
}

func boardTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#C89A3A")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
