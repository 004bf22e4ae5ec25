package ranking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Lines renders the board as an aligned text table, header first.
func Lines(board Board) []string {
	headers := []string{"#", "Name", "Level", "Time", "Date"}
	rows := make([][]string, 0, len(board))
	for i, rec := range board {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.Name,
			fmt.Sprintf("LV.%d", rec.Level),
			fmt.Sprintf("%ds", rec.TotalTime),
			rec.Date,
		})
	}
	return formatTable(headers, rows, map[int]bool{0: true, 2: true, 3: true})
}

// formatTable aligns cells into columns sized to the widest entry, header
// row included. Columns in rightAlign are padded on the left.
func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) []string {
	all := append([][]string{headers}, rows...)
	widths := make([]int, len(headers))
	for _, row := range all {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], displayWidth(row[i]))
			}
		}
	}
	lines := make([]string, len(all))
	for n, row := range all {
		cells := make([]string, len(widths))
		for i, width := range widths {
			if i < len(row) {
				cells[i] = row[i]
			}
			gap := strings.Repeat(" ", width-displayWidth(cells[i]))
			if rightAlign[i] {
				cells[i] = gap + cells[i]
			} else {
				cells[i] += gap
			}
		}
		lines[n] = strings.TrimRight(strings.Join(cells, "  "), " ")
	}
	return lines
}

// displayWidth counts terminal cells, so Hangul names take two per rune.
func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
