// Package ranking orders, validates and renders leaderboard records.
package ranking

import (
	"errors"
	"sort"
	"strings"

	"github.com/verte-zerg/dalgona/internal/model"
)

const (
	// MaxEntries is the leaderboard capacity.
	MaxEntries = 10
	// MaxNameLen is the longest accepted player name, in runes.
	MaxNameLen = 10
	// DateLayout formats RankingRecord.Date.
	DateLayout = "2006-01-02"
)

// ErrInvalidName rejects empty or whitespace-only player names.
var ErrInvalidName = errors.New("player name is empty")

// Board is a leaderboard ordered by level descending, then total time ascending.
type Board []model.RankingRecord

// Insert returns a new board containing rec, re-sorted and truncated to MaxEntries.
func Insert(board Board, rec model.RankingRecord) Board {
	out := make(Board, 0, len(board)+1)
	out = append(out, board...)
	out = append(out, rec)
	return Normalize(out)
}

// Normalize sorts a board in place and truncates it to MaxEntries. Ties keep
// insertion order, so an earlier record outranks a later equal one.
func Normalize(board Board) Board {
	sort.SliceStable(board, func(i, j int) bool {
		if board[i].Level != board[j].Level {
			return board[i].Level > board[j].Level
		}
		return board[i].TotalTime < board[j].TotalTime
	})
	if len(board) > MaxEntries {
		board = board[:MaxEntries]
	}
	return board
}

// ValidateName trims whitespace and truncates to MaxNameLen runes.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	runes := []rune(name)
	if len(runes) > MaxNameLen {
		name = strings.TrimSpace(string(runes[:MaxNameLen]))
	}
	return name, nil
}
