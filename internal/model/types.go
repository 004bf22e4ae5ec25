// Package model defines shared data structures.
package model

import "fmt"

// CanvasSize is the width and height of the logical play area.
const CanvasSize = 400.0

// Point is a coordinate in the logical canvas space.
type Point struct {
	X float64
	Y float64
}

// ShapeKind names a target outline.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeTriangle
	ShapeSquare
	ShapeStar
	ShapeHeart
	ShapeCloud
	ShapeBird
	ShapeButterfly
	ShapeGhost
	ShapeUmbrella
)

// AllShapes lists every shape kind in level order.
var AllShapes = []ShapeKind{
	ShapeCircle,
	ShapeTriangle,
	ShapeSquare,
	ShapeStar,
	ShapeHeart,
	ShapeCloud,
	ShapeBird,
	ShapeButterfly,
	ShapeGhost,
	ShapeUmbrella,
}

var shapeNames = [...]string{
	ShapeCircle:    "CIRCLE",
	ShapeTriangle:  "TRIANGLE",
	ShapeSquare:    "SQUARE",
	ShapeStar:      "STAR",
	ShapeHeart:     "HEART",
	ShapeCloud:     "CLOUD",
	ShapeBird:      "BIRD",
	ShapeButterfly: "BUTTERFLY",
	ShapeGhost:     "GHOST",
	ShapeUmbrella:  "UMBRELLA",
}

func (k ShapeKind) String() string {
	if k < 0 || int(k) >= len(shapeNames) {
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
	return shapeNames[k]
}

// LevelConfig defines the difficulty of a single level.
type LevelConfig struct {
	Level            int
	Shape            ShapeKind
	StressGain       float64
	Precision        float64
	RequiredCoverage float64
}

// GameState is a GameSession lifecycle state.
type GameState int

const (
	StateStart GameState = iota
	StatePlaying
	StateSuccess
	StateFailed
	StateVictory
	StateRankingEntry
)

func (s GameState) String() string {
	switch s {
	case StateStart:
		return "START"
	case StatePlaying:
		return "PLAYING"
	case StateSuccess:
		return "SUCCESS"
	case StateFailed:
		return "FAILED"
	case StateVictory:
		return "VICTORY"
	case StateRankingEntry:
		return "RANKING_ENTRY"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// Terminal reports whether the state ends a level.
func (s GameState) Terminal() bool {
	return s == StateSuccess || s == StateFailed || s == StateVictory
}

// Outcome is the result reported to a feedback provider.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// RankingRecord is one leaderboard entry.
type RankingRecord struct {
	Name      string `json:"name" yaml:"name"`
	Level     int    `json:"level" yaml:"level"`
	TotalTime int    `json:"totalTime" yaml:"totalTime"`
	Date      string `json:"date" yaml:"date"`
}

// Config defines play settings after file and flag merging.
type Config struct {
	Lang            string
	Sound           bool
	FeedbackEnabled bool
	FeedbackModel   string
	FeedbackTimeout int
	APIKeyEnv       string
	CanvasCols      int
	CanvasRows      int
	LogLevel        string
	LogFile         string
}
