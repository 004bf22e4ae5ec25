// Package game implements the tracing rules: coverage, stress and the level
// state machine, plus a single-owner loop that serializes input into it.
package game

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/dalgona/internal/generator"
	"github.com/verte-zerg/dalgona/internal/model"
	"github.com/verte-zerg/dalgona/internal/ranking"
)

// TimeLimit is the number of seconds allowed per level.
const TimeLimit = 10

// countdownFrom is the remaining time at or below which ticks are announced.
const countdownFrom = 3

// pointLimit bounds the coordinates accepted as pointer samples.
const pointLimit = 2 * model.CanvasSize

var (
	// ErrInvalidState is returned when a transition is not allowed from the current state.
	ErrInvalidState = errors.New("invalid state for transition")
	// ErrInvalidName is returned when a ranking name is empty.
	ErrInvalidName = ranking.ErrInvalidName
)

// Reason explains why a level ended.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonCoverage
	ReasonStress
	ReasonTimeout
)

func (r Reason) String() string {
	switch r {
	case ReasonCoverage:
		return "coverage"
	case ReasonStress:
		return "stress"
	case ReasonTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// FeedbackRequest asks for narrative text about a finished level. Token ties
// the eventual answer to the level that produced it.
type FeedbackRequest struct {
	Token    string
	Outcome  model.Outcome
	Level    int
	Snapshot []byte
}

// Step reports the effect of a single tick or pointer sample.
type Step struct {
	Hit       bool
	Miss      bool
	Countdown bool
	Ended     bool
	State     model.GameState
	Reason    Reason
	Feedback  *FeedbackRequest
}

// Session is the level state machine. It is not safe for concurrent use;
// Loop serializes access to it.
type Session struct {
	state     model.GameState
	level     int
	cfg       model.LevelConfig
	tracker   Tracker
	stress    Stress
	timeLeft  int
	totalTime int
	pressed   bool
	trail     [][]model.Point

	// victory remembers a cleared run through name entry.
	victory bool
	board   ranking.Board

	feedback     string
	pendingToken string

	newToken func() string
	now      func() time.Time
}

// NewSession returns a session at the start screen holding board.
func NewSession(board ranking.Board) *Session {
	s := &Session{
		board:    ranking.Normalize(append(ranking.Board(nil), board...)),
		newToken: uuid.NewString,
		now:      time.Now,
	}
	s.resetToStart()
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() model.GameState { return s.state }

// Level returns the current 1-based level.
func (s *Session) Level() int { return s.level }

// TimeLeft returns the seconds left in the current level.
func (s *Session) TimeLeft() int { return s.timeLeft }

// TotalTime returns the seconds spent across the run.
func (s *Session) TotalTime() int { return s.totalTime }

// StressLevel returns the current stress.
func (s *Session) StressLevel() float64 { return s.stress.Level() }

// CoverageRatio returns the share of target points touched this level.
func (s *Session) CoverageRatio() float64 { return s.tracker.CoverageRatio() }

// Board returns a copy of the leaderboard.
func (s *Session) Board() ranking.Board { return append(ranking.Board(nil), s.board...) }

// Feedback returns the narrative text for the last ended level and whether it is still pending.
func (s *Session) Feedback() (string, bool) {
	return s.feedback, s.pendingToken != ""
}

// Start begins level 1 from the start screen.
func (s *Session) Start() error {
	if s.state != model.StateStart {
		return ErrInvalidState
	}
	s.startLevel(1)
	return nil
}

// Advance begins the next level after a success.
func (s *Session) Advance() error {
	if s.state != model.StateSuccess {
		return ErrInvalidState
	}
	s.startLevel(s.level + 1)
	return nil
}

func (s *Session) startLevel(level int) {
	cfg, ok := LevelConfig(level)
	if !ok {
		panic("game: level out of range")
	}
	s.state = model.StatePlaying
	s.level = level
	s.cfg = cfg
	s.stress.Reset()
	s.timeLeft = TimeLimit
	s.tracker.Reset(generator.Generate(cfg.Shape))
	s.pressed = false
	s.trail = nil
	s.victory = false
	s.feedback = ""
	s.pendingToken = ""
}

// Tick advances the level clock by one second.
func (s *Session) Tick() Step {
	if s.state != model.StatePlaying {
		return Step{State: s.state}
	}
	before := s.timeLeft
	s.timeLeft--
	s.totalTime++
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		return s.terminate(false, ReasonTimeout)
	}
	return Step{State: s.state, Countdown: before <= countdownFrom}
}

// PointerDown begins a stroke and samples p.
func (s *Session) PointerDown(p model.Point) Step {
	if s.state != model.StatePlaying || !validPoint(p) {
		return Step{State: s.state}
	}
	s.pressed = true
	s.trail = append(s.trail, []model.Point{p})
	return s.sample(p)
}

// PointerMove samples p while a stroke is in progress.
func (s *Session) PointerMove(p model.Point) Step {
	if s.state != model.StatePlaying || !s.pressed || !validPoint(p) {
		return Step{State: s.state}
	}
	last := len(s.trail) - 1
	s.trail[last] = append(s.trail[last], p)
	return s.sample(p)
}

// PointerUp ends the current stroke.
func (s *Session) PointerUp() {
	s.pressed = false
}

func (s *Session) sample(p model.Point) Step {
	if s.tracker.TestAndMark(p, s.cfg.Precision) {
		s.stress.OnHit()
		if s.tracker.CoverageRatio() >= s.cfg.RequiredCoverage {
			step := s.terminate(true, ReasonCoverage)
			step.Hit = true
			return step
		}
		return Step{State: s.state, Hit: true}
	}
	s.stress.OnMiss(s.cfg.StressGain)
	if s.stress.AtCeiling() {
		step := s.terminate(false, ReasonStress)
		step.Miss = true
		return step
	}
	return Step{State: s.state, Miss: true}
}

// terminate ends the level once; repeat calls outside Playing are no-ops.
func (s *Session) terminate(success bool, reason Reason) Step {
	if s.state != model.StatePlaying {
		return Step{State: s.state}
	}
	outcome := model.OutcomeFailed
	switch {
	case success && s.level == MaxLevel:
		s.state = model.StateVictory
		s.victory = true
		outcome = model.OutcomeSuccess
	case success:
		s.state = model.StateSuccess
		outcome = model.OutcomeSuccess
	default:
		s.state = model.StateFailed
	}
	s.pressed = false
	s.feedback = ""
	s.pendingToken = s.newToken()
	return Step{
		Ended:  true,
		State:  s.state,
		Reason: reason,
		Feedback: &FeedbackRequest{
			Token:   s.pendingToken,
			Outcome: outcome,
			Level:   s.level,
		},
	}
}

// AcceptFeedback stores text if token belongs to the pending request.
func (s *Session) AcceptFeedback(token, text string) bool {
	if token == "" || token != s.pendingToken {
		return false
	}
	s.feedback = text
	s.pendingToken = ""
	return true
}

// BeginRankingEntry moves a finished run to name entry.
func (s *Session) BeginRankingEntry() error {
	if s.state != model.StateFailed && s.state != model.StateVictory {
		return ErrInvalidState
	}
	s.state = model.StateRankingEntry
	return nil
}

// SubmitRanking records the run under name and returns to the start screen.
// An invalid name leaves the session unchanged.
func (s *Session) SubmitRanking(name string) (model.RankingRecord, error) {
	if !s.rankable() {
		return model.RankingRecord{}, ErrInvalidState
	}
	name, err := ranking.ValidateName(name)
	if err != nil {
		return model.RankingRecord{}, err
	}
	rec := model.RankingRecord{
		Name:      name,
		Level:     s.level,
		TotalTime: s.totalTime,
		Date:      s.now().Format(ranking.DateLayout),
	}
	s.board = ranking.Insert(s.board, rec)
	s.resetToStart()
	return rec, nil
}

// ToMenu abandons the results screen and returns to the start screen.
func (s *Session) ToMenu() error {
	if !s.state.Terminal() && s.state != model.StateRankingEntry {
		return ErrInvalidState
	}
	s.resetToStart()
	return nil
}

func (s *Session) rankable() bool {
	switch s.state {
	case model.StateFailed, model.StateVictory, model.StateRankingEntry:
		return true
	default:
		return false
	}
}

func (s *Session) resetToStart() {
	s.state = model.StateStart
	s.level = 1
	s.cfg, _ = LevelConfig(1)
	s.totalTime = 0
	s.timeLeft = TimeLimit
	s.stress.Reset()
	s.tracker.Reset(nil)
	s.pressed = false
	s.trail = nil
	s.victory = false
	s.feedback = ""
	s.pendingToken = ""
}

// validPoint rejects NaN, infinite and far out-of-range coordinates.
func validPoint(p model.Point) bool {
	return math.Abs(p.X) <= pointLimit && math.Abs(p.Y) <= pointLimit
}

// Snapshot is an immutable view of a session for rendering.
type Snapshot struct {
	State           model.GameState
	Level           int
	Config          model.LevelConfig
	TimeLeft        int
	TotalTime       int
	Stress          float64
	Coverage        float64
	Path            []model.Point
	Covered         []bool
	Trail           [][]model.Point
	Victory         bool
	Feedback        string
	FeedbackPending bool
	Board           ranking.Board
}

// Snapshot copies the state needed to draw the current screen.
func (s *Session) Snapshot() Snapshot {
	trail := make([][]model.Point, len(s.trail))
	for i, stroke := range s.trail {
		trail[i] = stroke[:len(stroke):len(stroke)]
	}
	return Snapshot{
		State:           s.state,
		Level:           s.level,
		Config:          s.cfg,
		TimeLeft:        s.timeLeft,
		TotalTime:       s.totalTime,
		Stress:          s.stress.Level(),
		Coverage:        s.tracker.CoverageRatio(),
		Path:            s.tracker.Path(),
		Covered:         s.tracker.CoveredMask(),
		Trail:           trail,
		Victory:         s.victory,
		Feedback:        s.feedback,
		FeedbackPending: s.pendingToken != "",
		Board:           s.Board(),
	}
}
