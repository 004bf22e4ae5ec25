package game

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/dalgona/internal/model"
	"github.com/verte-zerg/dalgona/internal/ranking"
)

var farAway = model.Point{X: 0, Y: 0}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(nil)
	n := 0
	s.newToken = func() string {
		n++
		return fmt.Sprintf("tok-%d", n)
	}
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestStartResetsLevelState(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	require.Equal(t, model.StatePlaying, s.State())
	require.Equal(t, 1, s.Level())
	require.Equal(t, TimeLimit, s.TimeLeft())
	require.Zero(t, s.StressLevel())
	require.Zero(t, s.CoverageRatio())
	require.Len(t, s.Snapshot().Path, 180)
	require.ErrorIs(t, s.Start(), ErrInvalidState)
}

func TestTimeoutFails(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	for i := 0; i < TimeLimit-1; i++ {
		step := s.Tick()
		require.False(t, step.Ended, "tick %d ended early", i)
	}
	require.Equal(t, 1, s.TimeLeft())
	step := s.Tick()
	require.True(t, step.Ended)
	require.Equal(t, model.StateFailed, step.State)
	require.Equal(t, ReasonTimeout, step.Reason)
	require.NotNil(t, step.Feedback)
	require.Equal(t, model.OutcomeFailed, step.Feedback.Outcome)
	require.Equal(t, TimeLimit, s.TotalTime())
	require.Zero(t, s.TimeLeft())

	again := s.Tick()
	require.False(t, again.Ended)
	require.Nil(t, again.Feedback)
	require.Equal(t, TimeLimit, s.TotalTime())
}

func TestCountdownTicks(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	var countdowns []int
	for s.State() == model.StatePlaying {
		before := s.TimeLeft()
		if s.Tick().Countdown {
			countdowns = append(countdowns, before)
		}
	}
	require.Equal(t, []int{3, 2}, countdowns)
}

func TestStressCeilingFails(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	step := s.PointerDown(farAway)
	require.True(t, step.Miss)
	misses := 1
	for !step.Ended {
		step = s.PointerMove(farAway)
		misses++
	}
	require.Equal(t, 50, misses)
	require.Equal(t, model.StateFailed, s.State())
	require.Equal(t, ReasonStress, step.Reason)
	require.InDelta(t, 100.0, s.StressLevel(), 1e-9)
}

func TestCoverageSucceedsBeforeAnyMiss(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	path := s.Snapshot().Path
	require.Len(t, path, 180)

	var step Step
	for i, p := range path {
		if i == 0 {
			step = s.PointerDown(p)
		} else {
			step = s.PointerMove(p)
		}
		require.False(t, step.Miss)
		require.Zero(t, s.StressLevel())
		if step.Ended {
			break
		}
		require.Less(t, s.CoverageRatio(), 0.6)
	}
	require.True(t, step.Ended)
	require.Equal(t, model.StateSuccess, step.State)
	require.Equal(t, ReasonCoverage, step.Reason)
	require.GreaterOrEqual(t, s.CoverageRatio(), 0.6)
	require.Equal(t, model.OutcomeSuccess, step.Feedback.Outcome)

	after := s.PointerMove(farAway)
	require.False(t, after.Miss)
	require.Equal(t, model.StateSuccess, s.State())
}

func TestExactRequiredCoverageSucceeds(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	// 108 of 180 points covered with no misses.
	path := make([]model.Point, 180)
	for i := range path {
		path[i] = model.Point{X: float64(i) * 100, Y: 0}
	}
	s.tracker.Reset(path)
	s.PointerDown(path[0])
	for i := 1; i < 107; i++ {
		require.False(t, s.PointerMove(path[i]).Ended)
	}
	step := s.PointerMove(path[107])
	require.True(t, step.Ended)
	require.Equal(t, model.StateSuccess, step.State)
	require.InDelta(t, 0.6, s.CoverageRatio(), 1e-12)
}

func TestMoveWithoutPressIgnored(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	step := s.PointerMove(farAway)
	require.False(t, step.Miss)
	require.Zero(t, s.StressLevel())

	s.PointerDown(farAway)
	s.PointerUp()
	s.PointerMove(farAway)
	require.InDelta(t, 2.0, s.StressLevel(), 1e-9)
}

func TestMalformedPointIgnored(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	step := s.PointerDown(model.Point{X: math.NaN(), Y: 10})
	require.False(t, step.Miss || step.Hit)
	step = s.PointerDown(model.Point{X: 10, Y: math.Inf(1)})
	require.False(t, step.Miss || step.Hit)
	require.Zero(t, s.StressLevel())
}

func TestFarOutPointIgnored(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	step := s.PointerDown(farAway)
	require.True(t, step.Miss)

	step = s.PointerMove(model.Point{X: 1e9, Y: 0})
	require.False(t, step.Miss || step.Hit)
	step = s.PointerMove(model.Point{X: 0, Y: -3 * model.CanvasSize})
	require.False(t, step.Miss || step.Hit)
	require.Equal(t, [][]model.Point{{farAway}}, s.Snapshot().Trail)

	step = s.PointerMove(model.Point{X: model.CanvasSize + 50, Y: 10})
	require.True(t, step.Miss)
}

func TestAdvanceAndVictory(t *testing.T) {
	s := newTestSession(t)
	require.ErrorIs(t, s.Advance(), ErrInvalidState)
	require.NoError(t, s.Start())
	for level := 1; level <= MaxLevel; level++ {
		require.Equal(t, level, s.Level())
		require.Equal(t, TimeLimit, s.TimeLeft())
		require.Zero(t, s.StressLevel())
		path := s.Snapshot().Path
		s.Tick()
		var step Step
		for i, p := range path {
			if i == 0 {
				step = s.PointerDown(p)
			} else {
				step = s.PointerMove(p)
			}
			if step.Ended {
				break
			}
		}
		require.True(t, step.Ended, "level %d did not end", level)
		if level < MaxLevel {
			require.Equal(t, model.StateSuccess, s.State())
			require.NoError(t, s.Advance())
		}
	}
	require.Equal(t, model.StateVictory, s.State())
	require.Equal(t, MaxLevel, s.TotalTime())
	require.True(t, s.Snapshot().Victory)
	require.NoError(t, s.BeginRankingEntry())
	require.Equal(t, model.StateRankingEntry, s.State())
	require.True(t, s.Snapshot().Victory)

	rec, err := s.SubmitRanking("winner")
	require.NoError(t, err)
	require.Equal(t, model.RankingRecord{Name: "winner", Level: 10, TotalTime: 10, Date: "2024-05-01"}, rec)
	require.Equal(t, model.StateStart, s.State())
	require.Equal(t, 1, s.Level())
	require.Zero(t, s.TotalTime())
	require.Equal(t, ranking.Board{rec}, s.Board())
}

func TestSubmitRankingRejectsBlankName(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	for s.State() == model.StatePlaying {
		s.Tick()
	}
	require.NoError(t, s.BeginRankingEntry())
	_, err := s.SubmitRanking("   ")
	require.ErrorIs(t, err, ErrInvalidName)
	require.Equal(t, model.StateRankingEntry, s.State())
	require.False(t, s.Snapshot().Victory)
	require.Empty(t, s.Board())

	_, err = s.SubmitRanking("sae-byeok")
	require.NoError(t, err)
	require.Len(t, s.Board(), 1)
}

func TestSubmitRankingRequiresFinishedRun(t *testing.T) {
	s := newTestSession(t)
	_, err := s.SubmitRanking("early")
	require.ErrorIs(t, err, ErrInvalidState)
	require.NoError(t, s.Start())
	_, err = s.SubmitRanking("early")
	require.ErrorIs(t, err, ErrInvalidState)
	require.ErrorIs(t, s.ToMenu(), ErrInvalidState)
}

func TestToMenuResetsRun(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	s.Tick()
	s.Tick()
	for s.State() == model.StatePlaying {
		s.PointerDown(farAway)
	}
	require.Equal(t, 2, s.TotalTime())
	require.NoError(t, s.ToMenu())
	require.Equal(t, model.StateStart, s.State())
	require.Zero(t, s.TotalTime())
	require.Empty(t, s.Board())
}

func TestFeedbackTokenDiscardsStale(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	var step Step
	for !step.Ended {
		step = s.Tick()
	}
	first := step.Feedback.Token
	_, pending := s.Feedback()
	require.True(t, pending)

	require.NoError(t, s.ToMenu())
	require.False(t, s.AcceptFeedback(first, "late"))
	text, pending := s.Feedback()
	require.Empty(t, text)
	require.False(t, pending)

	require.NoError(t, s.Start())
	step = Step{}
	for !step.Ended {
		step = s.Tick()
	}
	require.NotEqual(t, first, step.Feedback.Token)
	require.False(t, s.AcceptFeedback(first, "late"))
	require.True(t, s.AcceptFeedback(step.Feedback.Token, "eliminated"))
	text, pending = s.Feedback()
	require.Equal(t, "eliminated", text)
	require.False(t, pending)
	require.False(t, s.AcceptFeedback(step.Feedback.Token, "twice"))
}

func TestSnapshotTrailIsIndependent(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	path := s.Snapshot().Path
	s.PointerDown(path[0])
	snap := s.Snapshot()
	s.PointerMove(path[1])
	require.Len(t, snap.Trail, 1)
	require.Len(t, snap.Trail[0], 1)
	require.Len(t, s.Snapshot().Trail[0], 2)
}
