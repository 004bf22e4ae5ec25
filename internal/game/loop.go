package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/dalgona/internal/model"
	"github.com/verte-zerg/dalgona/internal/ranking"
	"github.com/verte-zerg/dalgona/internal/snapshot"
)

const (
	defaultTickInterval    = time.Second
	defaultFeedbackTimeout = 10 * time.Second
	saveTimeout            = 5 * time.Second
	inboxSize              = 256
)

// Feedbacker produces narrative text for a finished level. It must return
// fallback text instead of failing.
type Feedbacker interface {
	OutcomeMessage(ctx context.Context, outcome model.Outcome, level int, snapshot []byte) string
}

// BoardSaver persists the leaderboard after a ranking submission.
type BoardSaver interface {
	Save(ctx context.Context, board ranking.Board) error
}

// Cues receives sample and countdown events, typically for audio.
type Cues interface {
	Hit(covered int)
	Miss()
	Countdown()
}

// LoopConfig wires a Loop to its collaborators. Saver and Cues are optional.
type LoopConfig struct {
	TickInterval    time.Duration
	FeedbackTimeout time.Duration
	Feedback        Feedbacker
	Saver           BoardSaver
	Cues            Cues
	Logger          *zap.Logger
}

type (
	startCmd        struct{}
	advanceCmd      struct{}
	pointerDownCmd  struct{ p model.Point }
	pointerMoveCmd  struct{ p model.Point }
	pointerUpCmd    struct{}
	rankingEntryCmd struct{}
	submitCmd       struct{ name string }
	menuCmd         struct{}
	feedbackResult  struct{ token, text string }
)

// Loop owns a Session and applies every command, tick and feedback result
// to it from the Run goroutine.
type Loop struct {
	session *Session
	cfg     LoopConfig
	log     *zap.Logger

	inbox   chan any
	updates chan Snapshot
	done    chan struct{}

	ticker         *time.Ticker
	cancelFeedback context.CancelFunc
	wg             sync.WaitGroup
}

// NewLoop returns a loop around session. Run must be called to process commands.
func NewLoop(session *Session, cfg LoopConfig) *Loop {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}
	if cfg.FeedbackTimeout <= 0 {
		cfg.FeedbackTimeout = defaultFeedbackTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		session: session,
		cfg:     cfg,
		log:     log,
		inbox:   make(chan any, inboxSize),
		updates: make(chan Snapshot, 1),
		done:    make(chan struct{}),
	}
}

// Updates delivers the latest snapshot after every processed event. Older
// unread snapshots are replaced.
func (l *Loop) Updates() <-chan Snapshot { return l.updates }

// Start begins level 1 from the start screen.
func (l *Loop) Start() { l.send(startCmd{}) }

// Advance begins the next level after a success.
func (l *Loop) Advance() { l.send(advanceCmd{}) }

// PointerDown begins a stroke at p.
func (l *Loop) PointerDown(p model.Point) { l.send(pointerDownCmd{p: p}) }

// PointerMove samples p during a stroke.
func (l *Loop) PointerMove(p model.Point) { l.send(pointerMoveCmd{p: p}) }

// PointerUp ends the stroke.
func (l *Loop) PointerUp() { l.send(pointerUpCmd{}) }

// BeginRankingEntry switches a finished run to name entry.
func (l *Loop) BeginRankingEntry() { l.send(rankingEntryCmd{}) }

// SubmitRanking records the run under name. Blank names are ignored.
func (l *Loop) SubmitRanking(name string) { l.send(submitCmd{name: name}) }

// ToMenu returns to the start screen without recording the run.
func (l *Loop) ToMenu() { l.send(menuCmd{}) }

func (l *Loop) send(cmd any) {
	select {
	case l.inbox <- cmd:
	case <-l.done:
	}
}

// Run processes events until ctx is cancelled, then waits for in-flight
// feedback requests to return.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	l.publish()
	for {
		var tick <-chan time.Time
		if l.ticker != nil {
			tick = l.ticker.C
		}
		select {
		case <-ctx.Done():
			l.shutdown()
			return nil
		case cmd := <-l.inbox:
			l.handle(ctx, cmd)
		case <-tick:
			l.apply(ctx, l.session.Tick())
		}
		l.syncTicker()
		l.publish()
	}
}

func (l *Loop) handle(ctx context.Context, cmd any) {
	s := l.session
	var err error
	switch c := cmd.(type) {
	case startCmd:
		if err = s.Start(); err == nil {
			l.levelStarted()
		}
	case advanceCmd:
		if err = s.Advance(); err == nil {
			l.levelStarted()
		}
	case pointerDownCmd:
		l.apply(ctx, s.PointerDown(c.p))
	case pointerMoveCmd:
		l.apply(ctx, s.PointerMove(c.p))
	case pointerUpCmd:
		s.PointerUp()
	case rankingEntryCmd:
		err = s.BeginRankingEntry()
	case submitCmd:
		var rec model.RankingRecord
		if rec, err = s.SubmitRanking(c.name); err == nil {
			l.cancelPending()
			l.log.Info("ranking submitted",
				zap.String("name", rec.Name),
				zap.Int("level", rec.Level),
				zap.Int("total_time", rec.TotalTime))
			l.save(ctx)
		}
	case menuCmd:
		if err = s.ToMenu(); err == nil {
			l.cancelPending()
		}
	case feedbackResult:
		if !s.AcceptFeedback(c.token, c.text) {
			l.log.Debug("discarded stale feedback", zap.String("token", c.token))
		}
	default:
		err = fmt.Errorf("unknown command %T", cmd)
	}
	if err != nil {
		l.log.Debug("command rejected",
			zap.String("command", fmt.Sprintf("%T", cmd)),
			zap.Stringer("state", s.State()),
			zap.Bool("invalid_name", errors.Is(err, ErrInvalidName)),
			zap.Error(err))
	}
}

func (l *Loop) levelStarted() {
	l.cancelPending()
	cfg, _ := LevelConfig(l.session.Level())
	l.log.Info("level started",
		zap.Int("level", cfg.Level),
		zap.Stringer("shape", cfg.Shape),
		zap.Int("points", len(l.session.tracker.Path())))
}

func (l *Loop) apply(ctx context.Context, step Step) {
	if cues := l.cfg.Cues; cues != nil {
		switch {
		case step.Hit:
			cues.Hit(l.session.tracker.CoveredCount())
		case step.Miss:
			cues.Miss()
		}
		if step.Countdown {
			cues.Countdown()
		}
	}
	if step.Ended {
		l.log.Info("level ended",
			zap.Int("level", l.session.Level()),
			zap.Stringer("state", step.State),
			zap.Stringer("reason", step.Reason),
			zap.Float64("coverage", l.session.CoverageRatio()),
			zap.Float64("stress", l.session.StressLevel()),
			zap.Int("total_time", l.session.TotalTime()))
	}
	if step.Feedback != nil {
		l.requestFeedback(ctx, *step.Feedback)
	}
}

// requestFeedback asks for outcome text without blocking the loop. The
// answer comes back through the inbox tagged with the request token.
func (l *Loop) requestFeedback(ctx context.Context, req FeedbackRequest) {
	l.cancelPending()
	if l.cfg.Feedback == nil {
		return
	}
	snap := l.session.Snapshot()
	img, err := snapshot.PNG(snap.Path, snap.Covered, snap.Trail)
	if err != nil {
		l.log.Warn("snapshot render failed", zap.Error(err))
	}
	req.Snapshot = img

	reqCtx, cancel := context.WithTimeout(ctx, l.cfg.FeedbackTimeout)
	l.cancelFeedback = cancel
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()
		text := l.cfg.Feedback.OutcomeMessage(reqCtx, req.Outcome, req.Level, req.Snapshot)
		select {
		case l.inbox <- feedbackResult{token: req.Token, text: text}:
		case <-ctx.Done():
		}
	}()
}

func (l *Loop) cancelPending() {
	if l.cancelFeedback != nil {
		l.cancelFeedback()
		l.cancelFeedback = nil
	}
}

func (l *Loop) save(ctx context.Context) {
	if l.cfg.Saver == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	if err := l.cfg.Saver.Save(saveCtx, l.session.Board()); err != nil {
		l.log.Error("failed to save leaderboard", zap.Error(err))
	}
}

// syncTicker keeps a ticker only while a level is being played, so every
// level gets a fresh one-second phase.
func (l *Loop) syncTicker() {
	playing := l.session.State() == model.StatePlaying
	switch {
	case playing && l.ticker == nil:
		l.ticker = time.NewTicker(l.cfg.TickInterval)
	case !playing && l.ticker != nil:
		l.ticker.Stop()
		l.ticker = nil
	}
}

func (l *Loop) publish() {
	snap := l.session.Snapshot()
	select {
	case l.updates <- snap:
		return
	default:
	}
	select {
	case <-l.updates:
	default:
	}
	select {
	case l.updates <- snap:
	default:
	}
}

func (l *Loop) shutdown() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
	}
	l.cancelPending()
	l.wg.Wait()
}
