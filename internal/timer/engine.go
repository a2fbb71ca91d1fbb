// Package timer runs the study/break countdown.
//
// The engine is driven by an external tick source: the terminal UI forwards
// its one-second tick message to Tick. Tests call Tick directly.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/notify"
)

// State is a snapshot of the countdown.
type State struct {
	Mode     model.Mode
	TimeLeft int // seconds
	Total    int // seconds for the active phase
	Running  bool
}

// Completion describes a phase that just finished.
type Completion struct {
	Session model.TimerSession
	Next    model.Mode
}

type ConfigSaver interface {
	UpdateTimerConfig(ctx context.Context, cfg model.TimerConfig) error
}

// SessionRecorder persists a completed phase. Its failures never undo the
// mode switch.
type SessionRecorder func(ctx context.Context, s model.TimerSession) error

type Engine struct {
	mu       sync.Mutex
	cfg      model.TimerConfig
	mode     model.Mode
	timeLeft int
	total    int
	running  bool

	now      func() time.Time
	notifier notify.Notifier
	saver    ConfigSaver
	record   SessionRecorder
	log      *zap.Logger
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

func WithConfigSaver(s ConfigSaver) Option {
	return func(e *Engine) { e.saver = s }
}

func WithSessionRecorder(r SessionRecorder) Option {
	return func(e *Engine) { e.record = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New returns a stopped engine in Study mode. An invalid cfg falls back to
// the 25/5 defaults.
func New(cfg model.TimerConfig, opts ...Option) *Engine {
	e := &Engine{
		now:      time.Now,
		notifier: notify.Nop{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Restore(cfg)
	return e
}

// Restore rebuilds the transient state from a loaded config: Study mode,
// full study duration, stopped. Nothing is persisted.
func (e *Engine) Restore(cfg model.TimerConfig) {
	cfg = cfg.WithDefaults()
	if cfg.Validate() != nil {
		e.log.Warn("ignoring invalid timer config",
			zap.Int("study", cfg.StudyDuration),
			zap.Int("break", cfg.BreakDuration),
		)
		cfg = model.DefaultTimerConfig()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
	e.mode = model.ModeStudy
	e.running = false
	e.total = cfg.Minutes(e.mode) * 60
	e.timeLeft = e.total
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Mode:     e.mode,
		TimeLeft: e.timeLeft,
		Total:    e.total,
		Running:  e.running,
	}
}

func (e *Engine) Config() model.TimerConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Start begins the countdown. It is a no-op while already running.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	e.running = true
}

// Pause halts the countdown, keeping the remaining time.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
}

// Reset stops the countdown and restores the full phase length. The mode
// does not change.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
	e.timeLeft = e.total
}

// ApplyConfig validates and persists cfg, then stops the timer and restarts
// the current phase with the new duration. Elapsed time in the phase is
// discarded. On any error the engine state is left as it was.
//
// The save runs without holding the lock, so ticks keep landing while it is
// in flight; the new durations land in one critical section.
func (e *Engine) ApplyConfig(ctx context.Context, cfg model.TimerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if e.saver != nil {
		if err := e.saver.UpdateTimerConfig(ctx, cfg); err != nil {
			return fmt.Errorf("save timer settings: %w", err)
		}
	}

	e.mu.Lock()
	e.running = false
	e.cfg = cfg
	e.total = cfg.Minutes(e.mode) * 60
	e.timeLeft = e.total
	e.mu.Unlock()

	e.notifier.Notify("Settings Applied",
		fmt.Sprintf("Study: %dmin, Break: %dmin", cfg.StudyDuration, cfg.BreakDuration))
	return nil
}

// Tick advances a running countdown by one second. When the phase reaches
// zero it stops, flips the mode, loads the next phase length and returns the
// completed session. It returns nil otherwise.
func (e *Engine) Tick() *Completion {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	e.timeLeft--
	if e.timeLeft > 0 {
		e.mu.Unlock()
		return nil
	}

	done := e.mode
	session := model.TimerSession{
		Mode:            done,
		DurationMinutes: e.cfg.Minutes(done),
		Date:            model.Day(e.now()),
	}
	e.running = false
	e.mode = done.Next()
	e.total = e.cfg.Minutes(e.mode) * 60
	e.timeLeft = e.total
	cfg := e.cfg
	e.mu.Unlock()

	e.log.Info("timer phase completed",
		zap.String("mode", string(done)),
		zap.Int("minutes", session.DurationMinutes),
		zap.String("date", session.Date),
	)
	title, msg := transitionMessage(done, cfg)
	e.notifier.Notify(title, msg)

	return &Completion{Session: session, Next: done.Next()}
}

// Record hands a completed phase to the SessionRecorder. The engine has
// already moved on to the next phase; an error here only means the session
// was not saved.
func (e *Engine) Record(ctx context.Context, c *Completion) error {
	if c == nil || e.record == nil {
		return nil
	}
	return e.record(ctx, c.Session)
}

func transitionMessage(done model.Mode, cfg model.TimerConfig) (string, string) {
	if done == model.ModeStudy {
		return "Study session complete!", fmt.Sprintf("Time for a %d-minute break.", cfg.BreakDuration)
	}
	return "Break time over!", "Ready for another study session?"
}
