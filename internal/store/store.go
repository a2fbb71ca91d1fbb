// Package store keeps the in-memory copy of tasks, notes, timer settings and
// today's sessions. The gateway is the source of truth: every successful
// mutation is followed by a full reload, never a local patch.
package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sadopc/studydesk/internal/cache"
	"github.com/sadopc/studydesk/internal/gateway"
	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/stats"
)

// Cache is the local fallback the store reads when the gateway is down.
type Cache interface {
	Put(slot cache.Slot, v any) error
	Get(slot cache.Slot, v any) (bool, error)
}

// Source says where the in-memory data came from.
type Source int

const (
	SourceNone Source = iota
	SourceGateway
	SourceCache
)

func (s Source) String() string {
	switch s {
	case SourceGateway:
		return "online"
	case SourceCache:
		return "offline"
	}
	return "not loaded"
}

type Store struct {
	gw    gateway.Gateway
	cache Cache
	log   *zap.Logger
	now   func() time.Time

	mu       sync.RWMutex
	tasks    []model.Task
	notes    []model.Note
	config   model.TimerConfig
	sessions []model.TimerSession
	source   Source
	issued   uint64
	applied  uint64

	stats stats.Tracker
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(gw gateway.Gateway, c Cache, opts ...Option) *Store {
	s := &Store{
		gw:     gw,
		cache:  c,
		log:    zap.NewNop(),
		now:    time.Now,
		config: model.DefaultTimerConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timerStatsSnapshot is the cached "timer-stats" slot. The count fields keep
// the shape older clients wrote; Sessions is preferred when present.
type timerStatsSnapshot struct {
	SessionsToday  int                  `json:"sessionsToday"`
	TotalStudyTime int                  `json:"totalStudyTime"`
	LastDate       string               `json:"lastDate"`
	Sessions       []model.TimerSession `json:"sessions,omitempty"`
}

type loaded struct {
	tasks    []model.Task
	notes    []model.Note
	config   model.TimerConfig
	sessions []model.TimerSession
	stats    model.DailyStats
	source   Source
}

// Load replaces the in-memory state with a fresh read from the gateway. If
// any read fails it falls back to the cached snapshots; if those cannot be
// read either, nothing is replaced and the cache error is returned. A load
// that finishes after a newer one has already been applied is discarded.
func (s *Store) Load(ctx context.Context) (Source, error) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	today := model.Day(s.now())
	data, err := s.fetch(ctx, today)
	if err != nil {
		s.log.Warn("gateway load failed, falling back to local cache", zap.Error(err))
		data, err = s.fromCache(today)
		if err != nil {
			s.log.Error("local cache read failed, keeping current data", zap.Error(err))
			return s.Source(), err
		}
	}

	s.mu.Lock()
	if seq < s.applied {
		s.mu.Unlock()
		s.log.Debug("discarding stale load", zap.Uint64("seq", seq))
		return data.source, nil
	}
	s.applied = seq
	s.tasks = data.tasks
	s.notes = data.notes
	if data.source == SourceGateway {
		s.config = data.config
		s.sessions = data.sessions
	}
	s.source = data.source
	s.mu.Unlock()

	if data.source == SourceGateway {
		s.stats.Recompute(data.sessions, today)
		s.writeSnapshots(data, today)
	} else {
		s.stats.Fallback(data.stats, today)
	}
	return data.source, nil
}

func (s *Store) fetch(ctx context.Context, today string) (loaded, error) {
	var (
		d   = loaded{source: SourceGateway}
		err error
	)
	if d.tasks, err = s.gw.ListTasks(ctx); err != nil {
		return loaded{}, err
	}
	if d.notes, err = s.gw.ListNotes(ctx); err != nil {
		return loaded{}, err
	}
	if d.config, err = s.gw.GetTimerConfig(ctx); err != nil {
		return loaded{}, err
	}
	if d.sessions, err = s.gw.ListSessions(ctx, today); err != nil {
		return loaded{}, err
	}
	d.stats = stats.Daily(d.sessions, today)
	return d, nil
}

func (s *Store) fromCache(today string) (loaded, error) {
	d := loaded{source: SourceCache}
	if s.cache == nil {
		return d, nil
	}
	if _, err := s.cache.Get(cache.SlotTasks, &d.tasks); err != nil {
		return d, err
	}
	if _, err := s.cache.Get(cache.SlotNotes, &d.notes); err != nil {
		return d, err
	}
	var snap timerStatsSnapshot
	ok, err := s.cache.Get(cache.SlotTimerStats, &snap)
	if err != nil || !ok {
		return d, err
	}
	switch {
	case len(snap.Sessions) > 0:
		d.stats = stats.Daily(snap.Sessions, today)
	case snap.LastDate == today:
		d.stats = model.DailyStats{SessionsToday: snap.SessionsToday, TotalStudyTime: snap.TotalStudyTime}
	}
	return d, nil
}

func (s *Store) writeSnapshots(d loaded, today string) {
	if s.cache == nil {
		return
	}
	puts := []struct {
		slot cache.Slot
		v    any
	}{
		{cache.SlotTasks, d.tasks},
		{cache.SlotNotes, d.notes},
		{cache.SlotTimerStats, timerStatsSnapshot{
			SessionsToday:  d.stats.SessionsToday,
			TotalStudyTime: d.stats.TotalStudyTime,
			LastDate:       today,
			Sessions:       d.sessions,
		}},
	}
	for _, p := range puts {
		if err := s.cache.Put(p.slot, p.v); err != nil {
			s.log.Warn("write cache snapshot failed", zap.String("slot", string(p.slot)), zap.Error(err))
		}
	}
}

// reload runs after a successful write. Its fallback is logged by Load.
func (s *Store) reload(ctx context.Context) {
	_, _ = s.Load(ctx)
}

func (s *Store) Source() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Task(nil), s.tasks...)
}

func (s *Store) Notes() []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Note(nil), s.notes...)
}

func (s *Store) Sessions() []model.TimerSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.TimerSession(nil), s.sessions...)
}

// Config is the last timer configuration read from the gateway.
func (s *Store) Config() model.TimerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Store) Stats() model.DailyStats {
	return s.stats.Current()
}

func (s *Store) task(id model.ID) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s *Store) note(id model.ID) (model.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return model.Note{}, false
}
