package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/stats"
)

// RecordSession stores a completed phase. A study phase bumps today's stats
// right away; the next gateway reload replaces the bump with the recomputed
// value, while a reload served from the cache keeps it. Callers log the
// error, they do not surface it.
func (s *Store) RecordSession(ctx context.Context, sess model.TimerSession) error {
	if sess.Mode == model.ModeStudy {
		s.stats.RecordStudy(sess.DurationMinutes)
	}
	if err := s.gw.CreateSession(ctx, sess); err != nil {
		s.log.Warn("save timer session failed",
			zap.String("mode", string(sess.Mode)),
			zap.Int("minutes", sess.DurationMinutes),
			zap.Error(err),
		)
		return fmt.Errorf("save timer session: %w", err)
	}
	s.reload(ctx)
	return nil
}

// StudyHistory lists study totals for the last days days, ending today.
func (s *Store) StudyHistory(ctx context.Context, days int) ([]stats.DayTotal, error) {
	end := s.now()
	from := end.AddDate(0, 0, 1-days)
	var all []model.TimerSession
	for i := 0; i < days; i++ {
		day := model.Day(from.AddDate(0, 0, i))
		sessions, err := s.gw.ListSessions(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("study history: %w", err)
		}
		all = append(all, sessions...)
	}
	return stats.Range(all, from, days), nil
}

// AllSessions lists every recorded session, for export.
func (s *Store) AllSessions(ctx context.Context) ([]model.TimerSession, error) {
	sessions, err := s.gw.ListSessions(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
