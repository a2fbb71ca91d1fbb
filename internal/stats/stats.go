// Package stats derives study statistics from completed timer sessions.
package stats

import (
	"fmt"
	"sync"
	"time"

	"github.com/sadopc/studydesk/internal/model"
)

// Daily counts Study sessions dated today and sums their minutes. Break
// sessions never count.
func Daily(sessions []model.TimerSession, today string) model.DailyStats {
	var ds model.DailyStats
	for _, s := range sessions {
		if s.Mode != model.ModeStudy || s.Date != today {
			continue
		}
		ds.SessionsToday++
		ds.TotalStudyTime += s.DurationMinutes
	}
	return ds
}

// Tracker holds the displayed DailyStats. A gateway reload replaces it with
// an authoritative recomputation; RecordStudy bumps it in between.
type Tracker struct {
	mu      sync.Mutex
	current model.DailyStats
	pending model.DailyStats // bumps no gateway read has confirmed yet
	day     string
}

func (t *Tracker) Recompute(sessions []model.TimerSession, today string) model.DailyStats {
	ds := Daily(sessions, today)
	t.mu.Lock()
	t.current = ds
	t.pending = model.DailyStats{}
	t.day = today
	t.mu.Unlock()
	return ds
}

// Fallback applies stats read from the local cache. Snapshots are only
// written by gateway reads, so they never include pending bumps; those are
// added back unless the day has changed.
func (t *Tracker) Fallback(ds model.DailyStats, today string) model.DailyStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.day != "" && t.day != today {
		t.pending = model.DailyStats{}
	}
	t.current = model.DailyStats{
		SessionsToday:  ds.SessionsToday + t.pending.SessionsToday,
		TotalStudyTime: ds.TotalStudyTime + t.pending.TotalStudyTime,
	}
	t.day = today
	return t.current
}

// RecordStudy applies the optimistic adjustment for one finished study phase.
func (t *Tracker) RecordStudy(minutes int) model.DailyStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending.SessionsToday++
	t.pending.TotalStudyTime += minutes
	t.current.SessionsToday++
	t.current.TotalStudyTime += minutes
	return t.current
}

func (t *Tracker) Current() model.DailyStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// DayTotal is the study time for one calendar day.
type DayTotal struct {
	Date     string
	Sessions int
	Minutes  int
}

// Range returns one DayTotal per day starting at from, oldest first.
func Range(sessions []model.TimerSession, from time.Time, days int) []DayTotal {
	totals := make([]DayTotal, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		d := model.Day(from.AddDate(0, 0, i))
		totals[i].Date = d
		index[d] = i
	}
	for _, s := range sessions {
		if s.Mode != model.ModeStudy {
			continue
		}
		if i, ok := index[s.Date]; ok {
			totals[i].Sessions++
			totals[i].Minutes += s.DurationMinutes
		}
	}
	return totals
}

// FormatMinutes renders minutes as "1h 25m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
