// Package view turns store and timer state into display models. Everything
// here is pure so the terminal UI stays thin and the rules stay testable.
package view

import (
	"fmt"
	"time"

	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/stats"
	"github.com/sadopc/studydesk/internal/store"
	"github.com/sadopc/studydesk/internal/timer"
)

const (
	DateTimeLayout = "Jan 2, 2006 15:04"
	PreviewLength  = 200
)

// FormatDate renders a due date or note timestamp; zero times render empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateTimeLayout)
}

type TaskRow struct {
	ID          model.ID
	Title       string
	Description string
	Subject     string
	Due         string
	Exam        bool
	Overdue     bool
	Completed   bool
}

func TaskRows(tasks []model.Task, now time.Time) []TaskRow {
	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, TaskRow{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Subject:     t.Subject,
			Due:         FormatDate(t.DueDate),
			Exam:        t.IsExam,
			Overdue:     store.IsOverdue(t, now),
			Completed:   t.Completed,
		})
	}
	return rows
}

// Badges lists the short markers shown next to a task title.
func (r TaskRow) Badges() []string {
	var b []string
	if r.Exam {
		b = append(b, "Exam")
	}
	if r.Overdue {
		b = append(b, "Overdue")
	}
	return b
}

type NoteCard struct {
	ID      model.ID
	Title   string
	Preview string
	Stamp   string // "Created: ..." or "Updated: ..."
}

func NoteCards(notes []model.Note) []NoteCard {
	cards := make([]NoteCard, 0, len(notes))
	for _, n := range notes {
		label := "Created"
		if !n.UpdatedAt.Equal(n.CreatedAt) {
			label = "Updated"
		}
		cards = append(cards, NoteCard{
			ID:      n.ID,
			Title:   n.Title,
			Preview: Preview(n.Content),
			Stamp:   label + ": " + FormatDate(n.UpdatedAt),
		})
	}
	return cards
}

// Preview truncates content to PreviewLength runes and appends "..." when cut.
func Preview(content string) string {
	r := []rune(content)
	if len(r) <= PreviewLength {
		return content
	}
	return string(r[:PreviewLength]) + "..."
}

type TimerModel struct {
	Mode     model.Mode
	Label    string
	Clock    string
	Progress float64
	Running  bool
}

func Timer(s timer.State) TimerModel {
	left := s.TimeLeft
	if left < 0 {
		left = 0
	}
	var progress float64
	if s.Total > 0 {
		progress = float64(s.Total-left) / float64(s.Total)
	}
	return TimerModel{
		Mode:     s.Mode,
		Label:    s.Mode.Label(),
		Clock:    fmt.Sprintf("%d:%02d", left/60, left%60),
		Progress: progress,
		Running:  s.Running,
	}
}

type DashboardModel struct {
	Today         []TaskRow
	Exams         []TaskRow
	StudyTime     string
	SessionsToday int
	Quote         string
}

func Dashboard(tasks []model.Task, ds model.DailyStats, now time.Time, quote string) DashboardModel {
	return DashboardModel{
		Today:         TaskRows(store.TodayTasks(tasks, now), now),
		Exams:         TaskRows(store.UpcomingExams(tasks, now), now),
		StudyTime:     stats.FormatMinutes(ds.TotalStudyTime),
		SessionsToday: ds.SessionsToday,
		Quote:         quote,
	}
}
