package store

import (
	"strings"
	"time"

	"github.com/sadopc/studydesk/internal/model"
)

// Status filters tasks by completion.
type Status string

const (
	StatusAny       Status = ""
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// TaskFilter is the task list view's filter. An empty Subject matches all.
type TaskFilter struct {
	Subject string
	Status  Status
}

// FilterTasks keeps the source order.
func FilterTasks(tasks []model.Task, f TaskFilter) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if f.Subject != "" && t.Subject != f.Subject {
			continue
		}
		switch f.Status {
		case StatusPending:
			if t.Completed {
				continue
			}
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// FilterNotes matches query case-insensitively against title and content.
func FilterNotes(notes []model.Note, query string) []model.Note {
	if query == "" {
		return notes
	}
	q := strings.ToLower(query)
	var out []model.Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}

// IsOverdue reports a due date strictly before now on an open task. A task
// without a due date is never overdue.
func IsOverdue(t model.Task, now time.Time) bool {
	return !t.Completed && !t.DueDate.IsZero() && t.DueDate.Before(now)
}

// TodayTasks are tasks due on now's calendar day.
func TodayTasks(tasks []model.Task, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if model.SameDay(t.DueDate, now) {
			out = append(out, t)
		}
	}
	return out
}

// UpcomingExams are exams due within [now, now+7 days].
func UpcomingExams(tasks []model.Task, now time.Time) []model.Task {
	limit := now.Add(7 * 24 * time.Hour)
	var out []model.Task
	for _, t := range tasks {
		if !t.IsExam || t.DueDate.IsZero() {
			continue
		}
		if t.DueDate.Before(now) || t.DueDate.After(limit) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Subjects lists distinct subjects in first-seen order.
func Subjects(tasks []model.Task) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tasks {
		if t.Subject == "" || seen[t.Subject] {
			continue
		}
		seen[t.Subject] = true
		out = append(out, t.Subject)
	}
	return out
}

func (s *Store) FilterTasks(f TaskFilter) []model.Task {
	return FilterTasks(s.Tasks(), f)
}

func (s *Store) TodayTasks(now time.Time) []model.Task {
	return TodayTasks(s.Tasks(), now)
}

func (s *Store) UpcomingExams(now time.Time) []model.Task {
	return UpcomingExams(s.Tasks(), now)
}

func (s *Store) Subjects() []string {
	return Subjects(s.Tasks())
}
