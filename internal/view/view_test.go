package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/timer"
)

func TestTaskRowsBadges(t *testing.T) {
	now := time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local)
	tasks := []model.Task{
		{ID: "1", Title: "Quiz", Subject: "Math", IsExam: true, DueDate: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)},
		{ID: "2", Title: "Essay", Subject: "History", DueDate: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local), Completed: true},
		{ID: "3", Title: "Reading", Subject: "Art"},
	}
	rows := TaskRows(tasks, now)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Exam", "Overdue"}, rows[0].Badges())
	require.Equal(t, "Mar 1, 2024 10:00", rows[0].Due)
	require.Empty(t, rows[1].Badges())
	require.True(t, rows[1].Completed)
	require.Empty(t, rows[2].Due)
	require.Empty(t, rows[2].Badges(), "undated task is not overdue")
}

func TestNoteCards(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	notes := []model.Note{
		{ID: "1", Title: "short", Content: "hello", CreatedAt: created, UpdatedAt: created},
		{ID: "2", Title: "long", Content: strings.Repeat("a", 250), CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
	}
	cards := NoteCards(notes)
	require.Equal(t, "hello", cards[0].Preview)
	require.Equal(t, "Created: Mar 1, 2024 09:30", cards[0].Stamp)
	require.Equal(t, strings.Repeat("a", 200)+"...", cards[1].Preview)
	require.Equal(t, "Updated: Mar 1, 2024 10:30", cards[1].Stamp)
}

func TestPreviewExactLength(t *testing.T) {
	s := strings.Repeat("é", 200)
	require.Equal(t, s, Preview(s))
}

func TestTimer(t *testing.T) {
	m := Timer(timer.State{Mode: model.ModeStudy, TimeLeft: 1500, Total: 1500})
	require.Equal(t, "25:00", m.Clock)
	require.Equal(t, "Study", m.Label)
	require.Zero(t, m.Progress)

	m = Timer(timer.State{Mode: model.ModeBreak, TimeLeft: 65, Total: 300, Running: true})
	require.Equal(t, "1:05", m.Clock)
	require.InDelta(t, 235.0/300.0, m.Progress, 1e-9)
	require.True(t, m.Running)
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	tasks := []model.Task{
		{ID: "1", Title: "today", DueDate: time.Date(2024, 3, 10, 17, 0, 0, 0, time.Local)},
		{ID: "2", Title: "exam", IsExam: true, DueDate: time.Date(2024, 3, 12, 9, 0, 0, 0, time.Local)},
	}
	d := Dashboard(tasks, model.DailyStats{SessionsToday: 3, TotalStudyTime: 85}, now, "go")
	require.Len(t, d.Today, 1)
	require.Len(t, d.Exams, 1)
	require.Equal(t, "1h 25m", d.StudyTime)
	require.Equal(t, 3, d.SessionsToday)
	require.Equal(t, "go", d.Quote)
}

func TestQuote(t *testing.T) {
	require.Equal(t, quotes[0], Quote(func(int) int { return 0 }))
	require.Equal(t, quotes[len(quotes)-1], Quote(func(n int) int { return n - 1 }))
}
