package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/store"
	"github.com/sadopc/studydesk/internal/timer"
	"github.com/sadopc/studydesk/internal/view"
)

type dashboardModel struct {
	store  *store.Store
	engine *timer.Engine
	now    func() time.Time
	width  int
	height int

	quote string
}

func newDashboardModel(s *store.Store, e *timer.Engine, now func() time.Time) dashboardModel {
	return dashboardModel{
		store:  s,
		engine: e,
		now:    now,
		quote:  view.Quote(rand.IntN),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d *dashboardModel) newQuote() {
	d.quote = view.Quote(rand.IntN)
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Start):
			d.engine.Start()
		case key.Matches(msg, keys.Pause):
			toggleTimer(d.engine)
		}
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4
	m := view.Dashboard(d.store.Tasks(), d.store.Stats(), d.now(), d.quote)

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderStudyPanel(contentWidth, m),
		d.renderTaskPanel(contentWidth, "Today's Tasks", m.Today, "No tasks for today"),
		d.renderTaskPanel(contentWidth, "Upcoming Exams", m.Exams, "No upcoming exams"),
		panelStyle.Width(contentWidth).Render(quoteStyle.Render(m.Quote)),
	)
}

func (d dashboardModel) renderStudyPanel(w int, m view.DashboardModel) string {
	tm := view.Timer(d.engine.State())

	clock := clockStoppedStyle.Render(tm.Clock)
	indicator := mutedStyle.Render("■  STOPPED")
	if tm.Running {
		clock = clockRunningStyle.Render(tm.Clock)
		indicator = successStyle.Render("●  RUNNING")
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		modeLabelStyle(tm.Mode == model.ModeStudy).Render(tm.Label),
		clock,
		indicator,
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Studied today"),
		highlightStyle.Render(m.StudyTime),
		mutedStyle.Render(fmt.Sprintf("%d sessions", m.SessionsToday)),
	)
	half := (w - 6) / 2
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half).Render(left),
		lipgloss.NewStyle().Width(half).Render(right),
	)
	return panelStyle.Width(w).Render(row)
}

func (d dashboardModel) renderTaskPanel(w int, title string, rows []view.TaskRow, empty string) string {
	lines := []string{titleStyle.Render(title)}
	if len(rows) == 0 {
		lines = append(lines, mutedStyle.Render(empty))
	}
	for _, r := range rows {
		lines = append(lines, renderTaskLine(r, false))
	}
	return panelStyle.Width(w).Render(strings.Join(lines, "\n"))
}

// renderTaskLine is shared by the dashboard and the task list.
func renderTaskLine(r view.TaskRow, selected bool) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}
	check := "○"
	if r.Completed {
		check = successStyle.Render("✓")
		style = completedItemStyle
	}

	line := fmt.Sprintf("%s%s %s", cursor, check, style.Render(r.Title))
	if r.Subject != "" {
		line += "  " + highlightStyle.Render(r.Subject)
	}
	if r.Due != "" {
		line += "  " + mutedStyle.Render(r.Due)
	}
	for _, b := range r.Badges() {
		line += " " + badgeStyle(b).Render("["+b+"]")
	}
	return line
}

func toggleTimer(e *timer.Engine) {
	if e.State().Running {
		e.Pause()
		return
	}
	e.Start()
}
