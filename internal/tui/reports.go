package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/stats"
	"github.com/sadopc/studydesk/internal/store"
)

const reportDays = 7

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	totals []stats.DayTotal
	err    error

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	if len(r.totals) > 0 {
		r.buildChart()
	}
}

func (r reportsModel) refresh() tea.Cmd {
	s := r.store
	return func() tea.Msg {
		totals, err := s.StudyHistory(context.Background(), reportDays)
		return reportsDataMsg{totals: totals, err: err}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	if msg, ok := msg.(reportsDataMsg); ok {
		r.err = msg.err
		if msg.err == nil {
			r.totals = msg.totals
			r.buildChart()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, d := range r.totals {
		label := d.Date
		if t, err := time.ParseInLocation(model.DateLayout, d.Date, time.Local); err == nil {
			label = t.Format("Mon 02")
		}
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if d.Minutes == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  "Study",
				Value: float64(d.Minutes),
				Style: style,
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", mutedStyle.Render(fmt.Sprintf("study minutes, last %d days", reportDays)),
	)

	if r.err != nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			errorStyle.Render("Study history is unavailable: "+r.err.Error()),
			"",
			r.renderTodaySessions(),
		))
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderTable(w), "", r.renderTodaySessions(),
		),
	)
}

func (r reportsModel) renderTable(w int) string {
	if len(r.totals) == 0 {
		return mutedStyle.Render("  No data for this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %8s %10s", "Date", "Sessions", "Studied")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 32))))

	var sessions, minutes int
	for _, d := range r.totals {
		rows = append(rows, fmt.Sprintf("  %-12s %8d %10s", d.Date, d.Sessions, stats.FormatMinutes(d.Minutes)))
		sessions += d.Sessions
		minutes += d.Minutes
	}
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  %-12s %8d %10s", "Total", sessions, stats.FormatMinutes(minutes))))
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderTodaySessions() string {
	sessions := r.store.Sessions()
	if len(sessions) == 0 {
		return mutedStyle.Render("  No sessions recorded today")
	}
	rows := []string{titleStyle.Render("Today's sessions")}
	for _, s := range sessions {
		rows = append(rows, fmt.Sprintf("  %-6s %3d min", s.Mode.Label(), s.DurationMinutes))
	}
	return strings.Join(rows, "\n")
}
