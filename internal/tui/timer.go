package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/timer"
	"github.com/sadopc/studydesk/internal/view"
)

// timerModel is the full-screen countdown. The engine owns all state; ticks
// reach it through App.
type timerModel struct {
	engine *timer.Engine
	width  int
	height int
}

func newTimerModel(e *timer.Engine) timerModel {
	return timerModel{engine: e}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Start):
			t.engine.Start()
		case key.Matches(msg, keys.Pause):
			toggleTimer(t.engine)
		case key.Matches(msg, keys.Reset):
			t.engine.Reset()
		}
	}
	return t, nil
}

func (t timerModel) view() string {
	w := t.width - 4
	vm := view.Timer(t.engine.State())
	cfg := t.engine.Config()

	labelStyle := modeLabelStyle(vm.Mode == model.ModeStudy)

	clockStyle := clockStoppedStyle
	indicator := mutedStyle.Render("■  STOPPED")
	switch {
	case vm.Running:
		clockStyle = clockRunningStyle
		indicator = successStyle.Render("●  RUNNING")
	case vm.Progress > 0:
		clockStyle = clockPausedStyle
		indicator = warningStyle.Render("⏸  PAUSED")
	}

	barWidth := w - 10
	if barWidth > 50 {
		barWidth = 50
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Study Timer"),
		"",
		labelStyle.Render(strings.ToUpper(vm.Label)),
		clockStyle.Width(w-6).Render(vm.Clock),
		indicator,
		"",
		progressBar(vm.Progress, barWidth),
		"",
		mutedStyle.Render(fmt.Sprintf("Study %d min · Break %d min", cfg.StudyDuration, cfg.BreakDuration)),
	)

	controls := mutedStyle.Render("s: start  space: pause/resume  r: reset")
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func progressBar(frac float64, width int) string {
	if width < 1 {
		return ""
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	return highlightStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled)) +
		mutedStyle.Render(fmt.Sprintf(" %3d%%", int(frac*100)))
}
