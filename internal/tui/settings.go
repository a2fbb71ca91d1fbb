package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/store"
	"github.com/sadopc/studydesk/internal/timer"
)

type settingsModel struct {
	store  *store.Store
	engine *timer.Engine
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	studyMinutes *string
	breakMinutes *string
}

func newSettingsModel(s *store.Store, e *timer.Engine) settingsModel {
	study, brk := "", ""
	return settingsModel{
		store:        s,
		engine:       e,
		studyMinutes: &study,
		breakMinutes: &brk,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cfg := s.engine.Config()
	*s.studyMinutes = strconv.Itoa(cfg.StudyDuration)
	*s.breakMinutes = strconv.Itoa(cfg.BreakDuration)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Study duration (%d-%d min)", model.MinStudyMinutes, model.MaxStudyMinutes)).
				Value(s.studyMinutes).
				Validate(minutesInRange(model.MinStudyMinutes, model.MaxStudyMinutes)),
			huh.NewInput().
				Title(fmt.Sprintf("Break duration (%d-%d min)", model.MinBreakMinutes, model.MaxBreakMinutes)).
				Value(s.breakMinutes).
				Validate(minutesInRange(model.MinBreakMinutes, model.MaxBreakMinutes)),
		).Title("Timer"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateAborted:
		s.formActive = false
		s.form = nil
		return s, nil
	case huh.StateCompleted:
		s.formActive = false
		s.form = nil
		return s, s.apply()
	}
	return s, cmd
}

// apply hands the values to the engine, which validates them again, saves
// them and restarts the current phase.
func (s settingsModel) apply() tea.Cmd {
	study, _ := strconv.Atoi(strings.TrimSpace(*s.studyMinutes))
	brk, _ := strconv.Atoi(strings.TrimSpace(*s.breakMinutes))
	cfg := model.TimerConfig{StudyDuration: study, BreakDuration: brk}
	e := s.engine
	return func() tea.Msg {
		return settingsAppliedMsg{err: e.ApplyConfig(context.Background(), cfg)}
	}
}

func minutesInRange(lo, hi int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("enter a whole number of minutes")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cfg := s.engine.Config()
	settings := []struct{ label, value string }{
		{"Study duration", fmt.Sprintf("%d min", cfg.StudyDuration)},
		{"Break duration", fmt.Sprintf("%d min", cfg.BreakDuration)},
		{"Data source", s.store.Source().String()},
	}

	rows := []string{titleStyle.Render("Settings"), ""}
	for _, st := range settings {
		label := lipgloss.NewStyle().Width(24).Render(st.label)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(st.value)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit. Applying stops the timer and restarts the current phase."))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
