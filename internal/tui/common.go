package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/notify"
	"github.com/sadopc/studydesk/internal/stats"
	"github.com/sadopc/studydesk/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewTimer
	viewNotes
	viewReports
	viewSettings
)

var viewNames = []string{"Dashboard", "Tasks", "Timer", "Notes", "Reports", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// loadedMsg follows a full reload of the store.
type loadedMsg struct {
	source store.Source
	err    error
}

// savedMsg follows a task or note write. The store has already reloaded.
type savedMsg struct {
	what string
	err  error
}

type noticeMsg notify.Message

type sessionRecordedMsg struct {
	err error
}

type notesSearchMsg struct {
	query string
	notes []model.Note
}

type reportsDataMsg struct {
	totals []stats.DayTotal
	err    error
}

type settingsAppliedMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func statusFor(what string, err error) statusMsg {
	if err != nil {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
	return statusMsg{text: what}
}
