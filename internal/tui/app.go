package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/studydesk/internal/export"
	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/store"
	"github.com/sadopc/studydesk/internal/timer"
	"github.com/sadopc/studydesk/internal/view"
)

var exportFormats = []string{"Tasks (CSV)", "Sessions (CSV)", "Everything (JSON)"}

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	engine  *timer.Engine
	notices *Notifier
	log     *zap.Logger
	now     func() time.Time

	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	tasks     tasksModel
	timerView timerModel
	notes     notesModel
	reports   reportsModel
	settings  settingsModel

	help      help.Model
	status    string
	statusErr bool
}

type Option func(*App)

func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithExportDir sets where exports are written; the home directory otherwise.
func WithExportDir(dir string) Option {
	return func(a *App) { a.exportDir = dir }
}

func NewApp(s *store.Store, e *timer.Engine, n *Notifier, opts ...Option) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		store:      s,
		engine:     e,
		notices:    n,
		log:        zap.NewNop(),
		now:        time.Now,
		activeView: viewDashboard,
		help:       h,
	}
	for _, opt := range opts {
		opt(&a)
	}
	if a.exportDir == "" {
		a.exportDir, _ = os.UserHomeDir()
	}

	a.dashboard = newDashboardModel(s, e, a.now)
	a.tasks = newTasksModel(s, a.now)
	a.timerView = newTimerModel(e)
	a.notes = newNotesModel(s)
	a.reports = newReportsModel(s)
	a.settings = newSettingsModel(s, e)
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		a.notices.wait(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) reload() tea.Cmd {
	return func() tea.Msg {
		src, err := a.store.Load(context.Background())
		return loadedMsg{source: src, err: err}
	}
}

func (a App) recordSession(c *timer.Completion) tea.Cmd {
	return func() tea.Msg {
		return sessionRecordedMsg{err: a.engine.Record(context.Background(), c)}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.timerView.setSize(a.width, contentHeight)
		a.notes.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A child view capturing input (form or search box) gets keys first.
		if a.isCapturing() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Refresh):
			a.status = "Reloading..."
			a.statusErr = false
			return a, a.reload()
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewTasks)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewTimer)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewNotes)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewReports)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if c := a.engine.Tick(); c != nil {
			cmds = append(cmds, a.recordSession(c))
		}
		return a, tea.Batch(cmds...)

	case noticeMsg:
		a.status = fmt.Sprintf("%s %s", msg.Title, msg.Body)
		a.statusErr = false
		return a, tea.Batch(a.notices.wait(), a.notices.ring())

	case sessionRecordedMsg:
		// Already logged by the store; the stats bump stays until the next reload.
		if msg.err != nil {
			a.log.Debug("session not saved", zap.Error(msg.err))
		}
		if a.activeView == viewReports {
			return a, a.reports.refresh()
		}
		return a, nil

	case loadedMsg:
		switch {
		case msg.err != nil:
			a.status, a.statusErr = fmt.Sprintf("Error: %v", msg.err), true
		case msg.source == store.SourceCache:
			a.status, a.statusErr = "Offline: showing cached data", true
		default:
			a.status, a.statusErr = "Data reloaded", false
		}
		a.dashboard.newQuote()
		return a, a.refreshCurrentView()

	case savedMsg:
		st := statusFor(msg.what, msg.err)
		a.status, a.statusErr = st.text, st.isError
		return a, a.notes.refresh()

	case settingsAppliedMsg:
		if msg.err != nil {
			a.status, a.statusErr = fmt.Sprintf("Error: %v", msg.err), true
		}
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	case notesSearchMsg:
		var cmd tea.Cmd
		a.notes, cmd = a.notes.update(msg)
		return a, cmd

	case reportsDataMsg:
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewTimer:
		a.timerView, cmd = a.timerView.update(msg)
	case viewNotes:
		a.notes, cmd = a.notes.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isCapturing() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewNotes:
		return a.notes.formActive || a.notes.searching
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewNotes:
		return a.notes.refresh()
	case viewReports:
		return a.reports.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTasks:
		content = a.tasks.view()
	case viewTimer:
		content = a.timerView.view()
	case viewNotes:
		content = a.notes.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := brandStyle.Render("studydesk")
	source := a.store.Source()
	badge := onlineBadgeStyle.Render(" ● " + source.String())
	if source != store.SourceGateway {
		badge = offlineBadgeStyle.Render(" ● " + source.String())
	}
	title += badge

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// The countdown stays visible from every view while it runs.
	timerInfo := ""
	if st := a.engine.State(); st.Running {
		vm := view.Timer(st)
		timerInfo = successStyle.Render(fmt.Sprintf(" ● %s %s", vm.Label, vm.Clock))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		dateStr := a.now().Format("2006-01-02")
		tasks := a.store.Tasks()

		var sessions []model.TimerSession
		if format != 0 {
			var err error
			sessions, err = a.store.AllSessions(context.Background())
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
		}

		var path string
		switch format {
		case 0:
			path = filepath.Join(a.exportDir, fmt.Sprintf("studydesk-tasks-%s.csv", dateStr))
			if err := export.TasksToCSV(tasks, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		case 1:
			path = filepath.Join(a.exportDir, fmt.Sprintf("studydesk-sessions-%s.csv", dateStr))
			if err := export.SessionsToCSV(sessions, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		default:
			path = filepath.Join(a.exportDir, fmt.Sprintf("studydesk-export-%s.json", dateStr))
			if err := export.ToJSON(tasks, sessions, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
