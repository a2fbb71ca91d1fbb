package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/studydesk/internal/gateway/gatewaytest"
	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/stats"
	"github.com/sadopc/studydesk/internal/store"
	"github.com/sadopc/studydesk/internal/timer"
)

var testNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)

type testEnv struct {
	app   App
	fake  *gatewaytest.Fake
	store *store.Store
	bell  *bytes.Buffer
}

func newTestApp(t *testing.T) testEnv {
	t.Helper()
	fake := gatewaytest.NewFake()
	fake.Now = func() time.Time { return testNow }
	clock := func() time.Time { return testNow }

	s := store.New(fake, nil, store.WithClock(clock))
	var bell bytes.Buffer
	n := NewNotifier(&bell)
	e := timer.New(model.DefaultTimerConfig(),
		timer.WithClock(clock),
		timer.WithNotifier(n),
		timer.WithConfigSaver(fake),
		timer.WithSessionRecorder(s.RecordSession),
	)
	app := NewApp(s, e, n, WithClock(clock), WithExportDir(t.TempDir()))
	app.width = 120
	app.height = 40
	app.dashboard.setSize(120, 36)
	app.tasks.setSize(120, 36)
	app.timerView.setSize(120, 36)
	app.notes.setSize(120, 36)
	app.reports.setSize(120, 36)
	app.settings.setSize(120, 36)
	return testEnv{app: app, fake: fake, store: s, bell: &bell}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return app, cmd
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	env := newTestApp(t)
	app := env.app

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.isCapturing() {
		t.Fatal("no view should capture input initially")
	}
}

func TestAppViewStates(t *testing.T) {
	env := newTestApp(t)
	env.fake.SeedTask(model.Task{Title: "Lab report", Subject: "Chemistry", DueDate: testNow})
	env.fake.SeedNote(model.Note{Title: "Cells", Content: "mitochondria"})
	env.store.Load(t.Context())

	app := env.app
	for i := range viewNames {
		app.activeView = viewState(i)
		if output := app.View(); output == "" {
			t.Fatalf("view %d rendered empty", i)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	env := newTestApp(t)
	header := env.app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
	if !strings.Contains(header, "not loaded") {
		t.Fatal("header should show the data source")
	}
}

func TestAppLoadingState(t *testing.T) {
	env := newTestApp(t)
	app := env.app
	app.width = 0
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	env := newTestApp(t)
	app, _ := update(t, env.app, statusMsg{text: "test status"})

	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppTabSwitching(t *testing.T) {
	env := newTestApp(t)
	app := env.app

	app, _ = update(t, app, keyMsg("3"))
	if app.activeView != viewTimer {
		t.Fatalf("expected timer view, got %d", app.activeView)
	}
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewNotes {
		t.Fatalf("tab should advance to notes, got %d", app.activeView)
	}
	app.activeView = viewSettings
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewDashboard {
		t.Fatal("tab should wrap to dashboard")
	}
}

func TestAppTickDrivesEngine(t *testing.T) {
	env := newTestApp(t)
	app := env.app
	app.engine.Start()

	app, _ = update(t, app, tickMsg(testNow))
	if got := app.engine.State().TimeLeft; got != 25*60-1 {
		t.Fatalf("TimeLeft = %d after one tick", got)
	}
	if !strings.Contains(app.renderFooter(), "24:59") {
		t.Fatal("footer should show the running countdown")
	}
}

func TestAppRecordSession(t *testing.T) {
	env := newTestApp(t)
	c := &timer.Completion{
		Session: model.TimerSession{Mode: model.ModeStudy, DurationMinutes: 25, Date: "2024-03-10"},
		Next:    model.ModeBreak,
	}
	msg := env.app.recordSession(c)()
	if rec, ok := msg.(sessionRecordedMsg); !ok || rec.err != nil {
		t.Fatalf("unexpected msg %#v", msg)
	}
	if len(env.fake.Sessions()) != 1 {
		t.Fatal("session should reach the gateway")
	}
	if got := env.store.Stats(); got.SessionsToday != 1 || got.TotalStudyTime != 25 {
		t.Fatalf("stats = %+v", got)
	}
}

func TestAppNoticeSetsStatus(t *testing.T) {
	env := newTestApp(t)
	app, cmd := update(t, env.app, noticeMsg{Title: "Break time over!", Body: "Ready for another study session?"})
	if !strings.Contains(app.status, "Break time over!") {
		t.Fatalf("status = %q", app.status)
	}
	if cmd == nil {
		t.Fatal("notice should re-arm the listener")
	}
}

func TestAppLoadedOffline(t *testing.T) {
	env := newTestApp(t)
	app, _ := update(t, env.app, loadedMsg{source: store.SourceCache})
	if !app.statusErr || !strings.Contains(app.status, "Offline") {
		t.Fatalf("status = %q", app.status)
	}
}

func TestAppSavedError(t *testing.T) {
	env := newTestApp(t)
	app, _ := update(t, env.app, savedMsg{what: "Task saved", err: os.ErrDeadlineExceeded})
	if !app.statusErr {
		t.Fatal("write failure should be an error status")
	}
}

func TestAppExport(t *testing.T) {
	env := newTestApp(t)
	env.fake.SeedTask(model.Task{Title: "Essay"})
	env.fake.SeedSession(model.TimerSession{Mode: model.ModeStudy, DurationMinutes: 25, Date: "2024-03-09"})
	env.store.Load(t.Context())

	for format := range exportFormats {
		msg := env.app.doExport(format)()
		done, ok := msg.(exportDoneMsg)
		if !ok {
			t.Fatalf("format %d: unexpected msg %#v", format, msg)
		}
		if _, err := os.Stat(done.path); err != nil {
			t.Fatalf("format %d: %v", format, err)
		}
		if filepath.Dir(done.path) != env.app.exportDir {
			t.Fatalf("export written to %s", done.path)
		}
	}
}

func TestAppExportPicker(t *testing.T) {
	env := newTestApp(t)
	app, _ := update(t, env.app, keyMsg("x"))
	if !app.exportPicking {
		t.Fatal("x should open the export picker")
	}
	app, _ = update(t, app, keyMsg("j"))
	app, _ = update(t, app, keyMsg("j"))
	app, _ = update(t, app, keyMsg("j"))
	if app.exportCursor != len(exportFormats)-1 {
		t.Fatalf("cursor = %d", app.exportCursor)
	}
	app, _ = update(t, app, keyMsg("esc"))
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// ============================================================
// Notifier
// ============================================================

func TestNotifierFallsBackToBell(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf)
	for i := 0; i < cap(n.ch); i++ {
		n.Notify("t", "m")
	}
	if buf.Len() != 0 {
		t.Fatal("buffered notices should not ring")
	}
	n.Notify("Study session complete!", "Time for a 5-minute break.")
	if !strings.Contains(buf.String(), "Study session complete!") {
		t.Fatalf("fallback output = %q", buf.String())
	}
}

func TestNotifierDelivers(t *testing.T) {
	n := NewNotifier(&bytes.Buffer{})
	n.Notify("Settings Applied", "Study: 50min, Break: 10min")
	msg := n.wait()()
	if got := msg.(noticeMsg); got.Title != "Settings Applied" {
		t.Fatalf("got %+v", got)
	}
}

// ============================================================
// Timer view
// ============================================================

func TestTimerKeys(t *testing.T) {
	env := newTestApp(t)
	tm := env.app.timerView

	tm, _ = tm.update(keyMsg("s"))
	if !tm.engine.State().Running {
		t.Fatal("s should start the timer")
	}
	tm, _ = tm.update(keyMsg(" "))
	if tm.engine.State().Running {
		t.Fatal("space should pause a running timer")
	}
	tm.engine.Start()
	tm.engine.Tick()
	tm, _ = tm.update(keyMsg("r"))
	st := tm.engine.State()
	if st.Running || st.TimeLeft != st.Total {
		t.Fatalf("reset state = %+v", st)
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(0.5, 10); !strings.Contains(got, "█████") || !strings.Contains(got, "50%") {
		t.Fatalf("progressBar = %q", got)
	}
	if progressBar(0.5, 0) != "" {
		t.Fatal("zero width should render nothing")
	}
	if got := progressBar(2, 4); !strings.Contains(got, "100%") {
		t.Fatalf("overflow not clamped: %q", got)
	}
}

// ============================================================
// Tasks view
// ============================================================

func TestTasksToggleCmd(t *testing.T) {
	env := newTestApp(t)
	id := env.fake.SeedTask(model.Task{Title: "Flashcards", Subject: "Biology"})
	env.store.Load(t.Context())

	tm, cmd := env.app.tasks.update(keyMsg("c"))
	if cmd == nil {
		t.Fatal("c should produce a toggle command")
	}
	msg := cmd()
	if saved, ok := msg.(savedMsg); !ok || saved.err != nil {
		t.Fatalf("unexpected msg %#v", msg)
	}
	task, _ := tm.store.Task(id)
	if !task.Completed {
		t.Fatal("task should be completed")
	}
}

func TestTasksFilterKeys(t *testing.T) {
	env := newTestApp(t)
	env.fake.SeedTask(model.Task{Title: "a", Subject: "Math"})
	env.fake.SeedTask(model.Task{Title: "b", Subject: "Art", Completed: true})
	env.store.Load(t.Context())

	tm := env.app.tasks
	tm, _ = tm.update(keyMsg("f"))
	if tm.filter.Status != store.StatusPending {
		t.Fatalf("status = %q", tm.filter.Status)
	}
	if len(tm.rows()) != 1 {
		t.Fatalf("rows = %d", len(tm.rows()))
	}
	tm, _ = tm.update(keyMsg("l"))
	if tm.filter.Subject != "Math" {
		t.Fatalf("subject = %q", tm.filter.Subject)
	}
	tm, _ = tm.update(keyMsg("h"))
	if tm.filter.Subject != "" {
		t.Fatalf("subject should cycle back to all, got %q", tm.filter.Subject)
	}
}

func TestTasksSubmitNew(t *testing.T) {
	env := newTestApp(t)
	tm := env.app.tasks
	tm.formType = "new"
	*tm.formTitle = "  Midterm  "
	*tm.formSubject = "Physics"
	*tm.formDue = "2024-03-15 09:00"
	*tm.formExam = true

	msg := tm.submit()()
	if saved, ok := msg.(savedMsg); !ok || saved.err != nil {
		t.Fatalf("unexpected msg %#v", msg)
	}
	tasks := env.store.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Midterm" || !tasks[0].IsExam {
		t.Fatalf("tasks = %+v", tasks)
	}
	if tasks[0].DueDate.Day() != 15 || tasks[0].DueDate.Hour() != 9 {
		t.Fatalf("due = %v", tasks[0].DueDate)
	}
}

func TestTasksSubmitDeleteDeclined(t *testing.T) {
	env := newTestApp(t)
	id := env.fake.SeedTask(model.Task{Title: "Keep me"})
	env.store.Load(t.Context())

	tm := env.app.tasks
	tm.formType = "delete"
	tm.editingID = id
	*tm.formConfirm = false

	msg := tm.submit()()
	if st, ok := msg.(statusMsg); !ok || st.text != "Delete cancelled" {
		t.Fatalf("unexpected msg %#v", msg)
	}
	if env.fake.CountCalls("DeleteTask") != 0 {
		t.Fatal("declined delete must not reach the gateway")
	}
}

func TestCycleSubject(t *testing.T) {
	subjects := []string{"Math", "Art"}
	if got := cycleSubject(subjects, "", 1); got != "Math" {
		t.Fatalf("got %q", got)
	}
	if got := cycleSubject(subjects, "Art", 1); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := cycleSubject(subjects, "", -1); got != "Art" {
		t.Fatalf("got %q", got)
	}
	if got := cycleSubject(nil, "", 1); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestFormValidators(t *testing.T) {
	if requireText("title")("   ") == nil {
		t.Fatal("blank title should fail")
	}
	if validateDue("2024-03-15 09:00") != nil {
		t.Fatal("valid due date rejected")
	}
	if validateDue("  ") == nil {
		t.Fatal("missing due date accepted")
	}
	if validateDue("next friday") == nil {
		t.Fatal("bad due date accepted")
	}
	check := minutesInRange(1, 120)
	for _, v := range []string{"1", "120", " 25 "} {
		if err := check(v); err != nil {
			t.Fatalf("%q rejected: %v", v, err)
		}
	}
	for _, v := range []string{"0", "121", "abc", ""} {
		if check(v) == nil {
			t.Fatalf("%q accepted", v)
		}
	}
}

// ============================================================
// Notes view
// ============================================================

func TestNotesSearch(t *testing.T) {
	env := newTestApp(t)
	env.fake.SeedNote(model.Note{Title: "Exam prep", Content: "review"})
	env.fake.SeedNote(model.Note{Title: "Groceries", Content: "milk"})
	env.store.Load(t.Context())

	nm := env.app.notes
	nm, _ = nm.update(keyMsg("/"))
	if !nm.searching {
		t.Fatal("/ should focus the search box")
	}
	for _, r := range "exam" {
		nm, _ = nm.update(keyMsg(string(r)))
	}
	nm, cmd := nm.update(keyMsg("enter"))
	if nm.query != "exam" || cmd == nil {
		t.Fatalf("query = %q", nm.query)
	}
	nm, _ = nm.update(cmd())
	if len(nm.notes()) != 1 {
		t.Fatalf("notes = %d", len(nm.notes()))
	}

	// A late result for an earlier query is ignored.
	nm, _ = nm.update(notesSearchMsg{query: "milk", notes: nil})
	if len(nm.notes()) != 1 {
		t.Fatal("stale search result applied")
	}

	nm, _ = nm.update(keyMsg("esc"))
	if len(nm.notes()) != 2 {
		t.Fatal("esc should clear the search")
	}
}

func TestNotesSubmitEdit(t *testing.T) {
	env := newTestApp(t)
	id := env.fake.SeedNote(model.Note{Title: "Cells", Content: "mitochondria"})
	env.store.Load(t.Context())

	nm := env.app.notes
	nm.formType = "edit"
	nm.editingID = id
	*nm.formTitle = "Cells"
	*nm.formContent = "ribosomes"

	if msg := nm.submit()(); msg.(savedMsg).err != nil {
		t.Fatalf("unexpected msg %#v", msg)
	}
	note, _ := env.store.Note(id)
	if note.Content != "ribosomes" {
		t.Fatalf("content = %q", note.Content)
	}
}

// ============================================================
// Reports view
// ============================================================

func TestReportsRefresh(t *testing.T) {
	env := newTestApp(t)
	env.fake.SeedSession(model.TimerSession{Mode: model.ModeStudy, DurationMinutes: 50, Date: "2024-03-09"})

	rm := env.app.reports
	rm, _ = rm.update(rm.refresh()())
	if rm.err != nil {
		t.Fatal(rm.err)
	}
	if len(rm.totals) != reportDays {
		t.Fatalf("totals = %d", len(rm.totals))
	}
	if !strings.Contains(rm.view(), "50m") {
		t.Fatal("report should list yesterday's study time")
	}
}

func TestReportsOffline(t *testing.T) {
	env := newTestApp(t)
	rm, _ := env.app.reports.update(reportsDataMsg{err: os.ErrDeadlineExceeded})
	if !strings.Contains(rm.view(), "unavailable") {
		t.Fatal("report should explain the failure")
	}
	rm, _ = rm.update(reportsDataMsg{totals: []stats.DayTotal{{Date: "2024-03-10", Minutes: 25}}})
	if rm.err != nil {
		t.Fatal("successful refresh should clear the error")
	}
}

// ============================================================
// Settings view
// ============================================================

func TestSettingsApply(t *testing.T) {
	env := newTestApp(t)
	sm := env.app.settings
	*sm.studyMinutes = "50"
	*sm.breakMinutes = "10"

	msg := sm.apply()()
	if applied, ok := msg.(settingsAppliedMsg); !ok || applied.err != nil {
		t.Fatalf("unexpected msg %#v", msg)
	}
	want := model.TimerConfig{StudyDuration: 50, BreakDuration: 10}
	if sm.engine.Config() != want {
		t.Fatalf("engine config = %+v", sm.engine.Config())
	}
	if got := env.fake.StoredConfig(); got == nil || *got != want {
		t.Fatalf("stored config = %+v", got)
	}
	if st := sm.engine.State(); st.TimeLeft != 50*60 {
		t.Fatalf("TimeLeft = %d", st.TimeLeft)
	}
}

func TestSettingsApplyOutOfRange(t *testing.T) {
	env := newTestApp(t)
	sm := env.app.settings
	*sm.studyMinutes = "0"
	*sm.breakMinutes = "5"

	msg := sm.apply()()
	if applied := msg.(settingsAppliedMsg); applied.err == nil {
		t.Fatal("out-of-range config should fail")
	}
	if sm.engine.Config() != model.DefaultTimerConfig() {
		t.Fatal("config should be unchanged")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test: render without panicking)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"clockStopped", func() string { return clockStoppedStyle.Render("test") }},
		{"clockRunning", func() string { return clockRunningStyle.Render("test") }},
		{"clockPaused", func() string { return clockPausedStyle.Render("test") }},
		{"studyLabel", func() string { return modeLabelStyle(true).Render("test") }},
		{"breakLabel", func() string { return modeLabelStyle(false).Render("test") }},
		{"examBadge", func() string { return badgeStyle("Exam").Render("test") }},
		{"overdueBadge", func() string { return badgeStyle("Overdue").Render("test") }},
		{"completedItem", func() string { return completedItemStyle.Render("test") }},
		{"quote", func() string { return quoteStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
