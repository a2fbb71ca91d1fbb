package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/store"
	"github.com/sadopc/studydesk/internal/view"
)

const dueInputLayout = "2006-01-02 15:04"

var statusCycle = []store.Status{store.StatusAny, store.StatusPending, store.StatusCompleted}

type tasksModel struct {
	store  *store.Store
	now    func() time.Time
	width  int
	height int

	cursor int
	filter store.TaskFilter

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit", "delete"
	editingID  model.ID

	// Form field pointers (survive value copies)
	formTitle   *string
	formDesc    *string
	formSubject *string
	formDue     *string
	formExam    *bool
	formConfirm *bool
}

func newTasksModel(s *store.Store, now func() time.Time) tasksModel {
	title, desc, subject, due := "", "", "", ""
	exam, confirm := false, false
	return tasksModel{
		store:       s,
		now:         now,
		formTitle:   &title,
		formDesc:    &desc,
		formSubject: &subject,
		formDue:     &due,
		formExam:    &exam,
		formConfirm: &confirm,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t tasksModel) rows() []view.TaskRow {
	return view.TaskRows(t.store.FilterTasks(t.filter), t.now())
}

func (t tasksModel) selected() (view.TaskRow, bool) {
	rows := t.rows()
	if len(rows) == 0 {
		return view.TaskRow{}, false
	}
	return rows[min(t.cursor, len(rows)-1)], true
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	n := len(t.rows())
	switch {
	case key.Matches(km, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(km, keys.Down):
		if t.cursor < n-1 {
			t.cursor++
		}
	case key.Matches(km, keys.New):
		return t.showTaskForm(nil)
	case key.Matches(km, keys.Edit):
		if r, ok := t.selected(); ok {
			if task, ok := t.store.Task(r.ID); ok {
				return t.showTaskForm(&task)
			}
		}
	case key.Matches(km, keys.Toggle), key.Matches(km, keys.Enter):
		if r, ok := t.selected(); ok {
			return t, t.toggle(r.ID)
		}
	case key.Matches(km, keys.Delete):
		if r, ok := t.selected(); ok {
			return t.showDeleteConfirm(r)
		}
	case key.Matches(km, keys.Filter):
		t.filter.Status = nextStatus(t.filter.Status)
		t.cursor = 0
	case key.Matches(km, keys.Right):
		t.filter.Subject = cycleSubject(t.store.Subjects(), t.filter.Subject, 1)
		t.cursor = 0
	case key.Matches(km, keys.Left):
		t.filter.Subject = cycleSubject(t.store.Subjects(), t.filter.Subject, -1)
		t.cursor = 0
	}
	return t, nil
}

func nextStatus(s store.Status) store.Status {
	for i, st := range statusCycle {
		if st == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return store.StatusAny
}

// cycleSubject steps through "" (all subjects) followed by subjects.
func cycleSubject(subjects []string, current string, step int) string {
	options := append([]string{""}, subjects...)
	idx := 0
	for i, s := range options {
		if s == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(options)) % len(options)
	return options[idx]
}

func (t tasksModel) toggle(id model.ID) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{what: "Task updated", err: t.store.ToggleTask(context.Background(), id)}
	}
}

func (t tasksModel) showTaskForm(task *model.Task) (tasksModel, tea.Cmd) {
	*t.formTitle, *t.formDesc, *t.formSubject, *t.formDue = "", "", "", ""
	*t.formExam = false
	t.formType = "new"
	t.editingID = ""
	if task != nil {
		*t.formTitle = task.Title
		*t.formDesc = task.Description
		*t.formSubject = task.Subject
		if !task.DueDate.IsZero() {
			*t.formDue = task.DueDate.Local().Format(dueInputLayout)
		}
		*t.formExam = task.IsExam
		t.formType = "edit"
		t.editingID = task.ID
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(t.formTitle).Validate(requireText("title")),
			huh.NewText().Title("Description").Value(t.formDesc),
			huh.NewInput().Title("Subject").Value(t.formSubject),
			huh.NewInput().Title("Due (YYYY-MM-DD HH:MM)").Value(t.formDue).Validate(validateDue),
			huh.NewConfirm().Title("Exam?").Value(t.formExam),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) showDeleteConfirm(r view.TaskRow) (tasksModel, tea.Cmd) {
	*t.formConfirm = false
	t.formType = "delete"
	t.editingID = r.ID

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(store.DeleteTaskPrompt).
				Description(r.Title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(t.formConfirm),
		),
	)
	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	switch t.form.State {
	case huh.StateAborted:
		t.formActive = false
		t.form = nil
		return t, nil
	case huh.StateCompleted:
		t.formActive = false
		t.form = nil
		return t, t.submit()
	}
	return t, cmd
}

func (t tasksModel) submit() tea.Cmd {
	s, id := t.store, t.editingID
	switch t.formType {
	case "delete":
		confirm := store.Confirmed(*t.formConfirm)
		return func() tea.Msg {
			deleted, err := s.DeleteTask(context.Background(), id, confirm)
			if err == nil && !deleted {
				return statusMsg{text: "Delete cancelled"}
			}
			return savedMsg{what: "Task deleted", err: err}
		}
	}

	due, _ := model.ParseTime(strings.TrimSpace(*t.formDue))
	task := model.Task{
		ID:          id,
		Title:       strings.TrimSpace(*t.formTitle),
		Description: *t.formDesc,
		Subject:     strings.TrimSpace(*t.formSubject),
		DueDate:     due,
		IsExam:      *t.formExam,
	}
	if t.formType == "edit" {
		if cur, ok := s.Task(id); ok {
			task.Completed = cur.Completed
		}
		return func() tea.Msg {
			return savedMsg{what: "Task saved", err: s.UpdateTask(context.Background(), task)}
		}
	}
	return func() tea.Msg {
		return savedMsg{what: "Task created", err: s.CreateTask(context.Background(), task)}
	}
}

func requireText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func validateDue(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("due date is required")
	}
	if _, err := model.ParseTime(s); err != nil {
		return errors.New("use YYYY-MM-DD HH:MM")
	}
	return nil
}

func (t tasksModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		title := "New Task"
		switch t.formType {
		case "edit":
			title = "Edit Task"
		case "delete":
			title = "Delete Task"
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", t.form.View())
		return panelStyle.Width(w).Render(content)
	}

	subject := t.filter.Subject
	if subject == "" {
		subject = "All Subjects"
	}
	status := string(t.filter.Status)
	if status == "" {
		status = "all"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Tasks"), "  ",
		highlightStyle.Render(subject), mutedStyle.Render(" · "), highlightStyle.Render(status),
	)

	rows := t.rows()
	lines := []string{header, ""}
	if len(rows) == 0 {
		lines = append(lines, mutedStyle.Render("No tasks found. Press n to add one."))
	}
	cursor := min(t.cursor, len(rows)-1)
	for i, r := range rows {
		lines = append(lines, renderTaskLine(r, i == cursor))
		if i == cursor && r.Description != "" {
			lines = append(lines, mutedStyle.Render("    "+firstLine(r.Description)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, mutedStyle.Render("  n: new  e: edit  c: complete  d: delete  f: status  ←/→: subject"))
	return panelStyle.Width(w).Render(strings.Join(lines, "\n"))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
