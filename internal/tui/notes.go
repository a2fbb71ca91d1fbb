package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studydesk/internal/model"
	"github.com/sadopc/studydesk/internal/store"
	"github.com/sadopc/studydesk/internal/view"
)

type notesModel struct {
	store  *store.Store
	width  int
	height int

	cursor    int
	search    textinput.Model
	searching bool
	query     string
	results   []model.Note

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit", "delete"
	editingID  model.ID

	formTitle   *string
	formContent *string
	formConfirm *bool
}

func newNotesModel(s *store.Store) notesModel {
	ti := textinput.New()
	ti.Placeholder = "Search notes..."
	ti.Prompt = "/ "
	ti.CharLimit = 100

	title, content, confirm := "", "", false
	return notesModel{
		store:       s,
		search:      ti,
		formTitle:   &title,
		formContent: &content,
		formConfirm: &confirm,
	}
}

func (n *notesModel) setSize(w, h int) {
	n.width = w
	n.height = h
	n.search.Width = max(w-12, 10)
}

// notes is the list on screen: every loaded note, or the last search result.
func (n notesModel) notes() []model.Note {
	if n.query == "" {
		return n.store.Notes()
	}
	return n.results
}

// refresh re-runs the active search after the store reloads.
func (n notesModel) refresh() tea.Cmd {
	if n.query == "" {
		return nil
	}
	return n.runSearch(n.query)
}

func (n notesModel) runSearch(q string) tea.Cmd {
	s := n.store
	return func() tea.Msg {
		return notesSearchMsg{query: q, notes: s.SearchNotes(context.Background(), q)}
	}
}

func (n notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if n.formActive && n.form != nil {
		return n.updateForm(msg)
	}

	switch msg := msg.(type) {
	case notesSearchMsg:
		// A result for an older query is dropped.
		if msg.query == n.query {
			n.results = msg.notes
			n.cursor = 0
		}
		return n, nil

	case tea.KeyMsg:
		if n.searching {
			return n.updateSearch(msg)
		}
		return n.updateList(msg)
	}
	return n, nil
}

func (n notesModel) updateSearch(msg tea.KeyMsg) (notesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		n.searching = false
		n.search.Blur()
		n.query = strings.TrimSpace(n.search.Value())
		n.results = nil
		n.cursor = 0
		return n, n.refresh()
	case key.Matches(msg, keys.Back):
		n.searching = false
		n.search.Blur()
		n.search.SetValue("")
		n.query = ""
		n.results = nil
		return n, nil
	}
	var cmd tea.Cmd
	n.search, cmd = n.search.Update(msg)
	return n, cmd
}

func (n notesModel) updateList(msg tea.KeyMsg) (notesModel, tea.Cmd) {
	notes := n.notes()
	switch {
	case key.Matches(msg, keys.Search):
		n.searching = true
		return n, n.search.Focus()
	case key.Matches(msg, keys.Back):
		n.search.SetValue("")
		n.query = ""
		n.results = nil
	case key.Matches(msg, keys.Up):
		if n.cursor > 0 {
			n.cursor--
		}
	case key.Matches(msg, keys.Down):
		if n.cursor < len(notes)-1 {
			n.cursor++
		}
	case key.Matches(msg, keys.New):
		return n.showNoteForm(nil)
	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
		if len(notes) > 0 {
			note := notes[min(n.cursor, len(notes)-1)]
			return n.showNoteForm(&note)
		}
	case key.Matches(msg, keys.Delete):
		if len(notes) > 0 {
			return n.showDeleteConfirm(notes[min(n.cursor, len(notes)-1)])
		}
	}
	return n, nil
}

func (n notesModel) showNoteForm(note *model.Note) (notesModel, tea.Cmd) {
	*n.formTitle, *n.formContent = "", ""
	n.formType = "new"
	n.editingID = ""
	if note != nil {
		*n.formTitle = note.Title
		*n.formContent = note.Content
		n.formType = "edit"
		n.editingID = note.ID
	}

	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(n.formTitle).Validate(requireText("title")),
			huh.NewText().Title("Content").Lines(8).Value(n.formContent),
		),
	).WithShowHelp(true).WithShowErrors(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) showDeleteConfirm(note model.Note) (notesModel, tea.Cmd) {
	*n.formConfirm = false
	n.formType = "delete"
	n.editingID = note.ID

	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(store.DeleteNotePrompt).
				Description(note.Title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(n.formConfirm),
		),
	)
	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			n.formActive = false
			n.form = nil
			return n, nil
		}
	}

	form, cmd := n.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		n.form = f
	}

	switch n.form.State {
	case huh.StateAborted:
		n.formActive = false
		n.form = nil
		return n, nil
	case huh.StateCompleted:
		n.formActive = false
		n.form = nil
		return n, n.submit()
	}
	return n, cmd
}

func (n notesModel) submit() tea.Cmd {
	s, id := n.store, n.editingID
	switch n.formType {
	case "delete":
		confirm := store.Confirmed(*n.formConfirm)
		return func() tea.Msg {
			deleted, err := s.DeleteNote(context.Background(), id, confirm)
			if err == nil && !deleted {
				return statusMsg{text: "Delete cancelled"}
			}
			return savedMsg{what: "Note deleted", err: err}
		}
	case "edit":
		note := model.Note{ID: id, Title: strings.TrimSpace(*n.formTitle), Content: *n.formContent}
		return func() tea.Msg {
			return savedMsg{what: "Note saved", err: s.UpdateNote(context.Background(), note)}
		}
	}
	note := model.Note{Title: strings.TrimSpace(*n.formTitle), Content: *n.formContent}
	return func() tea.Msg {
		return savedMsg{what: "Note created", err: s.CreateNote(context.Background(), note)}
	}
}

func (n notesModel) view() string {
	w := n.width - 4

	if n.formActive && n.form != nil {
		title := "New Note"
		switch n.formType {
		case "edit":
			title = "Edit Note"
		case "delete":
			title = "Delete Note"
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", n.form.View())
		return panelStyle.Width(w).Render(content)
	}

	header := titleStyle.Render("Notes")
	if n.query != "" && !n.searching {
		header += mutedStyle.Render("  matching ") + highlightStyle.Render(n.query)
	}
	lines := []string{header}
	if n.searching {
		lines = append(lines, n.search.View())
	}
	lines = append(lines, "")

	cards := view.NoteCards(n.notes())
	if len(cards) == 0 {
		if n.query != "" {
			lines = append(lines, mutedStyle.Render("No notes match your search."))
		} else {
			lines = append(lines, mutedStyle.Render("No notes yet. Press n to write one."))
		}
	}
	cursor := min(n.cursor, len(cards)-1)
	for i, c := range cards {
		cursorMark := "  "
		style := normalItemStyle
		if i == cursor {
			cursorMark = "> "
			style = selectedItemStyle
		}
		lines = append(lines, cursorMark+style.Render(c.Title))
		if c.Preview != "" {
			preview := lipgloss.NewStyle().Width(max(w-10, 10)).Render(c.Preview)
			lines = append(lines, indent(preview, "    "))
		}
		lines = append(lines, mutedStyle.Render("    "+c.Stamp), "")
	}

	lines = append(lines, mutedStyle.Render("  /: search  n: new  e: edit  d: delete  esc: clear search"))
	return panelStyle.Width(w).Render(strings.Join(lines, "\n"))
}

func indent(s, prefix string) string {
	parts := strings.Split(s, "\n")
	for i := range parts {
		parts[i] = prefix + parts[i]
	}
	return strings.Join(parts, "\n")
}
