package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/studydesk/internal/notify"
)

// Notifier carries engine notifications to the status line. When the UI is
// not draining them it falls back to the plain bell notifier.
type Notifier struct {
	ch   chan notify.Message
	bell *notify.Bell
}

func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{
		ch:   make(chan notify.Message, 16),
		bell: &notify.Bell{W: w},
	}
}

func (n *Notifier) Notify(title, message string) {
	select {
	case n.ch <- notify.Message{Title: title, Body: message}:
	default:
		n.bell.Notify(title, message)
	}
}

func (n *Notifier) wait() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-n.ch)
	}
}

// ring sounds the terminal bell without touching the rendered frame.
func (n *Notifier) ring() tea.Cmd {
	return func() tea.Msg {
		n.bell.Ring()
		return nil
	}
}
