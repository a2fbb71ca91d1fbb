// Package notify delivers user-facing (title, message) notifications.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Notifier interface {
	Notify(title, message string)
}

// Bell is the degraded alert: it rings the terminal bell and writes the
// notification as plain text.
type Bell struct {
	mu sync.Mutex
	W  io.Writer
}

func (b *Bell) Notify(title, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(b.W, "\a%s\n%s\n", title, message)
}

// Ring writes only the bell character.
func (b *Bell) Ring() {
	b.mu.Lock()
	defer b.mu.Unlock()
	io.WriteString(b.W, "\a")
}

type Nop struct{}

func (Nop) Notify(string, string) {}

// Message is one delivered notification.
type Message struct {
	Title string
	Body  string
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Notify(title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Title: title, Body: message})
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}
