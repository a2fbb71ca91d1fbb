// Package gatewaytest provides an in-memory Gateway and an HTTP server that
// exposes it over the REST contract, for tests.
package gatewaytest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sadopc/studydesk/internal/gateway"
	"github.com/sadopc/studydesk/internal/model"
)

// Fake keeps gateway state in memory. Operations named in a FailOn call
// return the configured error instead of touching state.
type Fake struct {
	mu       sync.Mutex
	tasks    []model.Task
	notes    []model.Note
	config   *model.TimerConfig
	sessions []model.TimerSession
	nextID   int
	fail     map[string]error
	calls    []string

	Now func() time.Time
}

func NewFake() *Fake {
	return &Fake{
		fail: make(map[string]error),
		Now:  time.Now,
	}
}

var _ gateway.Gateway = (*Fake)(nil)

// FailOn makes op fail with err; a nil err means gateway.ErrNetwork.
func (f *Fake) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		err = fmt.Errorf("%w: fake outage", gateway.ErrNetwork)
	}
	f.fail[op] = err
}

// Recover clears every injected failure.
func (f *Fake) Recover() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = make(map[string]error)
}

// Calls returns the operation names invoked so far.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fake) CountCalls(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// SeedTask stores t with a fresh id and returns that id.
func (f *Fake) SeedTask(t model.Task) model.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.newID()
	f.tasks = append(f.tasks, t)
	return t.ID
}

func (f *Fake) SeedNote(n model.Note) model.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = f.newID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = f.Now()
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = n.CreatedAt
	}
	f.notes = append(f.notes, n)
	return n.ID
}

func (f *Fake) SeedSession(s model.TimerSession) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, s)
}

func (f *Fake) SetConfig(cfg model.TimerConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.config = &cfg
}

// StoredConfig returns the persisted config, or nil if none was saved.
func (f *Fake) StoredConfig() *model.TimerConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.config == nil {
		return nil
	}
	cfg := *f.config
	return &cfg
}

func (f *Fake) Sessions() []model.TimerSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.TimerSession(nil), f.sessions...)
}

func (f *Fake) newID() model.ID {
	f.nextID++
	return model.ID(strconv.Itoa(f.nextID))
}

func (f *Fake) enter(op string) error {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	return f.fail[op]
}

func (f *Fake) ListTasks(ctx context.Context) ([]model.Task, error) {
	if err := f.enter("ListTasks"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	return append([]model.Task(nil), f.tasks...), nil
}

func (f *Fake) CreateTask(ctx context.Context, t model.Task) error {
	if err := f.enter("CreateTask"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	t.ID = f.newID()
	f.tasks = append(f.tasks, t)
	return nil
}

func (f *Fake) UpdateTask(ctx context.Context, t model.Task) error {
	if err := f.enter("UpdateTask"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == t.ID {
			f.tasks[i] = t
			return nil
		}
	}
	return fmt.Errorf("update task %s: %w", t.ID, gateway.ErrNotFound)
}

func (f *Fake) DeleteTask(ctx context.Context, id model.ID) error {
	if err := f.enter("DeleteTask"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete task %s: %w", id, gateway.ErrNotFound)
}

func (f *Fake) ListNotes(ctx context.Context) ([]model.Note, error) {
	if err := f.enter("ListNotes"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	return append([]model.Note(nil), f.notes...), nil
}

func (f *Fake) SearchNotes(ctx context.Context, query string) ([]model.Note, error) {
	if err := f.enter("SearchNotes"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	q := strings.ToLower(query)
	var out []model.Note
	for _, n := range f.notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *Fake) CreateNote(ctx context.Context, n model.Note) error {
	if err := f.enter("CreateNote"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	n.ID = f.newID()
	n.CreatedAt = f.Now()
	n.UpdatedAt = n.CreatedAt
	f.notes = append(f.notes, n)
	return nil
}

func (f *Fake) UpdateNote(ctx context.Context, n model.Note) error {
	if err := f.enter("UpdateNote"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	for i := range f.notes {
		if f.notes[i].ID == n.ID {
			f.notes[i].Title = n.Title
			f.notes[i].Content = n.Content
			f.notes[i].UpdatedAt = f.Now()
			return nil
		}
	}
	return fmt.Errorf("update note %s: %w", n.ID, gateway.ErrNotFound)
}

func (f *Fake) DeleteNote(ctx context.Context, id model.ID) error {
	if err := f.enter("DeleteNote"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete note %s: %w", id, gateway.ErrNotFound)
}

func (f *Fake) GetTimerConfig(ctx context.Context) (model.TimerConfig, error) {
	if err := f.enter("GetTimerConfig"); err != nil {
		f.mu.Unlock()
		return model.TimerConfig{}, err
	}
	defer f.mu.Unlock()
	if f.config == nil {
		return model.DefaultTimerConfig(), nil
	}
	return f.config.WithDefaults(), nil
}

func (f *Fake) UpdateTimerConfig(ctx context.Context, cfg model.TimerConfig) error {
	if err := f.enter("UpdateTimerConfig"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	f.config = &cfg
	return nil
}

func (f *Fake) CreateSession(ctx context.Context, s model.TimerSession) error {
	if err := f.enter("CreateSession"); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	s.ID = f.newID()
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *Fake) ListSessions(ctx context.Context, date string) ([]model.TimerSession, error) {
	if err := f.enter("ListSessions"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	var out []model.TimerSession
	for _, s := range f.sessions {
		if date == "" || s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}
