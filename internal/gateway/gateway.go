// Package gateway talks to the remote study API that owns tasks, notes,
// timer settings and completed timer sessions.
package gateway

import (
	"context"

	"github.com/sadopc/studydesk/internal/model"
)

// Gateway is the remote data contract. Implementations must be safe for
// sequential use from a single client; no ordering is promised between
// concurrent calls.
type Gateway interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, t model.Task) error
	UpdateTask(ctx context.Context, t model.Task) error
	DeleteTask(ctx context.Context, id model.ID) error

	ListNotes(ctx context.Context) ([]model.Note, error)
	SearchNotes(ctx context.Context, query string) ([]model.Note, error)
	CreateNote(ctx context.Context, n model.Note) error
	UpdateNote(ctx context.Context, n model.Note) error
	DeleteNote(ctx context.Context, id model.ID) error

	GetTimerConfig(ctx context.Context) (model.TimerConfig, error)
	UpdateTimerConfig(ctx context.Context, cfg model.TimerConfig) error

	CreateSession(ctx context.Context, s model.TimerSession) error
	ListSessions(ctx context.Context, date string) ([]model.TimerSession, error)
}
