package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/sadopc/studydesk/internal/gateway"
	"github.com/sadopc/studydesk/internal/model"
)

const (
	DeleteTaskPrompt = "Are you sure you want to delete this task?"
	DeleteNotePrompt = "Are you sure you want to delete this note?"
)

// Confirmation is the caller's yes/no answer to a destructive prompt.
type Confirmation func(prompt string) bool

// Confirmed wraps an answer the caller already has.
func Confirmed(yes bool) Confirmation {
	return func(string) bool { return yes }
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &model.ValidationError{Field: "title", Msg: "must not be empty"}
	}
	return nil
}

func (s *Store) CreateTask(ctx context.Context, t model.Task) error {
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	t.ID = ""
	if err := s.gw.CreateTask(ctx, t); err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	s.reload(ctx)
	return nil
}

// UpdateTask replaces every mutable field of the task with id t.ID.
func (s *Store) UpdateTask(ctx context.Context, t model.Task) error {
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if t.ID == "" {
		return fmt.Errorf("update task: %w", gateway.ErrNotFound)
	}
	if err := s.gw.UpdateTask(ctx, t); err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	s.reload(ctx)
	return nil
}

// ToggleTask flips Completed on the task and leaves every other field as loaded.
func (s *Store) ToggleTask(ctx context.Context, id model.ID) error {
	t, ok := s.task(id)
	if !ok {
		return fmt.Errorf("toggle task %s: %w", id, gateway.ErrNotFound)
	}
	t.Completed = !t.Completed
	if err := s.gw.UpdateTask(ctx, t); err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}
	s.reload(ctx)
	return nil
}

// DeleteTask asks confirm first; a "no" returns false without touching anything.
func (s *Store) DeleteTask(ctx context.Context, id model.ID, confirm Confirmation) (bool, error) {
	if confirm == nil || !confirm(DeleteTaskPrompt) {
		return false, nil
	}
	if err := s.gw.DeleteTask(ctx, id); err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	s.reload(ctx)
	return true, nil
}
