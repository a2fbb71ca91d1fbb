package store

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sadopc/studydesk/internal/gateway"
	"github.com/sadopc/studydesk/internal/model"
)

func (s *Store) CreateNote(ctx context.Context, n model.Note) error {
	if err := validateTitle(n.Title); err != nil {
		return err
	}
	n.ID = ""
	if err := s.gw.CreateNote(ctx, n); err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	s.reload(ctx)
	return nil
}

func (s *Store) UpdateNote(ctx context.Context, n model.Note) error {
	if err := validateTitle(n.Title); err != nil {
		return err
	}
	if n.ID == "" {
		return fmt.Errorf("update note: %w", gateway.ErrNotFound)
	}
	if err := s.gw.UpdateNote(ctx, n); err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	s.reload(ctx)
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id model.ID, confirm Confirmation) (bool, error) {
	if confirm == nil || !confirm(DeleteNotePrompt) {
		return false, nil
	}
	if err := s.gw.DeleteNote(ctx, id); err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	s.reload(ctx)
	return true, nil
}

// Note returns the loaded note with id.
func (s *Store) Note(id model.ID) (model.Note, bool) {
	return s.note(id)
}

// Task returns the loaded task with id.
func (s *Store) Task(id model.ID) (model.Task, bool) {
	return s.task(id)
}

// SearchNotes asks the gateway first and falls back to a local match if the
// search fails. An empty query returns every loaded note.
func (s *Store) SearchNotes(ctx context.Context, query string) []model.Note {
	if strings.TrimSpace(query) == "" {
		return s.Notes()
	}
	notes, err := s.gw.SearchNotes(ctx, query)
	if err != nil {
		s.log.Warn("note search failed, filtering locally", zap.String("query", query), zap.Error(err))
		return FilterNotes(s.Notes(), query)
	}
	return notes
}
