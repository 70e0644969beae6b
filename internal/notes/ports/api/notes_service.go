// Package api defines service interfaces exposed to transport adapters.
package api

import (
	"context"

	"noteboard/internal/notes/domain/entities"
)

// NotesService определяет операции сервиса заметок, доступные HTTP-адаптеру.
type NotesService interface {
	ListNotes(ctx context.Context) ([]*entities.NoteWithUsername, error)
	CreateNote(ctx context.Context, userID, title, text string) error
	UpdateNote(ctx context.Context, noteID, userID, title, text string, completed *bool) (*entities.Note, error)
	DeleteNote(ctx context.Context, noteID string) (*entities.Note, error)
}
