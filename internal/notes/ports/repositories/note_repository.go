// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"errors"

	"noteboard/internal/notes/domain/entities"
)

// ErrDuplicateTitle возвращается хранилищем при нарушении уникальности
// заголовка (индекс по lower(title)).
var ErrDuplicateTitle = errors.New("duplicate note title")

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
// FindByTitleFold сравнивает заголовки без учета регистра и возвращает
// nil, nil при отсутствии совпадения.
type NoteRepository interface {
	List(ctx context.Context) ([]*entities.Note, error)
	GetByID(ctx context.Context, noteID string) (*entities.Note, error)
	FindByTitleFold(ctx context.Context, title string) (*entities.Note, error)
	MaxTicket(ctx context.Context) (int, error)
	Create(ctx context.Context, note *entities.Note) (string, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, noteID string) error
	DecrementTicketsAbove(ctx context.Context, ticket int) error
}

// UserRepository определяет доступ только на чтение к хранилищу пользователей.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*entities.User, error)
}
