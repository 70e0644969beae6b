// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"noteboard/internal/notes/domain/entities"
	"noteboard/internal/notes/ports/cache"
	"noteboard/internal/notes/ports/repositories"
	"noteboard/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNoNotes         = errors.New("no notes found")
	ErrMissingFields   = errors.New("all fields are required")
	ErrNoteIDRequired  = errors.New("note id required")
	ErrNotFound        = errors.New("note not found")
	ErrDuplicateTitle  = errors.New("duplicate note title")
	ErrInvalidNoteData = errors.New("invalid note data received")
)

// Константы для кэша имен пользователей.
const (
	usernameKeyPrefix = "username:"
	usernameCacheTTL  = 15 * time.Minute
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	userRepo repositories.UserRepository
	cache    cache.Cache
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, userRepo repositories.UserRepository, userCache cache.Cache) *NoteUseCase {
	return &NoteUseCase{
		noteRepo: noteRepo,
		userRepo: userRepo,
		cache:    userCache,
	}
}

// ListNotes возвращает все заметки, дополняя каждую именем владельца.
// Пустая коллекция считается ошибкой (контракт ErrNoNotes).
func (uc *NoteUseCase) ListNotes(ctx context.Context) ([]*entities.NoteWithUsername, error) {
	notes, err := uc.noteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, ErrNoNotes
	}

	usernames, err := uc.resolveUsernames(ctx, notes)
	if err != nil {
		return nil, err
	}

	enriched := make([]*entities.NoteWithUsername, 0, len(notes))
	for _, note := range notes {
		enriched = append(enriched, &entities.NoteWithUsername{
			Note:     *note,
			Username: usernames[note.UserID],
		})
	}

	return enriched, nil
}

// resolveUsernames собирает имена владельцев для всех различных user ID,
// обращаясь сначала к кэшу, затем к хранилищу пользователей.
// Ошибки кэша не прерывают запрос: выполняется прямое обращение к хранилищу.
func (uc *NoteUseCase) resolveUsernames(ctx context.Context, notes []*entities.Note) (map[string]string, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.resolveUsernames"))

	usernames := make(map[string]string)
	for _, note := range notes {
		if _, ok := usernames[note.UserID]; ok {
			continue
		}

		key := usernameKeyPrefix + note.UserID
		if uc.cache != nil {
			cached, err := uc.cache.Get(ctx, key)
			if err != nil {
				log.Warn(ctx, "username cache lookup failed", zap.Error(err))
			} else if cached != "" {
				usernames[note.UserID] = cached
				continue
			}
		}

		user, err := uc.userRepo.GetByID(ctx, note.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			// Висячая ссылка на владельца: заметка отдается без имени.
			usernames[note.UserID] = ""
			continue
		}

		usernames[note.UserID] = user.Username
		if uc.cache != nil {
			if err := uc.cache.Set(ctx, key, user.Username, usernameCacheTTL); err != nil {
				log.Warn(ctx, "failed to cache username", zap.Error(err))
			}
		}
	}

	return usernames, nil
}

// CreateNote создает новую заметку, присваивая ей следующий порядковый номер.
// Чтение максимального номера и вставка не атомарны: параллельные создания
// могут получить одинаковый номер (транзакционность не входит в контракт).
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID, title, text string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.CreateNote"))

	if userID == "" || title == "" || text == "" {
		return ErrMissingFields
	}

	duplicate, err := uc.noteRepo.FindByTitleFold(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to check duplicate title: %w", err)
	}
	if duplicate != nil {
		return ErrDuplicateTitle
	}

	maxTicket, err := uc.noteRepo.MaxTicket(ctx)
	if err != nil {
		return fmt.Errorf("failed to get max ticket: %w", err)
	}

	note := entities.NewNote(userID, title, text, maxTicket+1)

	noteID, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			return ErrDuplicateTitle
		}
		log.Error(ctx, "store rejected note creation", zap.Error(err))
		return ErrInvalidNoteData
	}

	log.Debug(ctx, "note created", zap.String("noteID", noteID), zap.Int("ticket", note.Ticket))
	return nil
}

// UpdateNote обновляет существующую заметку. Поле completed обязано быть
// передано как булево значение; порядковый номер не изменяется.
// Переименование заметки в ее собственный заголовок разрешено.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, noteID, userID, title, text string, completed *bool) (*entities.Note, error) {
	if noteID == "" || userID == "" || title == "" || text == "" || completed == nil {
		return nil, ErrMissingFields
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}

	duplicate, err := uc.noteRepo.FindByTitleFold(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate title: %w", err)
	}
	if duplicate != nil && duplicate.ID != noteID {
		return nil, ErrDuplicateTitle
	}

	note.UserID = userID
	note.Title = title
	note.Text = text
	note.Completed = *completed
	note.UpdatedAt = time.Now()

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// DeleteNote удаляет заметку и сдвигает номера всех заметок выше удаленной,
// восстанавливая непрерывность нумерации {1..N}. Сдвиг выполняется одним
// условным декрементом; сбой между удалением и сдвигом оставляет разрыв
// в нумерации до следующей корректировки.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.DeleteNote"))

	if noteID == "" {
		return nil, ErrNoteIDRequired
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}

	if err := uc.noteRepo.Delete(ctx, noteID); err != nil {
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}

	if err := uc.noteRepo.DecrementTicketsAbove(ctx, note.Ticket); err != nil {
		log.Error(ctx, "failed to renumber tickets after delete",
			zap.String("noteID", noteID), zap.Int("ticket", note.Ticket), zap.Error(err))
		return nil, fmt.Errorf("failed to renumber tickets: %w", err)
	}

	log.Debug(ctx, "note deleted", zap.String("noteID", noteID), zap.Int("ticket", note.Ticket))
	return note, nil
}
