// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"noteboard/internal/notes/domain/entities"
	"noteboard/internal/notes/ports/repositories"
	"noteboard/pkg/logger"
)

// DB абстрагирует пул соединений Postgres (pgxpool.Pool в продакшене,
// pgxmock в тестах).
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ErrNoteNotFound is returned when a note with the given ID does not exist.
var ErrNoteNotFound = errors.New("note not found")

// Код Postgres для нарушения уникальности.
const uniqueViolationCode = "23505"

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	db DB
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(db DB) repositories.NoteRepository {
	return &NoteRepository{db: db}
}

const noteColumns = `id, user_id, title, text, completed, ticket, created_at, updated_at`

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Text,
		&note.Completed, &note.Ticket, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// List возвращает все заметки в порядке их порядковых номеров.
func (r *NoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes")

	rows, err := r.db.Query(ctx,
		`SELECT `+noteColumns+` FROM notes ORDER BY ticket`)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// GetByID получает заметку по ID. Возвращает nil, nil если заметка не найдена.
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID))

	note, err := scanNote(r.db.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1`, noteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// FindByTitleFold ищет заметку по заголовку без учета регистра.
// Возвращает nil, nil если совпадений нет.
func (r *NoteRepository) FindByTitleFold(ctx context.Context, title string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.FindByTitleFold"))
	log.Debug(ctx, "searching note by title", zap.String("title", title))

	note, err := scanNote(r.db.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE LOWER(title) = LOWER($1)`, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		log.Error(ctx, "failed to search note by title", zap.Error(err))
		return nil, fmt.Errorf("failed to search note by title: %w", err)
	}

	return note, nil
}

// MaxTicket возвращает максимальный порядковый номер среди всех заметок
// или 0, если заметок нет.
func (r *NoteRepository) MaxTicket(ctx context.Context) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.MaxTicket"))

	var maxTicket int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(ticket), 0) FROM notes`).Scan(&maxTicket)
	if err != nil {
		log.Error(ctx, "failed to get max ticket", zap.Error(err))
		return 0, fmt.Errorf("failed to get max ticket: %w", err)
	}

	return maxTicket, nil
}

// Create сохраняет новую заметку в БД. Нарушение уникальности заголовка
// транслируется в repositories.ErrDuplicateTitle.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID), zap.Int("ticket", note.Ticket))

	var noteID string
	err := r.db.QueryRow(ctx,
		`INSERT INTO notes (user_id, title, text, completed, ticket) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		note.UserID, note.Title, note.Text, note.Completed, note.Ticket,
	).Scan(&noteID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "duplicate title rejected by store", zap.String("title", note.Title))
			return "", repositories.ErrDuplicateTitle
		}
		log.Error(ctx, "failed to create note", zap.Error(err))
		return "", fmt.Errorf("failed to create note: %w", err)
	}

	note.ID = noteID
	log.Debug(ctx, "note created", zap.String("noteID", noteID))
	return noteID, nil
}

// Update обновляет существующую заметку. Порядковый номер не изменяется.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	result, err := r.db.Exec(ctx,
		`UPDATE notes SET user_id = $1, title = $2, text = $3, completed = $4, updated_at = now() WHERE id = $5`,
		note.UserID, note.Title, note.Text, note.Completed, note.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "duplicate title rejected by store", zap.String("title", note.Title))
			return repositories.ErrDuplicateTitle
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.String("noteID", note.ID))
		return ErrNoteNotFound
	}

	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, noteID)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.String("noteID", noteID))
		return ErrNoteNotFound
	}

	return nil
}

// DecrementTicketsAbove сдвигает на единицу вниз номера всех заметок
// с номером выше заданного. Выполняется одним условным UPDATE.
func (r *NoteRepository) DecrementTicketsAbove(ctx context.Context, ticket int) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.DecrementTicketsAbove"))
	log.Debug(ctx, "renumbering tickets", zap.Int("above", ticket))

	result, err := r.db.Exec(ctx,
		`UPDATE notes SET ticket = ticket - 1 WHERE ticket > $1`, ticket)
	if err != nil {
		log.Error(ctx, "failed to renumber tickets", zap.Error(err))
		return fmt.Errorf("failed to renumber tickets: %w", err)
	}

	log.Debug(ctx, "tickets renumbered", zap.Int64("affected", result.RowsAffected()))
	return nil
}
