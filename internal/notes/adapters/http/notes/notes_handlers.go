// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteboard/internal/notes/app"
	"noteboard/internal/notes/ports/api"
	"noteboard/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"
)

// Сообщения ответов, видимые клиенту.
const (
	MsgNoNotesFound    = "No notes found"
	MsgFieldsRequired  = "All fields are required"
	MsgNoteIDRequired  = "Note ID required"
	MsgNoteNotFound    = "Note not found"
	MsgDuplicateTitle  = "Duplicate note title"
	MsgInvalidNoteData = "Invalid note data received"
	MsgNoteCreated     = "New note created"
	MsgInternalError   = "Internal server error"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notesService api.NotesService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notesService api.NotesService) *Handler {
	return &Handler{
		notesService: notesService,
	}
}

// ListNotes обрабатывает запрос на получение всех заметок с именами владельцев.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(reqCtx, LogHandlerListNotes)

	notes, err := h.notesService.ListNotes(reqCtx)
	if err != nil {
		log.Error(reqCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(notes); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(reqCtx, LogHandlerCreateNote)

	var req CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, "invalid request body", zap.Error(err))
		return sendMessage(ctx, fiber.StatusBadRequest, MsgFieldsRequired)
	}

	if err := h.notesService.CreateNote(reqCtx, req.User, req.Title, req.Text); err != nil {
		log.Error(reqCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendMessage(ctx, fiber.StatusCreated, MsgNoteCreated)
}

// UpdateNote обрабатывает запрос на обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(reqCtx, LogHandlerUpdateNote)

	var req UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, "invalid request body", zap.Error(err))
		return sendMessage(ctx, fiber.StatusBadRequest, MsgFieldsRequired)
	}

	note, err := h.notesService.UpdateNote(reqCtx, req.ID, req.User, req.Title, req.Text, req.Completed)
	if err != nil {
		log.Error(reqCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendMessage(ctx, fiber.StatusOK, fmt.Sprintf("'%s' updated", note.Title))
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(reqCtx, LogHandlerDeleteNote)

	var req DeleteNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, "invalid request body", zap.Error(err))
		return sendMessage(ctx, fiber.StatusBadRequest, MsgNoteIDRequired)
	}

	note, err := h.notesService.DeleteNote(reqCtx, req.ID)
	if err != nil {
		log.Error(reqCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendMessage(ctx, fiber.StatusOK,
		fmt.Sprintf("Note '%s' with ID %s deleted", note.Title, note.ID))
}

// sendMessage отправляет JSON-ответ с человекочитаемым сообщением.
func sendMessage(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(MessageResponse{Message: message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleError транслирует ошибки бизнес-логики в HTTP-статусы:
// 400 для ошибок валидации, пустой коллекции и отсутствующих заметок,
// 409 для дубликатов заголовка, 500 для прочих сбоев.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, app.ErrNoNotes):
		return sendMessage(ctx, fiber.StatusBadRequest, MsgNoNotesFound)
	case errors.Is(err, app.ErrMissingFields):
		return sendMessage(ctx, fiber.StatusBadRequest, MsgFieldsRequired)
	case errors.Is(err, app.ErrNoteIDRequired):
		return sendMessage(ctx, fiber.StatusBadRequest, MsgNoteIDRequired)
	case errors.Is(err, app.ErrNotFound):
		return sendMessage(ctx, fiber.StatusBadRequest, MsgNoteNotFound)
	case errors.Is(err, app.ErrDuplicateTitle):
		return sendMessage(ctx, fiber.StatusConflict, MsgDuplicateTitle)
	case errors.Is(err, app.ErrInvalidNoteData):
		return sendMessage(ctx, fiber.StatusBadRequest, MsgInvalidNoteData)
	default:
		return sendMessage(ctx, fiber.StatusInternalServerError, MsgInternalError)
	}
}
