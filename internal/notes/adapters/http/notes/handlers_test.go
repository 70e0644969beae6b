package notes_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	notesHTTP "noteboard/internal/notes/adapters/http"
	"noteboard/internal/notes/adapters/http/notes"
	"noteboard/internal/notes/app"
	"noteboard/internal/notes/domain/entities"
)

type mockNotesService struct {
	mock.Mock
}

func (m *mockNotesService) ListNotes(ctx context.Context) ([]*entities.NoteWithUsername, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.NoteWithUsername), args.Error(1)
}

func (m *mockNotesService) CreateNote(ctx context.Context, userID, title, text string) error {
	args := m.Called(ctx, userID, title, text)
	return args.Error(0)
}

func (m *mockNotesService) UpdateNote(ctx context.Context, noteID, userID, title, text string, completed *bool) (*entities.Note, error) {
	args := m.Called(ctx, noteID, userID, title, text, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNotesService) DeleteNote(ctx context.Context, noteID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func setupTestApp(service *mockNotesService) *fiber.App {
	fiberApp := fiber.New()
	notesHTTP.SetupRouter(fiberApp, service)
	return fiberApp
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeMessage(t *testing.T, resp *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var msg notes.MessageResponse
	require.NoError(t, json.Unmarshal(body, &msg))
	return msg.Message
}

func TestListNotes(t *testing.T) {
	t.Run("returns enriched notes", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("ListNotes", mock.Anything).Return([]*entities.NoteWithUsername{
			{Note: entities.Note{ID: "note-1", UserID: "user-1", Title: "First", Text: "text", Ticket: 1}, Username: "alice"},
			{Note: entities.Note{ID: "note-2", UserID: "user-2", Title: "Second", Text: "text", Ticket: 2}, Username: "bob"},
		}, nil)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/notes", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var listed []*entities.NoteWithUsername
		require.NoError(t, json.Unmarshal(body, &listed))
		require.Len(t, listed, 2)
		assert.Equal(t, "alice", listed[0].Username)
		assert.Equal(t, "user-2", listed[1].UserID)
	})

	t.Run("empty collection is reported as an error", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("ListNotes", mock.Anything).Return(nil, app.ErrNoNotes)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/notes", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, notes.MsgNoNotesFound, decodeMessage(t, resp))
	})

	t.Run("unexpected failure yields 500", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("ListNotes", mock.Anything).Return(nil, errors.New("store offline"))

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/notes", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, notes.MsgInternalError, decodeMessage(t, resp))
	})
}

func TestCreateNote(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("CreateNote", mock.Anything, "user-1", "Groceries", "Milk and eggs").Return(nil)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodPost, "/notes",
			`{"user":"user-1","title":"Groceries","text":"Milk and eggs"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, notes.MsgNoteCreated, decodeMessage(t, resp))
		service.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("CreateNote", mock.Anything, "user-1", "", "text").Return(app.ErrMissingFields)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodPost, "/notes",
			`{"user":"user-1","title":"","text":"text"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, notes.MsgFieldsRequired, decodeMessage(t, resp))
	})

	t.Run("duplicate title is a conflict", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("CreateNote", mock.Anything, "user-1", "Groceries", "text").Return(app.ErrDuplicateTitle)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodPost, "/notes",
			`{"user":"user-1","title":"Groceries","text":"text"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, notes.MsgDuplicateTitle, decodeMessage(t, resp))
	})

	t.Run("store rejection", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("CreateNote", mock.Anything, "user-1", "Groceries", "text").Return(app.ErrInvalidNoteData)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodPost, "/notes",
			`{"user":"user-1","title":"Groceries","text":"text"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, notes.MsgInvalidNoteData, decodeMessage(t, resp))
	})

	t.Run("malformed body never reaches the service", func(t *testing.T) {
		service := new(mockNotesService)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodPost, "/notes", `{"user":`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, notes.MsgFieldsRequired, decodeMessage(t, resp))
		service.AssertNotCalled(t, "CreateNote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateNote(t *testing.T) {
	t.Run("successful update reports the new title", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("UpdateNote", mock.Anything, "note-1", "user-1", "Renamed", "text",
			mock.MatchedBy(func(completed *bool) bool { return completed != nil && *completed })).
			Return(&entities.Note{ID: "note-1", Title: "Renamed"}, nil)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodPatch, "/notes",
			`{"id":"note-1","user":"user-1","title":"Renamed","text":"text","completed":true}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "'Renamed' updated", decodeMessage(t, resp))
		service.AssertExpectations(t)
	})

	t.Run("completed as string fails binding and skips the service", func(t *testing.T) {
		service := new(mockNotesService)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodPatch, "/notes",
			`{"id":"note-1","user":"user-1","title":"Renamed","text":"text","completed":"true"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, notes.MsgFieldsRequired, decodeMessage(t, resp))
		service.AssertNotCalled(t, "UpdateNote",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing note", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("UpdateNote", mock.Anything, "absent", "user-1", "Renamed", "text", mock.Anything).
			Return(nil, app.ErrNotFound)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodPatch, "/notes",
			`{"id":"absent","user":"user-1","title":"Renamed","text":"text","completed":false}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, notes.MsgNoteNotFound, decodeMessage(t, resp))
	})

	t.Run("duplicate title is a conflict", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("UpdateNote", mock.Anything, "note-1", "user-1", "Taken", "text", mock.Anything).
			Return(nil, app.ErrDuplicateTitle)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodPatch, "/notes",
			`{"id":"note-1","user":"user-1","title":"Taken","text":"text","completed":false}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, notes.MsgDuplicateTitle, decodeMessage(t, resp))
	})
}

func TestDeleteNote(t *testing.T) {
	t.Run("successful delete reports title and id", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("DeleteNote", mock.Anything, "note-1").
			Return(&entities.Note{ID: "note-1", Title: "Groceries"}, nil)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodDelete, "/notes", `{"id":"note-1"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Note 'Groceries' with ID note-1 deleted", decodeMessage(t, resp))
	})

	t.Run("missing id", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("DeleteNote", mock.Anything, "").Return(nil, app.ErrNoteIDRequired)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodDelete, "/notes", `{}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, notes.MsgNoteIDRequired, decodeMessage(t, resp))
	})

	t.Run("missing note", func(t *testing.T) {
		service := new(mockNotesService)
		service.On("DeleteNote", mock.Anything, "absent").Return(nil, app.ErrNotFound)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodDelete, "/notes", `{"id":"absent"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, notes.MsgNoteNotFound, decodeMessage(t, resp))
	})

	t.Run("malformed body never reaches the service", func(t *testing.T) {
		service := new(mockNotesService)

		fiberApp := setupTestApp(service)
		resp, err := fiberApp.Test(jsonRequest(http.MethodDelete, "/notes", `{"id":`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, notes.MsgNoteIDRequired, decodeMessage(t, resp))
		service.AssertNotCalled(t, "DeleteNote", mock.Anything, mock.Anything)
	})
}

func TestUnknownRoute(t *testing.T) {
	service := new(mockNotesService)

	fiberApp := setupTestApp(service)
	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/unknown", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
