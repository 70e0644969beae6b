// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"noteboard/internal/notes/adapters/http/middleware"
	"noteboard/internal/notes/adapters/http/notes"
	"noteboard/internal/notes/ports/api"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
// Маршруты повторяют внешний контракт: все операции на /notes,
// идентификатор передается в теле PATCH и DELETE запросов.
func SetupRouter(app *fiber.App, notesService api.NotesService) {
	notesHandler := notes.NewHandler(notesService)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	notesRoutes := app.Group("/notes")
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Patch("/", notesHandler.UpdateNote)
	notesRoutes.Delete("/", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Route not found",
		})
	})
}
