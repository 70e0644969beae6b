// Package entities defines the domain entities for the notes service.
package entities

import "time"

// Note представляет собой заметку пользователя.
// Ticket - плотный порядковый номер заметки: после любого удаления
// множество номеров оставшихся заметок равно {1..N}.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Ticket    int       `json:"ticket"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User представляет владельца заметки. Сервис заметок читает
// из него только username для обогащения ответов.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// NoteWithUsername - заметка, дополненная именем владельца для ответа.
// Имя не сохраняется вместе с заметкой.
type NoteWithUsername struct {
	Note
	Username string `json:"username"`
}

// NewNote creates a new note with the given user ID, title, text and ticket number.
func NewNote(userID, title, text string, ticket int) *Note {
	now := time.Now()
	return &Note{
		UserID:    userID,
		Title:     title,
		Text:      text,
		Completed: false,
		Ticket:    ticket,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
