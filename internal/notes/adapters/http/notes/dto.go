package notes

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	User  string `json:"user"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// UpdateNoteRequest содержит данные для обновления заметки.
// Completed - указатель, чтобы отличить отсутствующее поле от false;
// нестрогое значение (например, строка "true") отклоняется при разборе тела.
type UpdateNoteRequest struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Completed *bool  `json:"completed"`
}

// DeleteNoteRequest содержит данные для удаления заметки.
type DeleteNoteRequest struct {
	ID string `json:"id"`
}

// MessageResponse содержит человекочитаемое сообщение ответа.
type MessageResponse struct {
	Message string `json:"message"`
}
