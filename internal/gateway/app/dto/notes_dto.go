package dto

import (
	"time"

	"quicknote/internal/notes/domain/entities"
)

// NoteRequest - тело POST/PUT/PATCH запросов к заметкам.
// Отсутствующее, null и нестроковое поле body различаются при валидации.
type NoteRequest = entities.NoteInput

// Note представляет заметку в ответе API.
type Note struct {
	ID      int64     `json:"id"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// NoteFromEntity преобразует доменную заметку в DTO.
func NoteFromEntity(n *entities.Note) *Note {
	if n == nil {
		return nil
	}
	return &Note{
		ID:      n.ID,
		Body:    n.Body,
		Created: n.Created,
		Updated: n.Updated,
	}
}

// NotesFromEntities преобразует список заметок.
func NotesFromEntities(notes []*entities.Note) []*Note {
	out := make([]*Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, NoteFromEntity(n))
	}
	return out
}
