// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"

	"quicknote/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
type NoteRepository interface {
	// Create сохраняет заметку; created и updated выставляются хранилищем.
	Create(ctx context.Context, body string) (*entities.Note, error)
	// GetByID возвращает entities.ErrNoteNotFound, если заметки нет.
	GetByID(ctx context.Context, id int64) (*entities.Note, error)
	// List возвращает все заметки, последние измененные первыми.
	List(ctx context.Context) ([]*entities.Note, error)
	// Update заменяет текст (если body != nil) и всегда обновляет updated.
	Update(ctx context.Context, id int64, body *string) (*entities.Note, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, error)
}
