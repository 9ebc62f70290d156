// Package api defines the application API of the notes service.
package api

import (
	"context"

	"quicknote/internal/notes/domain/entities"
)

// NoteService - операции над заметками, доступные транспортному слою.
// Ошибки возвращаются как *apperr.Error.
type NoteService interface {
	List(ctx context.Context) ([]*entities.Note, error)
	Create(ctx context.Context, in entities.NoteInput) (*entities.Note, error)
	Retrieve(ctx context.Context, id int64) (*entities.Note, error)
	Update(ctx context.Context, id int64, in entities.NoteInput) (*entities.Note, error)
	PartialUpdate(ctx context.Context, id int64, in entities.NoteInput) (*entities.Note, error)
	Destroy(ctx context.Context, id int64) error
}

// NoteAdminService - операции административных инструментов.
type NoteAdminService interface {
	Search(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, error)
	Retrieve(ctx context.Context, id int64) (*entities.Note, error)
	Destroy(ctx context.Context, id int64) error
}
