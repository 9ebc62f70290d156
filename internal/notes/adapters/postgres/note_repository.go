// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"quicknote/internal/notes/domain/entities"
	"quicknote/internal/notes/ports/repositories"
	"quicknote/pkg/logger"
)

// PgxPoolInterface - часть pgxpool.Pool, используемая репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

const noteColumns = `id, body, created, updated`

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, body string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (body, created, updated) VALUES ($1, NOW(), NOW()) RETURNING `+noteColumns,
		body,
	).Scan(&note.ID, &note.Body, &note.Created, &note.Updated)
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", note.ID))
	return &note, nil
}

// GetByID получает заметку по ID.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1`,
		id,
	).Scan(&note.ID, &note.Body, &note.Created, &note.Updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", id))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// List получает все заметки в порядке убывания времени изменения.
func (r *NoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	return r.query(ctx, "NoteRepository.List",
		`SELECT `+noteColumns+` FROM notes ORDER BY updated DESC, id DESC`)
}

// Update обновляет текст заметки и время изменения.
// updated не может оказаться меньше created даже при смещении часов БД.
func (r *NoteRepository) Update(ctx context.Context, id int64, body *string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`UPDATE notes SET body = COALESCE($2, body), updated = GREATEST(NOW(), created)
         WHERE id = $1 RETURNING `+noteColumns,
		id, body,
	).Scan(&note.ID, &note.Body, &note.Created, &note.Updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", id))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	log.Debug(ctx, "note updated", zap.Int64("noteID", id))
	return &note, nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrNoteNotFound
	}

	log.Debug(ctx, "note deleted", zap.Int64("noteID", id))
	return nil
}

// likeEscaper экранирует метасимволы LIKE, поиск идет по буквальной подстроке.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search выбирает заметки по подстроке текста и годам создания/изменения.
func (r *NoteRepository) Search(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, error) {
	var (
		conds []string
		args  []interface{}
	)
	addCond := func(expr string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filter.Search != "" {
		addCond(`body ILIKE '%%' || $%d || '%%' ESCAPE '\'`, likeEscaper.Replace(filter.Search))
	}
	if filter.CreatedYear > 0 {
		addCond(`EXTRACT(YEAR FROM created) = $%d`, filter.CreatedYear)
	}
	if filter.UpdatedYear > 0 {
		addCond(`EXTRACT(YEAR FROM updated) = $%d`, filter.UpdatedYear)
	}

	query := `SELECT ` + noteColumns + ` FROM notes`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY updated DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	return r.query(ctx, "NoteRepository.Search", query, args...)
}

func (r *NoteRepository) query(ctx context.Context, method, query string, args ...interface{}) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", method))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(&note.ID, &note.Body, &note.Created, &note.Updated); err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}
