// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"quicknote/internal/notes/domain/entities"
	"quicknote/internal/notes/ports/api"
	"quicknote/internal/notes/ports/cache"
	"quicknote/internal/notes/ports/repositories"
	"quicknote/pkg/apperr"
	"quicknote/pkg/logger"
)

// Ключи и время жизни кеша.
const (
	CacheKeyAllNotes = "notes_all"
	DefaultCacheTTL  = 900 * time.Second
)

// MsgNoteNotFound - сообщение для отсутствующей заметки.
const MsgNoteNotFound = "Note not found"

var (
	_ api.NoteService      = (*NoteUseCase)(nil)
	_ api.NoteAdminService = (*NoteUseCase)(nil)
)

// NoteCacheKey возвращает ключ кеша для одной заметки.
func NoteCacheKey(id int64) string {
	return "note_" + strconv.FormatInt(id, 10)
}

// NoteUseCase представляет собой бизнес-логику работы с заметками.
// Чтение идет через кеш, записи сбрасывают затронутые ключи.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	cache    cache.Cache
	ttl      time.Duration
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, c cache.Cache, ttl time.Duration) *NoteUseCase {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &NoteUseCase{
		noteRepo: noteRepo,
		cache:    c,
		ttl:      ttl,
	}
}

// List возвращает все заметки, последние измененные первыми.
func (uc *NoteUseCase) List(ctx context.Context) ([]*entities.Note, error) {
	var notes []*entities.Note
	if uc.readCache(ctx, CacheKeyAllNotes, &notes) {
		return notes, nil
	}

	notes, err := uc.noteRepo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list notes", err)
	}

	uc.writeCache(ctx, CacheKeyAllNotes, notes)
	return notes, nil
}

// Create проверяет и сохраняет новую заметку.
func (uc *NoteUseCase) Create(ctx context.Context, in entities.NoteInput) (*entities.Note, error) {
	changes, err := in.Validate(false)
	if err != nil {
		return nil, err
	}

	note, err := uc.noteRepo.Create(ctx, *changes.Body)
	if err != nil {
		return nil, apperr.Internal("failed to create note", err)
	}

	uc.invalidate(ctx, CacheKeyAllNotes)

	logger.Log(ctx).Info(ctx, "note created", zap.Int64("noteID", note.ID))
	return note, nil
}

// Retrieve возвращает заметку по ID, сначала пытаясь взять ее из кеша.
func (uc *NoteUseCase) Retrieve(ctx context.Context, id int64) (*entities.Note, error) {
	key := NoteCacheKey(id)

	var cached entities.Note
	if uc.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	note, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get note")
	}

	uc.writeCache(ctx, key, note)
	return note, nil
}

// Update полностью заменяет изменяемые поля заметки.
func (uc *NoteUseCase) Update(ctx context.Context, id int64, in entities.NoteInput) (*entities.Note, error) {
	return uc.update(ctx, id, in, false)
}

// PartialUpdate меняет только переданные поля; updated обновляется всегда.
func (uc *NoteUseCase) PartialUpdate(ctx context.Context, id int64, in entities.NoteInput) (*entities.Note, error) {
	return uc.update(ctx, id, in, true)
}

func (uc *NoteUseCase) update(ctx context.Context, id int64, in entities.NoteInput, partial bool) (*entities.Note, error) {
	if _, err := uc.Retrieve(ctx, id); err != nil {
		return nil, err
	}

	changes, err := in.Validate(partial)
	if err != nil {
		return nil, err
	}

	note, err := uc.noteRepo.Update(ctx, id, changes.Body)
	if err != nil {
		return nil, mapRepoError(err, "failed to update note")
	}

	uc.invalidate(ctx, CacheKeyAllNotes, NoteCacheKey(id))

	logger.Log(ctx).Info(ctx, "note updated", zap.Int64("noteID", id), zap.Bool("partial", partial))
	return note, nil
}

// Destroy удаляет заметку.
func (uc *NoteUseCase) Destroy(ctx context.Context, id int64) error {
	if _, err := uc.Retrieve(ctx, id); err != nil {
		return err
	}

	if err := uc.noteRepo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "failed to delete note")
	}

	uc.invalidate(ctx, CacheKeyAllNotes, NoteCacheKey(id))

	logger.Log(ctx).Info(ctx, "note deleted", zap.Int64("noteID", id))
	return nil
}

// Search выбирает заметки по фильтру напрямую из БД, минуя кеш.
func (uc *NoteUseCase) Search(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.Search(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("failed to search notes", err)
	}
	return notes, nil
}

// readCache возвращает true, если значение найдено и декодировано.
// Ошибки кеша не прерывают запрос.
func (uc *NoteUseCase) readCache(ctx context.Context, key string, dst interface{}) bool {
	raw, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Log(ctx).Warn(ctx, "cache get failed, falling back to database",
				zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Log(ctx).Warn(ctx, "corrupted cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (uc *NoteUseCase) writeCache(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}

	if err := uc.cache.Set(ctx, key, string(data), uc.ttl); err != nil {
		logger.Log(ctx).Warn(ctx, "cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (uc *NoteUseCase) invalidate(ctx context.Context, keys ...string) {
	if err := uc.cache.Delete(ctx, keys...); err != nil {
		logger.Log(ctx).Error(ctx, "cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func mapRepoError(err error, msg string) error {
	if errors.Is(err, entities.ErrNoteNotFound) {
		return apperr.NotFound(MsgNoteNotFound)
	}
	return apperr.Internal(msg, err)
}
