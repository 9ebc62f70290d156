// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quicknote/internal/gateway/adapters/http/middleware"
	"quicknote/internal/gateway/adapters/http/request"
	"quicknote/internal/gateway/adapters/http/response"
	"quicknote/internal/gateway/app/dto"
	"quicknote/internal/notes/app"
	"quicknote/internal/notes/ports/api"
	"quicknote/pkg/logger"
)

// Сообщения для логирования.
const (
	LogHandlerListNotes   = "handling list notes request"
	LogHandlerCreateNote  = "handling create note request"
	LogHandlerGetNote     = "handling get note request"
	LogHandlerUpdateNote  = "handling update note request"
	LogHandlerPatchNote   = "handling partial update note request"
	LogHandlerDeleteNote  = "handling delete note request"
	ErrMsgInvalidBodyJSON = "invalid request body"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notes api.NoteService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes api.NoteService) *Handler {
	return &Handler{notes: notes}
}

// ListNotes возвращает все заметки, последние измененные первыми.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	logger.Log(userCtx).With(zap.String("handler", "Handler.ListNotes")).Debug(userCtx, LogHandlerListNotes)

	notes, err := h.notes.List(userCtx)
	if err != nil {
		return response.Error(ctx, err)
	}
	return response.List(ctx, dto.NotesFromEntities(notes))
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(userCtx, LogHandlerCreateNote)

	var req dto.NoteRequest
	if err := request.BindJSON(ctx, &req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidBodyJSON, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidJSON)
	}

	note, err := h.notes.Create(userCtx, req)
	if err != nil {
		return response.Error(ctx, err)
	}
	return response.Data(ctx, fiber.StatusCreated, dto.NoteFromEntity(note))
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	logger.Log(userCtx).With(zap.String("handler", "Handler.GetNote")).Debug(userCtx, LogHandlerGetNote)

	id, ok := noteID(ctx)
	if !ok {
		return response.Message(ctx, fiber.StatusNotFound, app.MsgNoteNotFound)
	}

	note, err := h.notes.Retrieve(userCtx, id)
	if err != nil {
		return response.Error(ctx, err)
	}
	return response.Data(ctx, fiber.StatusOK, dto.NoteFromEntity(note))
}

// UpdateNote - PUT, полная замена полей.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	return h.update(ctx, false)
}

// PatchNote - PATCH, валидируются только переданные поля.
func (h *Handler) PatchNote(ctx fiber.Ctx) error {
	return h.update(ctx, true)
}

func (h *Handler) update(ctx fiber.Ctx, partial bool) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.UpdateNote"), zap.Bool("partial", partial))
	if partial {
		log.Debug(userCtx, LogHandlerPatchNote)
	} else {
		log.Debug(userCtx, LogHandlerUpdateNote)
	}

	id, ok := noteID(ctx)
	if !ok {
		return response.Message(ctx, fiber.StatusNotFound, app.MsgNoteNotFound)
	}

	var req dto.NoteRequest
	if err := request.BindJSON(ctx, &req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidBodyJSON, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidJSON)
	}

	updateFn := h.notes.Update
	if partial {
		updateFn = h.notes.PartialUpdate
	}

	note, err := updateFn(userCtx, id, req)
	if err != nil {
		return response.Error(ctx, err)
	}
	return response.Data(ctx, fiber.StatusOK, dto.NoteFromEntity(note))
}

// DeleteNote удаляет заметку, 204 без тела.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteNote")).Debug(userCtx, LogHandlerDeleteNote)

	id, ok := noteID(ctx)
	if !ok {
		return response.Message(ctx, fiber.StatusNotFound, app.MsgNoteNotFound)
	}

	if err := h.notes.Destroy(userCtx, id); err != nil {
		return response.Error(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// noteID разбирает параметр :id; нечисловой id означает несуществующую заметку.
func noteID(ctx fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
