// Package apperr описывает ошибки прикладного уровня с явным видом (Kind),
// по которому HTTP слой выбирает статус и формат ответа.
package apperr

import (
	"errors"
	"fmt"
)

// Kind - вид прикладной ошибки.
type Kind int

// Виды ошибок.
const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAuthentication
	KindConflict
)

// String возвращает имя вида ошибки.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuthentication:
		return "authentication"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// FieldErrors - ошибки валидации по полям, как {"body": ["This field may not be blank."]}.
type FieldErrors map[string][]string

// Add добавляет сообщение к полю.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Error - прикладная ошибка.
type Error struct {
	Kind    Kind
	Message string
	Fields  FieldErrors
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case len(e.Fields) > 0 && e.Message == "":
		return fmt.Sprintf("%s: %v", e.Kind, map[string][]string(e.Fields))
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation создает ошибку валидации по полям.
func Validation(fields FieldErrors) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

// BadRequest создает ошибку валидации без привязки к полям.
func BadRequest(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound создает ошибку отсутствия объекта.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Authentication создает ошибку аутентификации.
func Authentication(msg string, err error) *Error {
	return &Error{Kind: KindAuthentication, Message: msg, Err: err}
}

// Conflict создает ошибку конфликта состояния.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Internal оборачивает непредвиденную ошибку.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf возвращает вид ошибки; для ошибок без *Error это KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is сообщает, является ли err ошибкой указанного вида.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
