package entities

import (
	"bytes"
	"encoding/json"
	"strings"

	"quicknote/pkg/apperr"
)

// Сообщения валидации.
const (
	MsgFieldRequired = "This field is required."
	MsgFieldNull     = "This field may not be null."
	MsgFieldBlank    = "This field may not be blank."
	MsgInvalidString = "Not a valid string."
)

// FieldBody - имя поля текста заметки.
const FieldBody = "body"

// StringField хранит строковое поле запроса и различает отсутствие, null и неверный тип.
type StringField struct {
	Set     bool
	Null    bool
	Invalid bool
	Value   string
}

// UnmarshalJSON вызывается только для присутствующих в документе полей, включая null.
func (f *StringField) UnmarshalJSON(data []byte) error {
	f.Set = true

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Value = s
		return nil
	}

	// числа принимаются в их текстовом виде: {"body":42} -> "42"
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		f.Value = n.String()
		return nil
	}

	f.Invalid = true
	return nil
}

// NewStringField создает заполненное поле.
func NewStringField(v string) StringField {
	return StringField{Set: true, Value: v}
}

// NoteInput - схема входных данных для создания и изменения заметки.
type NoteInput struct {
	Body StringField `json:"body"`
}

// NoteChanges - проверенные изменения заметки. Nil Body означает "не менять".
type NoteChanges struct {
	Body *string
}

// Validate проверяет входные данные. При partial=true отсутствующие поля допустимы,
// но переданные поля проверяются полностью. Текст обрезается по краям.
func (in NoteInput) Validate(partial bool) (NoteChanges, error) {
	var changes NoteChanges
	fieldErrs := apperr.FieldErrors{}

	body, msg := validateBody(in.Body, partial)
	if msg != "" {
		fieldErrs.Add(FieldBody, msg)
	}
	changes.Body = body

	if len(fieldErrs) > 0 {
		return NoteChanges{}, apperr.Validation(fieldErrs)
	}
	return changes, nil
}

func validateBody(f StringField, partial bool) (*string, string) {
	switch {
	case !f.Set:
		if partial {
			return nil, ""
		}
		return nil, MsgFieldRequired
	case f.Null:
		return nil, MsgFieldNull
	case f.Invalid:
		return nil, MsgInvalidString
	}

	body, err := ValidateBody(f.Value)
	if err != nil {
		return nil, MsgFieldBlank
	}
	return &body, ""
}

// ValidateBody обрезает текст заметки и проверяет, что он не пустой.
func ValidateBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		fieldErrs := apperr.FieldErrors{}
		fieldErrs.Add(FieldBody, MsgFieldBlank)
		return "", apperr.Validation(fieldErrs)
	}
	return body, nil
}
