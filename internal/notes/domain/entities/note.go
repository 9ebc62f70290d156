// Package entities defines the domain entities for the notes service.
package entities

import (
	"errors"
	"time"
	"unicode/utf8"
)

// ErrNoteNotFound возвращается репозиторием, если заметки с таким ID нет.
var ErrNoteNotFound = errors.New("note not found")

// summaryLength - длина краткого представления заметки.
const summaryLength = 50

// Note представляет собой текстовую заметку.
type Note struct {
	ID      int64     `json:"id"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Summary возвращает первые 50 символов текста с многоточием для длинных заметок.
func (n *Note) Summary() string {
	if utf8.RuneCountInString(n.Body) <= summaryLength {
		return n.Body
	}
	runes := []rune(n.Body)
	return string(runes[:summaryLength]) + "..."
}

// NoteFilter задает параметры выборки заметок для административных инструментов.
type NoteFilter struct {
	Search      string
	CreatedYear int
	UpdatedYear int
	Limit       int
}
