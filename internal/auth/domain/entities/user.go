// Package entities defines the domain entities for the auth service.
package entities

import (
	"errors"
	"strings"
	"time"
)

// Поставщики учетных записей.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// Определяем ошибки домена пользователя как константы.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrEmailRequired      = errors.New("email is required")
	ErrProviderMissing    = errors.New("auth provider is required")
)

// User представляет основную сущность домена пользователя.
type User struct {
	ID           string
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	AuthProvider string
	IsStaff      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSocialUser создает пользователя, впервые вошедшего через внешнего поставщика.
// Имя пользователя совпадает с email, отображаемое имя делится на имя и фамилию.
func NewSocialUser(email, name, provider, passwordHash string) (*User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if provider == "" {
		return nil, ErrProviderMissing
	}

	first, last := SplitName(name)
	return &User{
		Email:        email,
		Username:     email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: passwordHash,
		AuthProvider: provider,
	}, nil
}

// SplitName делит отображаемое имя: первое слово - имя, остальные - фамилия.
func SplitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// FullName возвращает имя и фамилию через пробел.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
