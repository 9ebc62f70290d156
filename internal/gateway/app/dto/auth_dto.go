// Package dto содержит объекты передачи данных для Gateway.
package dto

import (
	"quicknote/internal/auth/domain/entities"
	notesentities "quicknote/internal/notes/domain/entities"
	"quicknote/pkg/apperr"
)

// Имена полей запросов аутентификации.
const (
	FieldAuthToken    = "auth_token"
	FieldRefreshToken = "refresh_token"
)

// SocialLoginRequest содержит токен поставщика идентификации.
type SocialLoginRequest struct {
	AuthToken notesentities.StringField `json:"auth_token"`
}

// Validate проверяет наличие и тип auth_token. Пустое значение проверяет сервис.
func (r SocialLoginRequest) Validate() error {
	return requireStrings(map[string]notesentities.StringField{FieldAuthToken: r.AuthToken})
}

// SocialLoginResponse возвращается после успешного входа.
type SocialLoginResponse struct {
	Email   string `json:"email"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest содержит данные для обновления токенов.
type RefreshRequest struct {
	RefreshToken notesentities.StringField `json:"refresh_token"`
}

// Validate проверяет наличие и тип refresh_token.
func (r RefreshRequest) Validate() error {
	return requireStrings(map[string]notesentities.StringField{FieldRefreshToken: r.RefreshToken})
}

// TokenResponse содержит новую пару токенов.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest - refresh_token необязателен, без него отзываются все токены.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserProfileResponse содержит данные профиля пользователя.
type UserProfileResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	AuthProvider string `json:"auth_provider"`
}

// UserProfileFromEntity преобразует пользователя в DTO профиля.
func UserProfileFromEntity(u *entities.User) *UserProfileResponse {
	return &UserProfileResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		AuthProvider: u.AuthProvider,
	}
}

// requireStrings возвращает ошибку валидации для отсутствующих, null и нестроковых полей.
func requireStrings(fields map[string]notesentities.StringField) error {
	fieldErrs := apperr.FieldErrors{}
	for name, f := range fields {
		switch {
		case !f.Set:
			fieldErrs.Add(name, notesentities.MsgFieldRequired)
		case f.Null:
			fieldErrs.Add(name, notesentities.MsgFieldNull)
		case f.Invalid:
			fieldErrs.Add(name, notesentities.MsgInvalidString)
		}
	}
	if len(fieldErrs) > 0 {
		return apperr.Validation(fieldErrs)
	}
	return nil
}
