package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknote/internal/auth/domain/entities"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{"Пустое имя", "", "", ""},
		{"Только пробелы", "   ", "", ""},
		{"Одно слово", "Ada", "Ada", ""},
		{"Два слова", "Ada Lovelace", "Ada", "Lovelace"},
		{"Несколько слов", "  Jean  Luc Picard ", "Jean", "Luc Picard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := entities.SplitName(tt.input)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestNewSocialUser(t *testing.T) {
	user, err := entities.NewSocialUser("ada@example.com", "Ada King Lovelace", entities.ProviderGoogle, "hash")

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "ada@example.com", user.Username)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "King Lovelace", user.LastName)
	assert.Equal(t, entities.ProviderGoogle, user.AuthProvider)
	assert.False(t, user.IsStaff)

	_, err = entities.NewSocialUser("", "x", entities.ProviderGoogle, "hash")
	assert.ErrorIs(t, err, entities.ErrEmailRequired)

	_, err = entities.NewSocialUser("a@b.c", "x", "", "hash")
	assert.ErrorIs(t, err, entities.ErrProviderMissing)
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ada King Lovelace", (&entities.User{FirstName: "Ada", LastName: "King Lovelace"}).FullName())
	assert.Equal(t, "Ada", (&entities.User{FirstName: "Ada"}).FullName())
	assert.Equal(t, "", (&entities.User{}).FullName())
}
