package migrations_test

import (
	"regexp"
	"strconv"
	"testing"

	"quicknote/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columnWidth(t *testing.T, ddl, column string) int {
	t.Helper()
	m := regexp.MustCompile(`(?m)^\s*` + column + `\s+VARCHAR\((\d+)\)`).FindStringSubmatch(ddl)
	require.Len(t, m, 2, "колонка %s не найдена", column)
	width, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	return width
}

func TestFS_ContainsPairedMigrations(t *testing.T) {
	entries, err := migrations.FS.ReadDir(".")
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case regexp.MustCompile(`\.up\.sql$`).MatchString(e.Name()):
			ups++
		case regexp.MustCompile(`\.down\.sql$`).MatchString(e.Name()):
			downs++
		}
	}
	assert.Positive(t, ups)
	assert.Equal(t, ups, downs)
}

// Пользователь, созданный через социальный вход, получает email в качестве username.
func TestUsersTable_UsernameFitsEmail(t *testing.T) {
	data, err := migrations.FS.ReadFile("000002_create_users.up.sql")
	require.NoError(t, err)

	ddl := string(data)
	email := columnWidth(t, ddl, "email")
	username := columnWidth(t, ddl, "username")

	assert.Equal(t, 254, email)
	assert.GreaterOrEqual(t, username, email)
}
