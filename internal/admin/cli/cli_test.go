package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quicknote/internal/admin/cli"
	authentities "quicknote/internal/auth/domain/entities"
	"quicknote/internal/auth/domain/services"
	"quicknote/internal/notes/domain/entities"
	"quicknote/pkg/apperr"
)

type mockNotes struct {
	mock.Mock
}

func (m *mockNotes) Search(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNotes) Retrieve(ctx context.Context, id int64) (*entities.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNotes) Destroy(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetUserProfile(ctx context.Context, userID string) (*authentities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authentities.User), args.Error(1)
}

func (m *mockUsers) ListUsers(ctx context.Context) ([]*authentities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authentities.User), args.Error(1)
}

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) SocialLogin(ctx context.Context, authToken string) (*services.TokenPair, error) {
	args := m.Called(ctx, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *mockAuth) RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context, userID, refreshToken string) error {
	return m.Called(ctx, userID, refreshToken).Error(0)
}

func (m *mockAuth) CleanupTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type harness struct {
	notes    *mockNotes
	users    *mockUsers
	auth     *mockAuth
	closed   bool
	migrated bool
	migErr   error
}

func newHarness() *harness {
	return &harness{
		notes: new(mockNotes),
		users: new(mockUsers),
		auth:  new(mockAuth),
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := cli.NewRootCommand(cli.Options{
		Connect: func(context.Context) (*cli.Services, func(context.Context) error, error) {
			return &cli.Services{Notes: h.notes, Users: h.users, Auth: h.auth}, func(context.Context) error {
				h.closed = true
				return nil
			}, nil
		},
		Migrate: func(context.Context) error {
			h.migrated = true
			return h.migErr
		},
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

var (
	created = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	updated = time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
)

func TestNotesList_Filters(t *testing.T) {
	h := newHarness()
	long := "This is a rather long note body that will definitely be cut in the table"
	h.notes.On("Search", mock.Anything, entities.NoteFilter{
		Search:      "milk",
		CreatedYear: 2024,
		UpdatedYear: 2025,
		Limit:       5,
	}).Return([]*entities.Note{{ID: 3, Body: long, Created: created, Updated: updated}}, nil)

	out, err := h.run(t, "notes", "list", "--search", "milk", "--created-year", "2024", "--updated-year", "2025", "--limit", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "BODY")
	assert.Contains(t, out, (&entities.Note{Body: long}).Summary())
	assert.NotContains(t, out, long)
	assert.True(t, h.closed)
	h.notes.AssertExpectations(t)
}

func TestNotesList_JSON(t *testing.T) {
	h := newHarness()
	h.notes.On("Search", mock.Anything, entities.NoteFilter{}).Return(nil, nil)

	out, err := h.run(t, "notes", "list", "--json")

	require.NoError(t, err)
	var decoded []interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Empty(t, decoded)
}

func TestNotesShow(t *testing.T) {
	h := newHarness()
	h.notes.On("Retrieve", mock.Anything, int64(7)).Return(&entities.Note{ID: 7, Body: "full body", Created: created, Updated: updated}, nil)
	h.notes.On("Retrieve", mock.Anything, int64(8)).Return(nil, apperr.NotFound("Note not found"))

	out, err := h.run(t, "notes", "show", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "ID:      7")
	assert.Contains(t, out, "full body")

	_, err = h.run(t, "notes", "show", "8")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = h.run(t, "notes", "show", "abc")
	require.Error(t, err)
	h.notes.AssertNotCalled(t, "Retrieve", mock.Anything, int64(0))
}

func TestNotesDelete(t *testing.T) {
	h := newHarness()
	h.notes.On("Destroy", mock.Anything, int64(4)).Return(nil)

	out, err := h.run(t, "notes", "delete", "4")

	require.NoError(t, err)
	assert.Contains(t, out, "Note deleted: 4")
	h.notes.AssertExpectations(t)
}

func TestUsersList(t *testing.T) {
	h := newHarness()
	h.users.On("ListUsers", mock.Anything).Return([]*authentities.User{{
		ID:           "u-1",
		Email:        "ada@example.com",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		AuthProvider: authentities.ProviderGoogle,
		CreatedAt:    created,
	}}, nil)

	out, err := h.run(t, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "google")

	out, err = h.run(t, "users", "list", "--json")
	require.NoError(t, err)
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "ada@example.com", decoded[0]["email"])
	assert.NotContains(t, decoded[0], "password_hash")
}

func TestTokensCleanup(t *testing.T) {
	h := newHarness()
	h.auth.On("CleanupTokens", mock.Anything).Return(int64(3), nil).Once()
	h.auth.On("CleanupTokens", mock.Anything).Return(int64(0), errors.New("db down")).Once()

	out, err := h.run(t, "tokens", "cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 3 refresh tokens")

	_, err = h.run(t, "tokens", "cleanup")
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	h := newHarness()

	out, err := h.run(t, "migrate")
	require.NoError(t, err)
	assert.True(t, h.migrated)
	assert.False(t, h.closed)
	assert.Contains(t, out, "Migrations applied")

	h.migErr = errors.New("dirty database")
	_, err = h.run(t, "migrate")
	assert.ErrorContains(t, err, "dirty database")
}
