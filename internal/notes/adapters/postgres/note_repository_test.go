package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknote/internal/notes/adapters/postgres"
	"quicknote/internal/notes/domain/entities"
	"quicknote/pkg/logger"
)

var noteCols = []string{"id", "body", "created", "updated"}

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Успешное создание заметки", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO notes").
			WithArgs("hello").
			WillReturnRows(pgxmock.NewRows(noteCols).AddRow(int64(1), "hello", now, now))

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.Create(ctx, "hello")

		require.NoError(t, err)
		assert.Equal(t, int64(1), note.ID)
		assert.Equal(t, "hello", note.Body)
		assert.Equal(t, note.Created, note.Updated)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		dbErr := errors.New("connection reset")
		mock.ExpectQuery("INSERT INTO notes").
			WithArgs("hello").
			WillReturnError(dbErr)

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.Create(ctx, "hello")

		assert.Nil(t, note)
		assert.ErrorIs(t, err, dbErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_GetByID(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Заметка найдена", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM notes WHERE id").
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(noteCols).AddRow(int64(7), "body", now, now))

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.GetByID(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, int64(7), note.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Заметка не найдена", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM notes WHERE id").
			WithArgs(int64(404)).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.GetByID(ctx, 404)

		assert.Nil(t, note)
		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_List(t *testing.T) {
	ctx := testContext(t)
	base := time.Now().UTC().Truncate(time.Microsecond)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("ORDER BY updated DESC").
		WillReturnRows(pgxmock.NewRows(noteCols).
			AddRow(int64(3), "C", base, base.Add(2*time.Second)).
			AddRow(int64(2), "B", base, base.Add(time.Second)).
			AddRow(int64(1), "A", base, base))

	repo := postgres.NewNoteRepository(mock)
	notes, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "C", notes[0].Body)
	assert.Equal(t, "A", notes[2].Body)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_List_Empty(t *testing.T) {
	ctx := testContext(t)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM notes").WillReturnRows(pgxmock.NewRows(noteCols))

	repo := postgres.NewNoteRepository(mock)
	notes, err := repo.List(ctx)

	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := testContext(t)
	created := time.Now().UTC().Truncate(time.Microsecond)
	updated := created.Add(time.Minute)

	t.Run("Обновление текста", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		body := "new body"
		mock.ExpectQuery("UPDATE notes SET body").
			WithArgs(int64(1), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows(noteCols).AddRow(int64(1), body, created, updated))

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.Update(ctx, 1, &body)

		require.NoError(t, err)
		assert.Equal(t, body, note.Body)
		assert.True(t, note.Updated.After(note.Created))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Заметка удалена параллельно", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE notes SET body").
			WithArgs(int64(1), pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.Update(ctx, 1, nil)

		assert.Nil(t, note)
		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("Успешное удаление", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM notes").
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewNoteRepository(mock)
		require.NoError(t, repo.Delete(ctx, 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Заметка не найдена", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM notes").
			WithArgs(int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewNoteRepository(mock)
		assert.ErrorIs(t, repo.Delete(ctx, 2), entities.ErrNoteNotFound)
	})
}

func TestNoteRepository_Search(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("ILIKE").
		WithArgs("milk", 2024, 2025, 10).
		WillReturnRows(pgxmock.NewRows(noteCols).AddRow(int64(5), "buy milk", now, now))

	repo := postgres.NewNoteRepository(mock)
	notes, err := repo.Search(ctx, entities.NoteFilter{
		Search:      "milk",
		CreatedYear: 2024,
		UpdatedYear: 2025,
		Limit:       10,
	})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "buy milk", notes[0].Body)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_SearchEscapesWildcards(t *testing.T) {
	ctx := testContext(t)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`ILIKE .* ESCAPE`).
		WithArgs(`50\%\_off\\`, 20).
		WillReturnRows(pgxmock.NewRows(noteCols))

	repo := postgres.NewNoteRepository(mock)
	notes, err := repo.Search(ctx, entities.NoteFilter{Search: `50%_off\`, Limit: 20})

	require.NoError(t, err)
	assert.Empty(t, notes)
	require.NoError(t, mock.ExpectationsWereMet())
}
