package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownMediaTranslatesNoRows(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`FROM known_medias`).
		WithArgs(1, 2).
		WillReturnError(sql.ErrNoRows)

	_, err := st.KnownMedia(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKnownMediaScansPair(t *testing.T) {
	st, mock := newMockStore(t)
	knownAt := time.Date(2024, 3, 3, 3, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM known_medias`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "media_id", "known_at"}).
			AddRow(1, 2, knownAt))

	km, err := st.KnownMedia(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, km.UserID)
	assert.Equal(t, 2, km.MediaID)
	assert.True(t, km.KnownAt.Equal(knownAt))
}

func TestSetKnownAtMissingEntry(t *testing.T) {
	st, mock := newMockStore(t)
	at := time.Now()

	mock.ExpectExec(`UPDATE known_medias SET known_at`).
		WithArgs(1, 2, at).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, st.SetKnownAt(context.Background(), 1, 2, at), ErrNotFound)
}

func TestInsertKnownMedia(t *testing.T) {
	st, mock := newMockStore(t)
	at := time.Now()

	mock.ExpectExec(`INSERT INTO known_medias`).
		WithArgs(1, 2, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, st.InsertKnownMedia(context.Background(), 1, 2, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}
