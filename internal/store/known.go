package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/the-wia/wia-backend/internal/models"
)

// KnownMedia loads the ledger entry for one (user, media) pair.
func (s *Store) KnownMedia(ctx context.Context, userID, mediaID int) (*models.KnownMedia, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, media_id, known_at
		FROM known_medias
		WHERE user_id = $1 AND media_id = $2
	`, userID, mediaID)

	var km models.KnownMedia
	if err := row.Scan(&km.UserID, &km.MediaID, &km.KnownAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &km, nil
}

// InsertKnownMedia creates a ledger entry. The (user_id, media_id) primary
// key keeps the one-row-per-pair invariant.
func (s *Store) InsertKnownMedia(ctx context.Context, userID, mediaID int, knownAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO known_medias (user_id, media_id, known_at)
		VALUES ($1, $2, $3)
	`, userID, mediaID, knownAt)
	return err
}

// SetKnownAt rewrites the stored timestamp of an existing ledger entry.
func (s *Store) SetKnownAt(ctx context.Context, userID, mediaID int, knownAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE known_medias SET known_at = $3 WHERE user_id = $1 AND media_id = $2
	`, userID, mediaID, knownAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
