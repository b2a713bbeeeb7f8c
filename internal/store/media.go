package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/the-wia/wia-backend/internal/models"
)

const mediaColumns = `id, title, type, has_image, COALESCE(image_path, ''), created_at, updated_at`

// InsertMedia creates a catalog row and returns its id.
func (s *Store) InsertMedia(ctx context.Context, opts models.MediaOptions) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO medias (title, type, has_image, image_path)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id
	`, opts.Title, opts.Type, opts.Image.HasImage, opts.Image.ImagePath).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// MediaByID loads one media with its ledger entries and their users attached.
func (s *Store) MediaByID(ctx context.Context, id int) (*models.Media, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM medias WHERE id = $1`, id)

	m, err := scanMedia(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.attachKnownMedias(ctx, []*models.Media{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMedia returns up to limit medias created strictly before cursor, newest
// first. Descending creation order is what makes the created_at < cursor
// boundary work as a "next page" cursor. The caller passes limit+1 and uses
// the extra row to compute hasMore. Ledger entries and their users are
// attached; their ordering is left to the resolution layer.
func (s *Store) ListMedia(ctx context.Context, limit int, cursor time.Time) ([]*models.Media, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+mediaColumns+`
		FROM medias
		WHERE created_at < $1
		ORDER BY created_at DESC
		LIMIT $2
	`, cursor, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var medias []*models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		medias = append(medias, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachKnownMedias(ctx, medias); err != nil {
		return nil, err
	}
	return medias, nil
}

// UpdateMedia rewrites the writable catalog fields.
func (s *Store) UpdateMedia(ctx context.Context, id int, opts models.MediaOptions) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE medias
		SET title = $2, type = $3, has_image = $4, image_path = NULLIF($5, ''), updated_at = NOW()
		WHERE id = $1
	`, id, opts.Title, opts.Type, opts.Image.HasImage, opts.Image.ImagePath)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMedia removes the row; ledger entries go with it via FK cascade.
func (s *Store) DeleteMedia(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM medias WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMedia(row scanner) (*models.Media, error) {
	var m models.Media
	err := row.Scan(&m.ID, &m.Title, &m.Type, &m.Image.HasImage, &m.Image.ImagePath,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// attachKnownMedias loads the ledger entries for all given medias in one
// query and hangs them, with their users, off the corresponding media.
func (s *Store) attachKnownMedias(ctx context.Context, medias []*models.Media) error {
	if len(medias) == 0 {
		return nil
	}

	byID := make(map[int]*models.Media, len(medias))
	ids := make([]int, 0, len(medias))
	for _, m := range medias {
		m.KnownMedias = []*models.KnownMedia{}
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT km.user_id, km.media_id, km.known_at,
			u.id, u.first_name, u.last_name, u.email, u.username, u.password,
			u.has_image, COALESCE(u.image_path, ''), u.created_at, u.updated_at
		FROM known_medias km
		JOIN users u ON u.id = km.user_id
		WHERE km.media_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var km models.KnownMedia
		var u models.User
		err := rows.Scan(&km.UserID, &km.MediaID, &km.KnownAt,
			&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username, &u.Password,
			&u.Image.HasImage, &u.Image.ImagePath, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return err
		}
		km.User = &u
		if m, ok := byID[km.MediaID]; ok {
			km.Media = m
			m.KnownMedias = append(m.KnownMedias, &km)
		}
	}
	return rows.Err()
}
