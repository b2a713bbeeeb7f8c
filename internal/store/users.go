package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/the-wia/wia-backend/internal/models"
)

const userColumns = `id, first_name, last_name, email, username, password,
	has_image, COALESCE(image_path, ''), created_at, updated_at`

// InsertUser creates a new user row and returns its id. Uniqueness violations
// on email or username surface as *pq.Error with code 23505; the caller maps
// them to field errors.
func (s *Store) InsertUser(ctx context.Context, u *models.User) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (first_name, last_name, email, username, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, u.FirstName, u.LastName, u.Email, u.Username, u.Password).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UserByID loads a single user without relations.
func (s *Store) UserByID(ctx context.Context, id int) (*models.User, error) {
	return s.userBy(ctx, "id = $1", id)
}

// UserByEmail loads a single user by exact email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userBy(ctx, "email = $1", email)
}

// UserByUsername loads a single user by exact username.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userBy(ctx, "username = $1", username)
}

func (s *Store) userBy(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)

	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username,
		&u.Password, &u.Image.HasImage, &u.Image.ImagePath, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateUserPassword replaces the stored password hash.
func (s *Store) UpdateUserPassword(ctx context.Context, id int, hash string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1
	`, id, hash)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
