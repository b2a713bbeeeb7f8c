// Package graph exposes the GraphQL schema and its resolvers. Field-targeted
// validation errors are returned as data, authorization denials come back as
// null/false, and only missing required rows abort an operation.
package graph

import (
	"context"
	"time"

	"github.com/the-wia/wia-backend/internal/models"
	"github.com/the-wia/wia-backend/internal/services"
)

// UserStore is the credential-store surface the resolvers need.
type UserStore interface {
	InsertUser(ctx context.Context, u *models.User) (int, error)
	UserByID(ctx context.Context, id int) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id int, hash string) error
}

// MediaStore is the media-catalog surface. Loads include ledger relations.
type MediaStore interface {
	InsertMedia(ctx context.Context, opts models.MediaOptions) (int, error)
	MediaByID(ctx context.Context, id int) (*models.Media, error)
	ListMedia(ctx context.Context, limit int, cursor time.Time) ([]*models.Media, error)
	UpdateMedia(ctx context.Context, id int, opts models.MediaOptions) error
	DeleteMedia(ctx context.Context, id int) error
}

// KnownMediaStore is the knowledge-ledger surface.
type KnownMediaStore interface {
	KnownMedia(ctx context.Context, userID, mediaID int) (*models.KnownMedia, error)
	InsertKnownMedia(ctx context.Context, userID, mediaID int, knownAt time.Time) error
	SetKnownAt(ctx context.Context, userID, mediaID int, knownAt time.Time) error
}

// FieldError targets one input field; validation failures are data, not
// GraphQL errors.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// UserResponse carries either a user or field errors, never both.
type UserResponse struct {
	Errors []FieldError `json:"errors,omitempty"`
	User   *models.User `json:"user,omitempty"`
}

// PaginatedMedias is one page of the catalog plus a has-more marker.
type PaginatedMedias struct {
	Medias  []*models.Media `json:"medias"`
	HasMore bool            `json:"hasMore"`
}

type Resolver struct {
	users    UserStore
	media    MediaStore
	known    KnownMediaStore
	sessions *services.Sessions
	mailer   services.Mailer

	// frontendURL is the origin embedded into password-reset links.
	frontendURL string

	// now is the server clock; injectable in tests.
	now func() time.Time
}

func NewResolver(users UserStore, media MediaStore, known KnownMediaStore,
	sessions *services.Sessions, mailer services.Mailer, frontendURL string) *Resolver {
	return &Resolver{
		users:       users,
		media:       media,
		known:       known,
		sessions:    sessions,
		mailer:      mailer,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

// session returns the request session from ctx, falling back to a detached
// one so mutations still work when no HTTP middleware is present.
func (r *Resolver) session(ctx context.Context) *RequestSession {
	if rs := SessionFrom(ctx); rs != nil {
		return rs
	}
	return &RequestSession{sessions: r.sessions}
}
