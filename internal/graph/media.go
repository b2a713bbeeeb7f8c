package graph

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/the-wia/wia-backend/internal/models"
	"github.com/the-wia/wia-backend/internal/store"
)

// maxPageSize caps the medias page regardless of the requested limit.
const maxPageSize = 50

var errNotAuthenticated = errors.New("not authenticated")

func (r *Resolver) resolveHello(graphql.ResolveParams) (interface{}, error) {
	return "Hello boy", nil
}

// resolveKnowMedia records or refreshes the acting user's ledger entry for a
// media. Inserts stamp the server clock; only updates use the supplied
// instant. A repeat call with an identical instant is reported as false.
// TODO: inserts ignore the supplied knownAt while updates honor it; confirm
// with product whether first-time marks should use the client instant too.
func (r *Resolver) resolveKnowMedia(p graphql.ResolveParams) (interface{}, error) {
	sess := SessionFrom(p.Context)
	if sess == nil || !sess.Authenticated() {
		return nil, errNotAuthenticated
	}
	userID := sess.UserID()
	mediaID := p.Args["mediaId"].(int)

	knownAt, err := time.Parse(time.RFC3339, p.Args["knownAt"].(string))
	if err != nil {
		return nil, fmt.Errorf("invalid knownAt: %w", err)
	}

	// both sides of the relation must exist
	if _, err := r.users.UserByID(p.Context, userID); err != nil {
		return nil, err
	}
	if _, err := r.media.MediaByID(p.Context, mediaID); err != nil {
		return nil, err
	}

	km, err := r.known.KnownMedia(p.Context, userID, mediaID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if err := r.known.InsertKnownMedia(p.Context, userID, mediaID, r.now()); err != nil {
			log.Printf("at insert knowMedia: %v", err)
			return false, nil
		}
		return true, nil
	case err != nil:
		return nil, err
	case !km.KnownAt.Equal(knownAt):
		if err := r.known.SetKnownAt(p.Context, userID, mediaID, knownAt); err != nil {
			log.Printf("at update knowMedia: %v", err)
			return false, nil
		}
		return true, nil
	}

	// already known at that exact instant: nothing changed
	return false, nil
}

// resolveMedias pages the catalog newest-first. The store is asked for one
// extra row to decide hasMore; nested ledger entries are sorted ascending by
// knownAt here rather than in SQL.
func (r *Resolver) resolveMedias(p graphql.ResolveParams) (interface{}, error) {
	limit := p.Args["limit"].(int)
	if limit > maxPageSize {
		limit = maxPageSize
	}

	cursor := r.now()
	if raw, ok := p.Args["cursor"].(string); ok && raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor: %w", err)
		}
		cursor = parsed
	}

	medias, err := r.media.ListMedia(p.Context, limit+1, cursor)
	if err != nil {
		return nil, err
	}

	hasMore := len(medias) == limit+1
	if hasMore {
		medias = medias[:limit]
	}
	if medias == nil {
		medias = []*models.Media{}
	}
	for _, m := range medias {
		sortKnownMedias(m.KnownMedias)
	}

	return &PaginatedMedias{Medias: medias, HasMore: hasMore}, nil
}

func (r *Resolver) resolveMedia(p graphql.ResolveParams) (interface{}, error) {
	m, err := r.media.MediaByID(p.Context, p.Args["id"].(int))
	if err != nil {
		return nil, err
	}
	sortKnownMedias(m.KnownMedias)
	return m, nil
}

// resolveCreateMedia inserts the catalog row and immediately records the
// creator as a knower: creating a media implies knowing it.
func (r *Resolver) resolveCreateMedia(p graphql.ResolveParams) (interface{}, error) {
	sess := SessionFrom(p.Context)
	if sess == nil || !sess.Authenticated() {
		return nil, errNotAuthenticated
	}

	opts := mediaOptionsFromArgs(p.Args["options"].(map[string]interface{}))
	id, err := r.media.InsertMedia(p.Context, opts)
	if err != nil {
		return nil, err
	}
	if err := r.known.InsertKnownMedia(p.Context, sess.UserID(), id, r.now()); err != nil {
		return nil, err
	}
	return r.media.MediaByID(p.Context, id)
}

// resolveUpdateMedia lets only users who do NOT know the media edit its
// catalog metadata; knowers get null back with no mutation. deleteMedia uses
// the mirror-image predicate.
func (r *Resolver) resolveUpdateMedia(p graphql.ResolveParams) (interface{}, error) {
	sess := SessionFrom(p.Context)
	if sess == nil || !sess.Authenticated() {
		return nil, errNotAuthenticated
	}

	args := p.Args["options"].(map[string]interface{})
	id := args["id"].(int)

	m, err := r.media.MediaByID(p.Context, id)
	if err != nil {
		return nil, err
	}
	if isKnower(m, sess.UserID()) {
		return nil, nil
	}

	if err := r.media.UpdateMedia(p.Context, id, mediaOptionsFromArgs(args)); err != nil {
		return nil, err
	}
	return r.media.MediaByID(p.Context, id)
}

// resolveDeleteMedia permits deletion only when the acting user IS among the
// media's knowers; ledger rows cascade away with the media.
func (r *Resolver) resolveDeleteMedia(p graphql.ResolveParams) (interface{}, error) {
	sess := SessionFrom(p.Context)
	if sess == nil || !sess.Authenticated() {
		return nil, errNotAuthenticated
	}

	id := p.Args["id"].(int)
	m, err := r.media.MediaByID(p.Context, id)
	if err != nil {
		return nil, err
	}
	if !isKnower(m, sess.UserID()) {
		return false, nil
	}

	if err := r.media.DeleteMedia(p.Context, id); err != nil {
		return nil, err
	}
	return true, nil
}

func isKnower(m *models.Media, userID int) bool {
	for _, km := range m.KnownMedias {
		if km.UserID == userID {
			return true
		}
		if km.User != nil && km.User.ID == userID {
			return true
		}
	}
	return false
}

func sortKnownMedias(kms []*models.KnownMedia) {
	sort.SliceStable(kms, func(i, j int) bool {
		return kms[i].KnownAt.Before(kms[j].KnownAt)
	})
}

func mediaOptionsFromArgs(args map[string]interface{}) models.MediaOptions {
	opts := models.MediaOptions{}
	if v, ok := args["title"].(string); ok {
		opts.Title = v
	}
	if v, ok := args["type"].(models.MediaType); ok {
		opts.Type = v
	}
	if img, ok := args["image"].(map[string]interface{}); ok {
		if v, ok := img["hasImage"].(bool); ok {
			opts.Image.HasImage = v
		}
		if v, ok := img["imagePath"].(string); ok {
			opts.Image.ImagePath = v
		}
	}
	return opts
}
