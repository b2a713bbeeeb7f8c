package graph

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/mock"

	"github.com/the-wia/wia-backend/internal/models"
	"github.com/the-wia/wia-backend/internal/services"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) InsertUser(ctx context.Context, u *models.User) (int, error) {
	args := m.Called(ctx, u)
	return args.Int(0), args.Error(1)
}

func (m *mockUserStore) UserByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) UpdateUserPassword(ctx context.Context, id int, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

type mockMediaStore struct{ mock.Mock }

func (m *mockMediaStore) InsertMedia(ctx context.Context, opts models.MediaOptions) (int, error) {
	args := m.Called(ctx, opts)
	return args.Int(0), args.Error(1)
}

func (m *mockMediaStore) MediaByID(ctx context.Context, id int) (*models.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *mockMediaStore) ListMedia(ctx context.Context, limit int, cursor time.Time) ([]*models.Media, error) {
	args := m.Called(ctx, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Media), args.Error(1)
}

func (m *mockMediaStore) UpdateMedia(ctx context.Context, id int, opts models.MediaOptions) error {
	args := m.Called(ctx, id, opts)
	return args.Error(0)
}

func (m *mockMediaStore) DeleteMedia(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockKnownStore struct{ mock.Mock }

func (m *mockKnownStore) KnownMedia(ctx context.Context, userID, mediaID int) (*models.KnownMedia, error) {
	args := m.Called(ctx, userID, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KnownMedia), args.Error(1)
}

func (m *mockKnownStore) InsertKnownMedia(ctx context.Context, userID, mediaID int, knownAt time.Time) error {
	args := m.Called(ctx, userID, mediaID, knownAt)
	return args.Error(0)
}

func (m *mockKnownStore) SetKnownAt(ctx context.Context, userID, mediaID int, knownAt time.Time) error {
	args := m.Called(ctx, userID, mediaID, knownAt)
	return args.Error(0)
}

// memCache is the in-memory stand-in for the Redis session cache.
type memCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newMemCache() *memCache { return &memCache{items: map[string]string{}} }

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return "", services.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memCache) keysWithPrefix(prefix string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var keys []string
	for k := range c.items {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	return keys
}

// recordMailer captures outbound mail instead of speaking SMTP.
type recordMailer struct {
	sent []sentMail
}

type sentMail struct {
	to, subject, html string
}

func (m *recordMailer) Send(to, subject, html string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, html: html})
	return nil
}

type testEnv struct {
	resolver *Resolver
	users    *mockUserStore
	media    *mockMediaStore
	known    *mockKnownStore
	cache    *memCache
	mailer   *recordMailer
	sessions *services.Sessions
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:  &mockUserStore{},
		media:  &mockMediaStore{},
		known:  &mockKnownStore{},
		cache:  newMemCache(),
		mailer: &recordMailer{},
		now:    time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
	}
	env.sessions = services.NewSessions(env.cache, "test-secret")
	env.resolver = NewResolver(env.users, env.media, env.known, env.sessions, env.mailer, "https://the-wia.xyz")
	env.resolver.now = func() time.Time { return env.now }
	t.Cleanup(func() {
		env.users.AssertExpectations(t)
		env.media.AssertExpectations(t)
		env.known.AssertExpectations(t)
	})
	return env
}

// authedCtx installs a request session for the given user backed by a
// recorder so cookie writes can be inspected.
func (env *testEnv) authedCtx(userID int) (context.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	rs := NewRequestSession(env.sessions, w, userID)
	return WithSession(context.Background(), rs), w
}

func (env *testEnv) anonCtx() (context.Context, *httptest.ResponseRecorder) {
	return env.authedCtx(0)
}

func params(ctx context.Context, args map[string]interface{}) graphql.ResolveParams {
	return graphql.ResolveParams{Context: ctx, Args: args}
}
