package graph

import (
	"context"
	"log"
	"net/http"

	"github.com/the-wia/wia-backend/internal/services"
)

type contextKey int

const sessionContextKey contextKey = iota

// RequestSession is the per-request view of the session cache. It replaces
// the cookie-backed session object of a conventional web framework: the
// middleware resolves the cookie once, and resolvers call Login/Logout to
// rotate both the cache entry and the cookie.
type RequestSession struct {
	sessions *services.Sessions
	w        http.ResponseWriter
	cookie   string
	userID   int
}

// UserID returns the authenticated user id, or 0 when anonymous.
func (rs *RequestSession) UserID() int { return rs.userID }

// Authenticated reports whether the request carries a valid session.
func (rs *RequestSession) Authenticated() bool { return rs.userID != 0 }

// Login creates a fresh server-side session for the user and sets the
// session cookie on the response.
func (rs *RequestSession) Login(ctx context.Context, userID int) error {
	value, err := rs.sessions.Create(ctx, userID)
	if err != nil {
		return err
	}
	rs.userID = userID
	rs.cookie = value
	if rs.w != nil {
		http.SetCookie(rs.w, sessionCookie(value, int(services.SessionDuration.Seconds())))
	}
	return nil
}

// Logout destroys the server-side session and clears the cookie. It returns
// false only when destroying the session itself errors.
func (rs *RequestSession) Logout(ctx context.Context) bool {
	if err := rs.sessions.Destroy(ctx, rs.cookie); err != nil {
		log.Printf("logout: %v", err)
		return false
	}
	rs.userID = 0
	rs.cookie = ""
	if rs.w != nil {
		http.SetCookie(rs.w, sessionCookie("", -1))
	}
	return true
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     services.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// WithSession installs a request session into ctx; used by the middleware
// and by tests.
func WithSession(ctx context.Context, rs *RequestSession) context.Context {
	return context.WithValue(ctx, sessionContextKey, rs)
}

// SessionFrom returns the request session installed in ctx, or nil.
func SessionFrom(ctx context.Context) *RequestSession {
	rs, _ := ctx.Value(sessionContextKey).(*RequestSession)
	return rs
}

// NewRequestSession builds a session bound to a response writer; exported for
// tests that exercise cookie behavior directly.
func NewRequestSession(sessions *services.Sessions, w http.ResponseWriter, userID int) *RequestSession {
	return &RequestSession{sessions: sessions, w: w, userID: userID}
}

// SessionMiddleware resolves the session cookie into a RequestSession and
// stores it in the request context for the resolvers.
func SessionMiddleware(sessions *services.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rs := &RequestSession{sessions: sessions, w: w}
			if c, err := r.Cookie(services.CookieName); err == nil && c.Value != "" {
				rs.cookie = c.Value
				userID, ok, err := sessions.UserID(r.Context(), c.Value)
				if err != nil {
					log.Printf("session lookup: %v", err)
				} else if ok {
					rs.userID = userID
				}
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), rs)))
		})
	}
}
