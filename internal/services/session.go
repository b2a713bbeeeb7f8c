package services

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// CookieName is the fixed session cookie name.
	CookieName = "qid"
	// SessionDuration is 30 days, matching the cookie max-age.
	SessionDuration = 30 * 24 * time.Hour
	// ResetTokenDuration is the password-reset token time-to-live.
	ResetTokenDuration = 3 * 24 * time.Hour
	// SessionKeyPrefix is the cache key prefix for sessions.
	SessionKeyPrefix = "session:"
	// ResetKeyPrefix is the cache key prefix for password-reset tokens.
	ResetKeyPrefix = "forgot-password:"
)

// Sessions maps opaque cookie tokens to user ids in the session cache, and
// separately maps password-reset tokens to user ids with their own TTL.
// Cookie values are HMAC-signed with the session secret so a tampered cookie
// is treated the same as no cookie.
type Sessions struct {
	cache  Cache
	secret []byte
}

func NewSessions(cache Cache, secret string) *Sessions {
	return &Sessions{cache: cache, secret: []byte(secret)}
}

// Create stores a fresh session for the user and returns the signed cookie
// value.
func (s *Sessions) Create(ctx context.Context, userID int) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	err := s.cache.Set(ctx, SessionKeyPrefix+token, strconv.Itoa(userID), SessionDuration)
	if err != nil {
		return "", err
	}
	return token + "." + s.sign(token), nil
}

// UserID resolves a signed cookie value to the session's user id. A missing,
// expired, or tampered session yields ok=false without an error.
func (s *Sessions) UserID(ctx context.Context, cookieValue string) (int, bool, error) {
	token, ok := s.verify(cookieValue)
	if !ok {
		return 0, false, nil
	}

	val, err := s.cache.Get(ctx, SessionKeyPrefix+token)
	if err != nil {
		if err == ErrCacheMiss {
			return 0, false, nil
		}
		return 0, false, err
	}

	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt session value: %w", err)
	}
	return userID, true, nil
}

// Destroy removes the server-side session for the given cookie value.
func (s *Sessions) Destroy(ctx context.Context, cookieValue string) error {
	token, ok := s.verify(cookieValue)
	if !ok {
		return nil
	}
	return s.cache.Del(ctx, SessionKeyPrefix+token)
}

// SetResetToken maps a single-use password-reset token to a user id.
func (s *Sessions) SetResetToken(ctx context.Context, token string, userID int) error {
	return s.cache.Set(ctx, ResetKeyPrefix+token, strconv.Itoa(userID), ResetTokenDuration)
}

// ResetTokenUserID resolves a password-reset token; ok=false when the token
// is absent or expired.
func (s *Sessions) ResetTokenUserID(ctx context.Context, token string) (int, bool, error) {
	val, err := s.cache.Get(ctx, ResetKeyPrefix+token)
	if err != nil {
		if err == ErrCacheMiss {
			return 0, false, nil
		}
		return 0, false, err
	}
	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt reset token value: %w", err)
	}
	return userID, true, nil
}

// DeleteResetToken removes a reset token so it cannot be replayed.
func (s *Sessions) DeleteResetToken(ctx context.Context, token string) error {
	return s.cache.Del(ctx, ResetKeyPrefix+token)
}

func (s *Sessions) sign(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *Sessions) verify(cookieValue string) (string, bool) {
	token, sig, found := strings.Cut(cookieValue, ".")
	if !found || token == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(token))) {
		return "", false
	}
	return token, true
}
