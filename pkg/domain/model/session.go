package model

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// Session is a signed-in user session. The ID and secret travel as cookies.
type Session struct {
	ID        string
	Secret    string `masq:"secret"`
	UserID    string
	Role      types.Role
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewSession creates a session with a UUIDv7 ID and a random secret
func NewSession(user *User, now time.Time, ttl time.Duration) (*Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate session ID")
	}

	secret, err := randomSecret(24)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        id.String(),
		Secret:    secret,
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// IsExpired checks the session against now
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsValid checks required fields and expiry
func (s *Session) IsValid(now time.Time) bool {
	return s.ID != "" && s.Secret != "" && s.UserID != "" && !s.IsExpired(now)
}

func randomSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", goerr.Wrap(err, "failed to read random bytes")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
