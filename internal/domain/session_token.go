package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken is an opaque bearer token issued at login. Only the SHA-256
// digest is stored; the full token is returned to the client once.
type SessionToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     int32      `json:"userId"`
	TokenHash  string     `json:"-"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	RevokedAt  *time.Time `json:"-"`
}

// SessionTokenRepository persists session tokens
type SessionTokenRepository interface {
	Create(token *SessionToken) error
	GetByHash(hash string) (*SessionToken, error)
	TouchLastUsed(id uuid.UUID) error
	Revoke(id uuid.UUID, userID int32) error
}
