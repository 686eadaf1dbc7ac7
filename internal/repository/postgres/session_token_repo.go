package postgres

import (
	"context"
	"errors"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionTokenRepository implements domain.SessionTokenRepository using PostgreSQL
type SessionTokenRepository struct {
	pool *pgxpool.Pool
}

// NewSessionTokenRepository creates a new SessionTokenRepository
func NewSessionTokenRepository(pool *pgxpool.Pool) *SessionTokenRepository {
	return &SessionTokenRepository{pool: pool}
}

// Create stores a session token
func (r *SessionTokenRepository) Create(token *domain.SessionToken) error {
	return r.pool.QueryRow(context.Background(),
		`INSERT INTO session_tokens (id, user_id, token_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		token.ID, token.UserID, token.TokenHash,
	).Scan(&token.CreatedAt)
}

// GetByHash retrieves a session token by its digest
func (r *SessionTokenRepository) GetByHash(hash string) (*domain.SessionToken, error) {
	var (
		token      domain.SessionToken
		lastUsedAt pgtype.Timestamptz
		revokedAt  pgtype.Timestamptz
	)
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, user_id, token_hash, created_at, last_used_at, revoked_at
		 FROM session_tokens WHERE token_hash = $1`,
		hash,
	).Scan(&token.ID, &token.UserID, &token.TokenHash, &token.CreatedAt, &lastUsedAt, &revokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	if lastUsedAt.Valid {
		token.LastUsedAt = &lastUsedAt.Time
	}
	if revokedAt.Valid {
		token.RevokedAt = &revokedAt.Time
	}
	return &token, nil
}

// TouchLastUsed records that the token was just used
func (r *SessionTokenRepository) TouchLastUsed(id uuid.UUID) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE session_tokens SET last_used_at = now() WHERE id = $1`, id)
	return err
}

// Revoke marks a token revoked when both id and owner match
func (r *SessionTokenRepository) Revoke(id uuid.UUID, userID int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE session_tokens SET revoked_at = now()
		 WHERE id = $1 AND user_id = $2 AND revoked_at IS NULL`,
		id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}
