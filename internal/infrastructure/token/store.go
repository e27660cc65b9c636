package token

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RefreshRecord is the persisted, revocable side of a refresh token, keyed by
// the token's hash together with the device metadata captured at issue time.
type RefreshRecord struct {
	UserID    int64     `json:"user_id"`
	UserAgent string    `json:"user_agent,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	IssuedAt  time.Time `json:"issued_at"`
}

// RefreshTokenStore tracks issued refresh tokens. A token absent from the
// store is revoked (or expired out). Consume must be atomic: for concurrent
// calls with the same key, exactly one observes true.
type RefreshTokenStore interface {
	Save(ctx context.Context, key string, rec RefreshRecord, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes the record unconditionally. Idempotent.
	Delete(ctx context.Context, key string) error
	// Consume atomically removes the record, reporting whether this call was
	// the one that removed it.
	Consume(ctx context.Context, key string) (bool, error)
}

// hashToken derives the store key so raw refresh tokens are never persisted.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
