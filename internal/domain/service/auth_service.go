package service

import (
	"context"
	"time"

	"github.com/goodnews-kr/platform-api/internal/domain/entity"
)

// TokenClaims is the identity payload carried by both tokens of a pair.
type TokenClaims struct {
	UserID    int64
	Email     string
	LoginType entity.LoginType
	Role      entity.Role
}

// TokenPair is an ephemeral access/refresh credential pair. It is never
// stored as a domain entity; the refresh side is tracked by the AuthService
// implementation for revocation.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// DeviceInfo is optional request metadata recorded with a refresh token.
type DeviceInfo struct {
	UserAgent string
	IPAddress string
}

// AuthService issues, verifies, rotates, and revokes token pairs.
//
// A refresh token moves through Issued -> Used-once/Revoked or
// Issued -> Expired; both end states are terminal. Implementations must make
// ConsumeRefreshToken atomic: when two requests present the same token
// concurrently, at most one call returns nil and the other observes
// TokenError(Revoked).
type AuthService interface {
	GenerateTokenPair(ctx context.Context, claims TokenClaims, device DeviceInfo) (TokenPair, error)
	// VerifyAccessToken returns the claims or TokenError(Invalid|Expired).
	VerifyAccessToken(ctx context.Context, token string) (*TokenClaims, error)
	// VerifyRefreshToken returns the claims or TokenError(Invalid|Expired).
	// It does not check revocation.
	VerifyRefreshToken(ctx context.Context, token string) (*TokenClaims, error)
	// IsRefreshTokenRevoked reports whether a cryptographically valid token
	// has been revoked or already exchanged.
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	// RevokeRefreshToken invalidates the token (logout). Idempotent.
	RevokeRefreshToken(ctx context.Context, token string) error
	// ConsumeRefreshToken atomically marks the token as used for rotation.
	// Returns TokenError(Revoked) if the token was already consumed or
	// revoked, including by a concurrent request.
	ConsumeRefreshToken(ctx context.Context, token string) error
}
