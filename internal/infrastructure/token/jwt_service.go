package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
	"github.com/goodnews-kr/platform-api/internal/domain/entity"
	"github.com/goodnews-kr/platform-api/internal/domain/service"
)

// Claims is the JWT payload for both token kinds.
type Claims struct {
	UserID    int64  `json:"uid"`
	Email     string `json:"email"`
	LoginType string `json:"login_type"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuthService implements service.AuthService with HS256-signed JWTs and a
// revocable refresh-token store. Access and refresh tokens use separate
// secrets so one cannot stand in for the other.
type JWTAuthService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	store         RefreshTokenStore
}

func NewJWTAuthService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, store RefreshTokenStore) *JWTAuthService {
	return &JWTAuthService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		store:         store,
	}
}

func (s *JWTAuthService) GenerateTokenPair(ctx context.Context, claims service.TokenClaims, device service.DeviceInfo) (service.TokenPair, error) {
	now := time.Now()
	access, aexp, err := s.sign(claims, s.accessSecret, now, s.accessTTL)
	if err != nil {
		return service.TokenPair{}, err
	}
	refresh, rexp, err := s.sign(claims, s.refreshSecret, now, s.refreshTTL)
	if err != nil {
		return service.TokenPair{}, err
	}

	rec := RefreshRecord{
		UserID:    claims.UserID,
		UserAgent: device.UserAgent,
		IPAddress: device.IPAddress,
		IssuedAt:  now.UTC(),
	}
	if err := s.store.Save(ctx, hashToken(refresh), rec, s.refreshTTL); err != nil {
		return service.TokenPair{}, err
	}

	return service.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  aexp,
		RefreshToken:     refresh,
		RefreshExpiresAt: rexp,
	}, nil
}

func (s *JWTAuthService) VerifyAccessToken(_ context.Context, token string) (*service.TokenClaims, error) {
	return parse(token, s.accessSecret)
}

func (s *JWTAuthService) VerifyRefreshToken(_ context.Context, token string) (*service.TokenClaims, error) {
	return parse(token, s.refreshSecret)
}

// IsRefreshTokenRevoked treats absence from the store as revoked: records are
// written at issue time with the token's own TTL, so a missing record for a
// still-valid token means it was revoked or already exchanged.
func (s *JWTAuthService) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	ok, err := s.store.Exists(ctx, hashToken(token))
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (s *JWTAuthService) RevokeRefreshToken(ctx context.Context, token string) error {
	return s.store.Delete(ctx, hashToken(token))
}

func (s *JWTAuthService) ConsumeRefreshToken(ctx context.Context, token string) error {
	ok, err := s.store.Consume(ctx, hashToken(token))
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.TokenRevoked()
	}
	return nil
}

func (s *JWTAuthService) sign(claims service.TokenClaims, secret []byte, now time.Time, ttl time.Duration) (string, time.Time, error) {
	exp := now.Add(ttl)
	c := &Claims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		LoginType: string(claims.LoginType),
		Role:      string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			// A unique id per token: iat/exp have second granularity, so
			// without it two tokens issued for the same user in the same
			// second would be byte-identical and share a store key.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString(secret)
	return signed, exp, err
}

func parse(token string, secret []byte) (*service.TokenClaims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.TokenExpired()
		}
		return nil, apperrors.TokenInvalid()
	}
	if !tkn.Valid {
		return nil, apperrors.TokenInvalid()
	}
	return &service.TokenClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		LoginType: entity.LoginType(claims.LoginType),
		Role:      entity.Role(claims.Role),
	}, nil
}

var _ service.AuthService = (*JWTAuthService)(nil)
