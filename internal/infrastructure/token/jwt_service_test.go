package token

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
	"github.com/goodnews-kr/platform-api/internal/domain/entity"
	"github.com/goodnews-kr/platform-api/internal/domain/service"
)

func newTestService(accessTTL, refreshTTL time.Duration) *JWTAuthService {
	return NewJWTAuthService("access-secret", "refresh-secret", accessTTL, refreshTTL, NewMemoryRefreshTokenStore())
}

func testClaims() service.TokenClaims {
	return service.TokenClaims{
		UserID:    42,
		Email:     "member@goodnews.kr",
		LoginType: entity.LoginTypeEmail,
		Role:      entity.RoleUser,
	}
}

func TestGenerateAndVerifyRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Minute, time.Hour)

	pair, err := svc.GenerateTokenPair(ctx, testClaims(), service.DeviceInfo{UserAgent: "test", IPAddress: "127.0.0.1"})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected non-empty tokens")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh tokens must differ")
	}
	if !pair.RefreshExpiresAt.After(pair.AccessExpiresAt) {
		t.Fatal("refresh token should outlive access token")
	}

	got, err := svc.VerifyAccessToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if got.UserID != 42 || got.Email != "member@goodnews.kr" || got.Role != entity.RoleUser || got.LoginType != entity.LoginTypeEmail {
		t.Errorf("unexpected access claims: %+v", got)
	}

	if _, err := svc.VerifyRefreshToken(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Minute, time.Hour)

	pair, err := svc.GenerateTokenPair(ctx, testClaims(), service.DeviceInfo{})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := svc.VerifyRefreshToken(ctx, pair.AccessToken); err == nil {
		t.Error("access token accepted as refresh token")
	}
	if _, err := svc.VerifyAccessToken(ctx, pair.RefreshToken); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Minute, time.Hour)
	other := NewJWTAuthService("other-access", "other-refresh", time.Minute, time.Hour, NewMemoryRefreshTokenStore())

	pair, err := other.GenerateTokenPair(ctx, testClaims(), service.DeviceInfo{})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	_, err = svc.VerifyAccessToken(ctx, pair.AccessToken)
	var te *apperrors.TokenError
	if !errors.As(err, &te) || te.Code != apperrors.CodeTokenInvalid {
		t.Fatalf("expected TOKEN_INVALID, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(-time.Minute, -time.Minute)

	pair, err := svc.GenerateTokenPair(ctx, testClaims(), service.DeviceInfo{})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	_, err = svc.VerifyAccessToken(ctx, pair.AccessToken)
	var te *apperrors.TokenError
	if !errors.As(err, &te) || te.Code != apperrors.CodeTokenExpired {
		t.Fatalf("expected TOKEN_EXPIRED, got %v", err)
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Minute, time.Hour)

	pair, err := svc.GenerateTokenPair(ctx, testClaims(), service.DeviceInfo{})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	revoked, err := svc.IsRefreshTokenRevoked(ctx, pair.RefreshToken)
	if err != nil || revoked {
		t.Fatalf("fresh token reported revoked=%v err=%v", revoked, err)
	}

	if err := svc.RevokeRefreshToken(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("first revoke: %v", err)
	}
	if err := svc.RevokeRefreshToken(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("second revoke: %v", err)
	}

	revoked, err = svc.IsRefreshTokenRevoked(ctx, pair.RefreshToken)
	if err != nil || !revoked {
		t.Fatalf("revoked token reported revoked=%v err=%v", revoked, err)
	}
}

func TestReissueInSameSecondDoesNotReviveConsumedToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Minute, time.Hour)

	// Issue, consume, and immediately reissue for the same user, the way
	// rotation does. All of this lands within one wall-clock second.
	first, err := svc.GenerateTokenPair(ctx, testClaims(), service.DeviceInfo{})
	if err != nil {
		t.Fatalf("first GenerateTokenPair: %v", err)
	}
	if err := svc.ConsumeRefreshToken(ctx, first.RefreshToken); err != nil {
		t.Fatalf("ConsumeRefreshToken: %v", err)
	}
	second, err := svc.GenerateTokenPair(ctx, testClaims(), service.DeviceInfo{})
	if err != nil {
		t.Fatalf("second GenerateTokenPair: %v", err)
	}

	if second.RefreshToken == first.RefreshToken {
		t.Fatal("reissued refresh token must not equal the consumed one")
	}
	revoked, err := svc.IsRefreshTokenRevoked(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("IsRefreshTokenRevoked: %v", err)
	}
	if !revoked {
		t.Fatal("consumed token was re-armed by the reissued pair")
	}
	if err := svc.ConsumeRefreshToken(ctx, first.RefreshToken); !apperrors.IsTokenRevoked(err) {
		t.Fatalf("replay of consumed token must fail revoked, got %v", err)
	}
}

func TestConsumeAllowsExactlyOneWinner(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Minute, time.Hour)

	pair, err := svc.GenerateTokenPair(ctx, testClaims(), service.DeviceInfo{})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.ConsumeRefreshToken(ctx, pair.RefreshToken)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		if !apperrors.IsTokenRevoked(err) {
			t.Errorf("loser got unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly 1 successful consume, got %d", winners)
	}
}
