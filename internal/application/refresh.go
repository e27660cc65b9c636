package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
	"github.com/goodnews-kr/platform-api/internal/domain/repository"
	"github.com/goodnews-kr/platform-api/internal/domain/service"
)

// RefreshTokenUseCase exchanges a refresh token for a brand-new pair,
// consuming the presented token in the process.
type RefreshTokenUseCase struct {
	Users  repository.UserRepository
	Auth   service.AuthService
	Logger *logrus.Logger
}

func NewRefreshTokenUseCase(users repository.UserRepository, auth service.AuthService, logger *logrus.Logger) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{Users: users, Auth: auth, Logger: logger}
}

// Execute rotates the token. Once a token has been exchanged, any later
// presentation of it fails with TokenError(Revoked), including a replay
// captured before rotation. The consume step is atomic at the token store, so
// two concurrent requests with the same token cannot both succeed.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, in RefreshInput) (*AuthResult, error) {
	claims, err := uc.Auth.VerifyRefreshToken(ctx, in.RefreshToken)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.Auth.IsRefreshTokenRevoked(ctx, in.RefreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.TokenRevoked()
	}

	u, err := uc.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.Auth.ConsumeRefreshToken(ctx, in.RefreshToken); err != nil {
		return nil, err
	}

	tokens, err := uc.Auth.GenerateTokenPair(ctx, claimsOf(u), service.DeviceInfo{
		UserAgent: in.UserAgent,
		IPAddress: in.IPAddress,
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: viewOf(u), Tokens: tokens}, nil
}
