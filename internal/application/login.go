package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
	"github.com/goodnews-kr/platform-api/internal/domain/repository"
	"github.com/goodnews-kr/platform-api/internal/domain/service"
	"github.com/goodnews-kr/platform-api/internal/domain/valueobject"
)

// LoginUseCase verifies email credentials and issues a token pair.
type LoginUseCase struct {
	Users  repository.UserRepository
	Auth   service.AuthService
	Logger *logrus.Logger
}

func NewLoginUseCase(users repository.UserRepository, auth service.AuthService, logger *logrus.Logger) *LoginUseCase {
	return &LoginUseCase{Users: users, Auth: auth, Logger: logger}
}

// Execute authenticates the credentials. An unknown email, a social-only
// account, and a wrong password all fail with the identical
// AuthenticationError so callers cannot probe which accounts exist. No
// mutation is attempted before the credential check completes.
func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*AuthResult, error) {
	u, err := uc.Users.FindByEmail(ctx, in.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, err
	}
	if !u.HasPassword() {
		return nil, apperrors.InvalidCredentials()
	}
	if !u.IsActive() {
		return nil, apperrors.AccountInactive(string(u.Status))
	}
	if !valueobject.PasswordFromHash(*u.PasswordHash).Compare(in.Password) {
		return nil, apperrors.InvalidCredentials()
	}

	tokens, err := uc.Auth.GenerateTokenPair(ctx, claimsOf(u), service.DeviceInfo{
		UserAgent: in.UserAgent,
		IPAddress: in.IPAddress,
	})
	if err != nil {
		return nil, err
	}

	// Last-login bookkeeping is a snapshot write after the credential check;
	// its failure does not invalidate an already successful login.
	snapshot := u.WithLastLogin(in.IPAddress, time.Now().UTC())
	if updated, uerr := uc.Users.Update(ctx, snapshot); uerr != nil {
		if uc.Logger != nil {
			uc.Logger.WithError(uerr).WithField("user_id", u.ID).Warn("last login update failed")
		}
	} else {
		u = updated
	}

	return &AuthResult{User: viewOf(u), Tokens: tokens}, nil
}
