package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
	"github.com/goodnews-kr/platform-api/internal/domain/entity"
	"github.com/goodnews-kr/platform-api/internal/domain/repository"
	"github.com/goodnews-kr/platform-api/internal/domain/service"
	"github.com/goodnews-kr/platform-api/internal/domain/valueobject"
)

// RegisterUseCase creates an email account, its optional profile, and issues
// the first token pair.
type RegisterUseCase struct {
	Users      repository.UserRepository
	Profiles   repository.UserProfileRepository
	Auth       service.AuthService
	Logger     *logrus.Logger
	BcryptCost int
}

func NewRegisterUseCase(users repository.UserRepository, profiles repository.UserProfileRepository, auth service.AuthService, logger *logrus.Logger, bcryptCost int) *RegisterUseCase {
	return &RegisterUseCase{Users: users, Profiles: profiles, Auth: auth, Logger: logger, BcryptCost: bcryptCost}
}

// Execute validates the input, checks email uniqueness, persists the user,
// best-effort creates the profile, and issues tokens. No write happens before
// the uniqueness check passes.
func (uc *RegisterUseCase) Execute(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email, err := valueobject.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}

	existing, err := uc.Users.FindByEmail(ctx, email.String())
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("email already registered")
	}

	password, err := valueobject.NewPasswordWithCost(in.Password, uc.BcryptCost)
	if err != nil {
		return nil, err
	}

	var phone *string
	if in.PhoneNumber != "" {
		p, err := valueobject.NewPhoneNumber(in.PhoneNumber)
		if err != nil {
			return nil, err
		}
		v := p.String()
		phone = &v
	}

	userType := in.UserType
	if userType == "" {
		userType = entity.UserTypeNormal
	}
	hash := password.Hash()
	created, err := uc.Users.Save(ctx, entity.User{
		Email:        email.String(),
		Name:         in.Name,
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		LoginType:    entity.LoginTypeEmail,
		UserType:     userType,
		PasswordHash: &hash,
		Phone:        phone,
	})
	if err != nil {
		return nil, err
	}

	// The profile write is best-effort: its failure is logged but never rolls
	// back the created user.
	if in.ChurchName != "" || in.Position != "" {
		now := time.Now().UTC()
		if _, perr := uc.Profiles.Save(ctx, entity.UserProfile{
			UserID:           created.ID,
			ChurchName:       in.ChurchName,
			Position:         in.Position,
			PrivacyAgreeDate: now,
			TermsAgreeDate:   now,
		}); perr != nil && uc.Logger != nil {
			uc.Logger.WithError(perr).WithField("user_id", created.ID).Warn("user profile create failed")
		}
	}

	tokens, err := uc.Auth.GenerateTokenPair(ctx, claimsOf(created), service.DeviceInfo{})
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: viewOf(created), Tokens: tokens}, nil
}
