package application

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
	"github.com/goodnews-kr/platform-api/internal/domain/entity"
)

func newRegisterUC(users *memUserRepo, profiles *memProfileRepo) *RegisterUseCase {
	return NewRegisterUseCase(users, profiles, newTestAuthService(), nil, bcrypt.MinCost)
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	profiles := newMemProfileRepo()
	uc := newRegisterUC(users, profiles)

	res, err := uc.Execute(ctx, RegisterInput{
		Email:    "new@goodnews.kr",
		Password: "secret1234",
		Name:     "New Member",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Tokens.AccessToken == "" || res.Tokens.RefreshToken == "" {
		t.Error("expected an issued token pair")
	}
	if res.User.Email != "new@goodnews.kr" || res.User.Role != entity.RoleUser {
		t.Errorf("unexpected user view: %+v", res.User)
	}
	if res.User.UserType != entity.UserTypeNormal {
		t.Errorf("UserType = %q, want default NORMAL", res.User.UserType)
	}

	stored, err := users.FindByEmail(ctx, "new@goodnews.kr")
	if err != nil {
		t.Fatalf("persisted user missing: %v", err)
	}
	if stored.PasswordHash == nil || *stored.PasswordHash == "secret1234" {
		t.Error("password must be stored as a hash")
	}
	if stored.Status != entity.StatusActive || stored.LoginType != entity.LoginTypeEmail {
		t.Errorf("unexpected stored user: %+v", stored)
	}
}

func TestRegisterCanonicalizesEmail(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	uc := newRegisterUC(users, newMemProfileRepo())

	res, err := uc.Execute(ctx, RegisterInput{
		Email:    "  Mixed.Case@GoodNews.KR ",
		Password: "secret1234",
		Name:     "Member",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.User.Email != "mixed.case@goodnews.kr" {
		t.Errorf("email = %q, want canonical lowercase", res.User.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	uc := newRegisterUC(users, newMemProfileRepo())
	seedUser(users, "taken@goodnews.kr", "secret1234")

	before := users.count()
	_, err := uc.Execute(ctx, RegisterInput{
		Email:    "taken@goodnews.kr",
		Password: "different1",
		Name:     "Other",
	})

	var ce *apperrors.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if users.count() != before {
		t.Error("duplicate registration must not create a user")
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	uc := newRegisterUC(users, newMemProfileRepo())

	cases := []struct {
		name string
		in   RegisterInput
		code apperrors.Code
	}{
		{
			name: "bad email",
			in:   RegisterInput{Email: "not-an-email", Password: "secret1234", Name: "A"},
			code: apperrors.CodeInvalidFormat,
		},
		{
			name: "weak password",
			in:   RegisterInput{Email: "ok@goodnews.kr", Password: "short", Name: "A"},
			code: apperrors.CodeWeakPassword,
		},
		{
			name: "bad phone",
			in:   RegisterInput{Email: "ok@goodnews.kr", Password: "secret1234", Name: "A", PhoneNumber: "not-a-phone"},
			code: apperrors.CodeInvalidFormat,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tc.in)
			var ve *apperrors.ValidationError
			if !errors.As(err, &ve) || ve.Code != tc.code {
				t.Fatalf("expected ValidationError(%s), got %v", tc.code, err)
			}
			if users.count() != 0 {
				t.Error("no user may be created for invalid input")
			}
		})
	}
}

func TestRegisterCreatesProfile(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	profiles := newMemProfileRepo()
	uc := newRegisterUC(users, profiles)

	res, err := uc.Execute(ctx, RegisterInput{
		Email:      "pastor@goodnews.kr",
		Password:   "secret1234",
		Name:       "Pastor Lee",
		ChurchName: "Grace Church",
		Position:   "pastor",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	p, err := profiles.FindByUserID(ctx, res.User.ID)
	if err != nil {
		t.Fatalf("profile missing: %v", err)
	}
	if p.ChurchName != "Grace Church" || p.Position != "pastor" {
		t.Errorf("unexpected profile: %+v", p)
	}
	if p.PrivacyAgreeDate.IsZero() || p.TermsAgreeDate.IsZero() {
		t.Error("consent timestamps must be stamped at creation")
	}
}

func TestRegisterSurvivesProfileFailure(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	profiles := newMemProfileRepo()
	profiles.saveErr = errStorage
	uc := newRegisterUC(users, profiles)

	res, err := uc.Execute(ctx, RegisterInput{
		Email:      "resilient@goodnews.kr",
		Password:   "secret1234",
		Name:       "Member",
		ChurchName: "Grace Church",
	})
	if err != nil {
		t.Fatalf("profile failure must not fail registration: %v", err)
	}
	if res.Tokens.AccessToken == "" {
		t.Error("tokens must still be issued")
	}
	if users.count() != 1 {
		t.Error("user must still be created")
	}
}
