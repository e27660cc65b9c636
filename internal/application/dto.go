package application

import (
	"github.com/goodnews-kr/platform-api/internal/domain/entity"
	"github.com/goodnews-kr/platform-api/internal/domain/service"
)

// RegisterInput carries everything a new email account may supply. Profile
// fields are optional; when any is present a UserProfile row is created.
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
	ChurchName  string
	Position    string
	UserType    entity.UserType
}

// LoginInput carries credentials plus request metadata for the refresh-token
// device record and the last-login snapshot.
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

type RefreshInput struct {
	RefreshToken string
	IPAddress    string
	UserAgent    string
}

// UserView is the projection returned by every auth use case. It never
// carries the password hash.
type UserView struct {
	ID              int64            `json:"id"`
	Email           string           `json:"email"`
	Name            string           `json:"name"`
	Role            entity.Role      `json:"role"`
	LoginType       entity.LoginType `json:"login_type"`
	IsEmailVerified bool             `json:"is_email_verified"`
	UserType        entity.UserType  `json:"user_type"`
}

// AuthResult pairs the user projection with a freshly issued token pair.
type AuthResult struct {
	User   UserView          `json:"user"`
	Tokens service.TokenPair `json:"tokens"`
}

func viewOf(u *entity.User) UserView {
	return UserView{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.Role,
		LoginType:       u.LoginType,
		IsEmailVerified: u.IsEmailVerified(),
		UserType:        u.UserType,
	}
}

func claimsOf(u *entity.User) service.TokenClaims {
	return service.TokenClaims{
		UserID:    u.ID,
		Email:     u.Email,
		LoginType: u.LoginType,
		Role:      u.Role,
	}
}
