package entity

import (
	"time"
)

// Role is the authorization level of an account. It is independent of
// UserType, which tracks the membership tier.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Status is the account lifecycle state. Only active accounts may
// authenticate.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusPending   Status = "pending"
)

// LoginType records how the account signs in. Password hashes exist only for
// email accounts; social accounts authenticate through their provider.
type LoginType string

const (
	LoginTypeEmail  LoginType = "email"
	LoginTypeGoogle LoginType = "google"
	LoginTypeNaver  LoginType = "naver"
	LoginTypeKakao  LoginType = "kakao"
	LoginTypeApple  LoginType = "apple"
)

// UserType is the membership tier of an account.
type UserType string

const (
	UserTypeNormal  UserType = "NORMAL"
	UserTypeMember  UserType = "MEMBER"
	UserTypeSponsor UserType = "SPONSOR"
)

// User is the aggregate root for the identity domain. Values are treated as
// immutable snapshots: mutations go through the With... methods, which return
// an updated copy.
type User struct {
	ID              int64
	Email           string
	Name            string
	Role            Role
	Status          Status
	LoginType       LoginType
	UserType        UserType
	Username        *string
	PasswordHash    *string
	Phone           *string
	EmailVerifiedAt *time.Time
	AvatarURL       string
	LastLoginAt     *time.Time
	LastLoginIP     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasPassword reports whether the account can perform password login.
// Social-only accounts carry no hash.
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// IsActive reports whether the account may authenticate.
func (u User) IsActive() bool { return u.Status == StatusActive }

// IsEmailVerified reports whether the address has been confirmed.
func (u User) IsEmailVerified() bool { return u.EmailVerifiedAt != nil }

// WithLastLogin returns a copy with the login bookkeeping fields set.
func (u User) WithLastLogin(ip string, at time.Time) User {
	u.LastLoginAt = &at
	if ip != "" {
		u.LastLoginIP = &ip
	}
	u.UpdatedAt = at
	return u
}

// WithEmailVerified returns a copy marked verified at the given time.
func (u User) WithEmailVerified(at time.Time) User {
	u.EmailVerifiedAt = &at
	u.UpdatedAt = at
	return u
}

// WithStatus returns a copy with the lifecycle state changed.
func (u User) WithStatus(s Status) User {
	u.Status = s
	return u
}

// WithAvatarURL returns a copy pointing at a new avatar object.
func (u User) WithAvatarURL(url string) User {
	u.AvatarURL = url
	return u
}

// WithName returns a copy with the display name changed.
func (u User) WithName(name string) User {
	u.Name = name
	return u
}
