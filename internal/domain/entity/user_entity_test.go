package entity

import (
	"testing"
	"time"
)

func TestUserPredicates(t *testing.T) {
	hash := "$2a$10$fakehash"
	u := User{Status: StatusActive, PasswordHash: &hash}
	if !u.HasPassword() {
		t.Error("user with hash should report HasPassword")
	}
	if !u.IsActive() {
		t.Error("active user should report IsActive")
	}
	if u.IsEmailVerified() {
		t.Error("user without verification timestamp should not report verified")
	}

	empty := ""
	social := User{Status: StatusSuspended, PasswordHash: &empty}
	if social.HasPassword() {
		t.Error("empty hash should not count as a password")
	}
	if social.IsActive() {
		t.Error("suspended user should not report IsActive")
	}
}

func TestWithLastLoginReturnsCopy(t *testing.T) {
	orig := User{ID: 1, Name: "Kim"}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	updated := orig.WithLastLogin("10.0.0.1", at)

	if orig.LastLoginAt != nil || orig.LastLoginIP != nil {
		t.Error("original snapshot must not be mutated")
	}
	if updated.LastLoginAt == nil || !updated.LastLoginAt.Equal(at) {
		t.Errorf("LastLoginAt = %v, want %v", updated.LastLoginAt, at)
	}
	if updated.LastLoginIP == nil || *updated.LastLoginIP != "10.0.0.1" {
		t.Errorf("LastLoginIP = %v, want 10.0.0.1", updated.LastLoginIP)
	}
	if !updated.UpdatedAt.Equal(at) {
		t.Errorf("UpdatedAt = %v, want %v", updated.UpdatedAt, at)
	}

	blank := orig.WithLastLogin("", at)
	if blank.LastLoginIP != nil {
		t.Error("empty IP should leave LastLoginIP unset")
	}
}

func TestWithEmailVerified(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u := User{}.WithEmailVerified(at)
	if !u.IsEmailVerified() {
		t.Error("expected verified after WithEmailVerified")
	}
	if !u.EmailVerifiedAt.Equal(at) {
		t.Errorf("EmailVerifiedAt = %v, want %v", u.EmailVerifiedAt, at)
	}
}
