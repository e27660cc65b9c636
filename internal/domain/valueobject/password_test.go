package valueobject

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
)

func TestNewPasswordPolicy(t *testing.T) {
	weak := []string{
		"short1",
		"onlyletters",
		"12345678",
		"",
	}
	for _, in := range weak {
		_, err := NewPasswordWithCost(in, bcrypt.MinCost)
		if err == nil {
			t.Errorf("NewPassword(%q): expected policy error", in)
			continue
		}
		var ve *apperrors.ValidationError
		if !errors.As(err, &ve) || ve.Code != apperrors.CodeWeakPassword {
			t.Errorf("NewPassword(%q): expected WEAK_PASSWORD, got %v", in, err)
		}
	}

	if _, err := NewPasswordWithCost("secret1234", bcrypt.MinCost); err != nil {
		t.Fatalf("NewPassword(valid): %v", err)
	}
}

func TestPasswordCompare(t *testing.T) {
	p, err := NewPasswordWithCost("secret1234", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewPassword: %v", err)
	}
	if p.Hash() == "secret1234" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !p.Compare("secret1234") {
		t.Error("Compare should accept the original plaintext")
	}
	if p.Compare("wrongpass1") {
		t.Error("Compare should reject a different plaintext")
	}

	restored := PasswordFromHash(p.Hash())
	if !restored.Compare("secret1234") {
		t.Error("PasswordFromHash should verify against the original plaintext")
	}
}
