package valueobject

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
)

const minPasswordLength = 8

// Password wraps a bcrypt hash. The plaintext is consumed at construction
// time and never retained, logged, or exposed.
type Password struct {
	hash string
}

// NewPassword validates the policy (length plus at least one letter and one
// digit) and hashes the plaintext with bcrypt at the default cost.
func NewPassword(plain string) (Password, error) {
	return NewPasswordWithCost(plain, bcrypt.DefaultCost)
}

// NewPasswordWithCost is NewPassword with a configurable bcrypt work factor.
func NewPasswordWithCost(plain string, cost int) (Password, error) {
	if err := checkPolicy(plain); err != nil {
		return Password{}, err
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return Password{}, err
	}
	return Password{hash: string(b)}, nil
}

// PasswordFromHash wraps an already-stored hash without re-validating the
// policy. Used when reconstructing users from persistence.
func PasswordFromHash(hash string) Password {
	return Password{hash: hash}
}

// Compare verifies plain against the stored hash in constant time.
func (p Password) Compare(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.hash), []byte(plain)) == nil
}

func (p Password) Hash() string { return p.hash }

func checkPolicy(plain string) error {
	if len(plain) < minPasswordLength {
		return apperrors.Validation(apperrors.CodeWeakPassword, "password", "must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.Validation(apperrors.CodeWeakPassword, "password", "must contain at least one letter and one digit")
	}
	return nil
}
