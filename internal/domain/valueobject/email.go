package valueobject

import (
	"regexp"
	"strings"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// Email is a validated, canonicalized email address.
type Email struct {
	value string
}

// NewEmail validates raw and returns the canonical (trimmed, lowercased)
// address.
func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || !emailPattern.MatchString(v) {
		return Email{}, apperrors.Validation(apperrors.CodeInvalidFormat, "email", "must be a valid email address")
	}
	return Email{value: v}, nil
}

func (e Email) String() string { return e.value }
