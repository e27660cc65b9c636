package valueobject

import (
	"regexp"
	"strings"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
)

// Accepts local formats with optional separators (010-1234-5678) as well as
// E.164 (+821012345678).
var phonePattern = regexp.MustCompile(`^\+?[0-9]{1,4}([ -]?[0-9]{2,4}){1,3}$`)

// PhoneNumber is a validated phone number. The zero value represents "no
// phone supplied".
type PhoneNumber struct {
	value string
}

func NewPhoneNumber(raw string) (PhoneNumber, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return PhoneNumber{}, apperrors.Validation(apperrors.CodeInvalidFormat, "phone_number", "must not be empty")
	}
	if !phonePattern.MatchString(v) {
		return PhoneNumber{}, apperrors.Validation(apperrors.CodeInvalidFormat, "phone_number", "must be a valid phone number")
	}
	return PhoneNumber{value: v}, nil
}

func (p PhoneNumber) String() string { return p.value }

func (p PhoneNumber) IsZero() bool { return p.value == "" }
