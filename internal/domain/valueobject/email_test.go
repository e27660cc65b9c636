package valueobject

import (
	"errors"
	"testing"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
)

func TestNewEmail(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "member@goodnews.kr", want: "member@goodnews.kr"},
		{in: "  Member@GoodNews.KR  ", want: "member@goodnews.kr"},
		{in: "first.last+tag@example.co.kr", want: "first.last+tag@example.co.kr"},
		{in: "", wantErr: true},
		{in: "not-an-email", wantErr: true},
		{in: "missing@domain", wantErr: true},
		{in: "@example.com", wantErr: true},
		{in: "spaces in@example.com", wantErr: true},
	}

	for _, tc := range cases {
		got, err := NewEmail(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NewEmail(%q): expected error", tc.in)
				continue
			}
			var ve *apperrors.ValidationError
			if !errors.As(err, &ve) || ve.Code != apperrors.CodeInvalidFormat {
				t.Errorf("NewEmail(%q): expected INVALID_FORMAT, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewEmail(%q): %v", tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("NewEmail(%q) = %q, want %q", tc.in, got.String(), tc.want)
		}
	}
}
