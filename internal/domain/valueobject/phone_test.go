package valueobject

import "testing"

func TestNewPhoneNumber(t *testing.T) {
	valid := []string{
		"010-1234-5678",
		"01012345678",
		"+821012345678",
		"02-123-4567",
		"010 1234 5678",
	}
	for _, in := range valid {
		p, err := NewPhoneNumber(in)
		if err != nil {
			t.Errorf("NewPhoneNumber(%q): %v", in, err)
			continue
		}
		if p.IsZero() {
			t.Errorf("NewPhoneNumber(%q): unexpected zero value", in)
		}
	}

	invalid := []string{
		"",
		"abc-defg-hijk",
		"++821012345678",
		"010--1234",
	}
	for _, in := range invalid {
		if _, err := NewPhoneNumber(in); err == nil {
			t.Errorf("NewPhoneNumber(%q): expected error", in)
		}
	}
}

func TestPhoneNumberZeroValue(t *testing.T) {
	var p PhoneNumber
	if !p.IsZero() {
		t.Error("zero PhoneNumber should report IsZero")
	}
}
