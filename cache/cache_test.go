package cache

import (
	"errors"
	"strings"
	"testing"
)

// TestValidateKey verifies key validation rules.
func TestValidateKey(t *testing.T) {
	cases := []struct {
		name string
		key  string
		want error
	}{
		{"valid", "callguard:payments-api:abc123", nil},
		{"empty", "", ErrInvalidKey},
		{"whitespace only", "   ", ErrInvalidKey},
		{"newline", "key\nwith-newline", ErrInvalidKey},
		{"carriage return", "key\rwith-cr", ErrInvalidKey},
		{"too long", strings.Repeat("k", MaxKeyLength+1), ErrKeyTooLong},
		{"max length ok", strings.Repeat("k", MaxKeyLength), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateKey(tc.key)
			if !errors.Is(err, tc.want) {
				t.Errorf("ValidateKey(%q) = %v, want %v", tc.key, err, tc.want)
			}
		})
	}
}
