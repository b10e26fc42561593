package crypto

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr error
	}{
		{"minimum length", MinPasswordLength, nil},
		{"suggested length", SuggestedPasswordLength, nil},
		{"long", 64, nil},
		{"too short", MinPasswordLength - 1, ErrLengthTooShort},
		{"zero", 0, ErrLengthTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.length)
			if err != tt.wantErr {
				t.Fatalf("Generate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && len(got) != tt.length {
				t.Errorf("Generate() length = %d, want %d", len(got), tt.length)
			}
		})
	}
}

func TestSuggestPasswordContainsEveryClass(t *testing.T) {
	// Run multiple times to reduce flakiness from randomness.
	for i := 0; i < 50; i++ {
		password, err := SuggestPassword()
		if err != nil {
			t.Fatalf("SuggestPassword() unexpected error: %v", err)
		}
		for _, set := range []string{uppercaseChars, lowercaseChars, numberChars, symbolChars} {
			if !strings.ContainsAny(password, set) {
				t.Errorf("password %q missing a character from %q", password, set)
			}
		}
	}
}

func TestSuggestPasswordUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		password, err := SuggestPassword()
		if err != nil {
			t.Fatalf("SuggestPassword() unexpected error: %v", err)
		}
		if seen[password] {
			t.Errorf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}
