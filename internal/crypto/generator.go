package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	uppercaseChars = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijkmnopqrstuvwxyz"
	numberChars    = "23456789"
	symbolChars    = "!@#$%^&*()_+-=?"

	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 12
	// SuggestedPasswordLength is the length of passwords offered on the forms.
	SuggestedPasswordLength = 16
)

var ErrLengthTooShort = errors.New("password length must be at least 12")

// SuggestPassword returns a random password that satisfies the account password policy.
func SuggestPassword() (string, error) {
	return Generate(SuggestedPasswordLength)
}

// Generate creates a random password of the given length containing at least
// one uppercase letter, lowercase letter, digit and symbol.
// Look-alike characters (0/O, 1/l/I) are left out so a suggestion can be retyped.
func Generate(length int) (string, error) {
	if length < MinPasswordLength {
		return "", ErrLengthTooShort
	}

	required := []string{uppercaseChars, lowercaseChars, numberChars, symbolChars}
	pool := uppercaseChars + lowercaseChars + numberChars + symbolChars

	result := make([]byte, length)
	for i := range result {
		charset := pool
		if i < len(required) {
			charset = required[i]
		}
		ch, err := randChar(charset)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := secureShuffle(result); err != nil {
		return "", err
	}
	return string(result), nil
}

func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}

// secureShuffle performs a Fisher-Yates shuffle using crypto/rand.
func secureShuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
