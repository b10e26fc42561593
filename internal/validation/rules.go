package validation

import (
	"context"
	"errors"

	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/service"
)

const (
	msgEmailExists       = "Email already exists. Please use a different email."
	msgPasswordIncorrect = "Current password is incorrect."
)

func passwordIncorrect() *FieldError {
	return &FieldError{Field: "current_password", Message: msgPasswordIncorrect}
}

// AccountFinder looks accounts up by email.
type AccountFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
}

// PasswordChecker compares a password with an account's stored hash.
type PasswordChecker interface {
	CheckPassword(ctx context.Context, id int64, password string) (bool, error)
}

// UniqueEmail fails when the submitted email belongs to a different account.
func UniqueEmail(finder AccountFinder) Rule[AccountUpdateForm] {
	return func(ctx context.Context, f *AccountUpdateForm) (*FieldError, error) {
		if f.Email == "" {
			return nil, nil
		}
		owner, err := finder.FindByEmail(ctx, f.Email)
		if errors.Is(err, service.ErrAccountNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if owner.ID != f.ID() {
			return &FieldError{Field: "account_email", Message: msgEmailExists}, nil
		}
		return nil, nil
	}
}

// CurrentPasswordMatches fails when a new password is requested and the
// current password does not match the stored hash.
func CurrentPasswordMatches(checker PasswordChecker) Rule[PasswordUpdateForm] {
	return func(ctx context.Context, f *PasswordUpdateForm) (*FieldError, error) {
		if f.NewPassword == "" || f.CurrentPassword == "" {
			return nil, nil
		}
		ok, err := checker.CheckPassword(ctx, f.ID(), f.CurrentPassword)
		if errors.Is(err, service.ErrAccountNotFound) {
			return passwordIncorrect(), nil
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			return passwordIncorrect(), nil
		}
		return nil, nil
	}
}
