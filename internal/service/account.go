package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/csemotors/csemotors-go/internal/crypto"
	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/repository"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email already taken")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidAccountType  = errors.New("invalid account type")
	ErrNoPasswordRequested = errors.New("no new password given")
)

// AccountStore is the persistence the account service depends on.
type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	Update(ctx context.Context, upd model.AccountUpdate) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

// AccountService handles registration, login and profile changes.
type AccountService struct {
	store  AccountStore
	tokens *crypto.TokenService
}

// NewAccountService creates a new AccountService.
func NewAccountService(store AccountStore, tokens *crypto.TokenService) *AccountService {
	return &AccountService{store: store, tokens: tokens}
}

// Register creates a Client account. The email is stored lowercased.
func (s *AccountService) Register(ctx context.Context, na model.NewAccount) (*model.Account, error) {
	na.Type = model.AccountClient
	return s.CreateAccount(ctx, na)
}

// CreateAccount creates an account of any known type.
func (s *AccountService) CreateAccount(ctx context.Context, na model.NewAccount) (*model.Account, error) {
	if !na.Type.Valid() {
		return nil, ErrInvalidAccountType
	}

	hash, err := crypto.HashPassword(na.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		FirstName:    na.FirstName,
		LastName:     na.LastName,
		Email:        normalizeEmail(na.Email),
		PasswordHash: hash,
		Type:         na.Type,
	}

	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return account, nil
}

// Login checks credentials and returns a signed token for the account.
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, model.Identity, error) {
	account, err := s.store.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return "", model.Identity{}, ErrInvalidCredentials
		}
		return "", model.Identity{}, err
	}

	match, err := crypto.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return "", model.Identity{}, err
	}
	if !match {
		return "", model.Identity{}, ErrInvalidCredentials
	}

	identity := account.Identity()
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return "", model.Identity{}, err
	}

	return token, identity, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id int64) (*model.Account, error) {
	account, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// FindByEmail looks an account up by email, returning ErrAccountNotFound
// when nobody owns it.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	account, err := s.store.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// UpdateAccount changes the profile fields and returns a token carrying them.
func (s *AccountService) UpdateAccount(ctx context.Context, upd model.AccountUpdate) (string, model.Identity, error) {
	upd.Email = normalizeEmail(upd.Email)

	if err := s.store.Update(ctx, upd); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", model.Identity{}, ErrEmailTaken
		}
		return "", model.Identity{}, err
	}

	account, err := s.GetAccount(ctx, upd.ID)
	if err != nil {
		return "", model.Identity{}, err
	}

	identity := account.Identity()
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return "", model.Identity{}, err
	}

	return token, identity, nil
}

// UpdatePassword hashes and stores a new password.
func (s *AccountService) UpdatePassword(ctx context.Context, id int64, newPassword string) error {
	if newPassword == "" {
		return ErrNoPasswordRequested
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.store.UpdatePassword(ctx, id, hash)
}

// CheckPassword reports whether password matches the stored hash of account id.
func (s *AccountService) CheckPassword(ctx context.Context, id int64, password string) (bool, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return false, err
	}
	return crypto.VerifyPassword(password, account.PasswordHash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
