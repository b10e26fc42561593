package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/csemotors/csemotors-go/internal/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already exists")
)

const (
	accountColumns = `account_id, account_firstname, account_lastname, account_email, account_password, account_type`

	insertAccountQuery = `INSERT INTO account (account_firstname, account_lastname, account_email, account_password, account_type)
		VALUES (?, ?, ?, ?, ?)`
	accountByEmailQuery = `SELECT ` + accountColumns + ` FROM account WHERE account_email = ?`
	accountByIDQuery    = `SELECT ` + accountColumns + ` FROM account WHERE account_id = ?`
	updateAccountQuery  = `UPDATE account SET account_firstname = ?, account_lastname = ?, account_email = ? WHERE account_id = ?`
	updatePasswordQuery = `UPDATE account SET account_password = ? WHERE account_id = ?`
)

// AccountRepository handles account persistence operations.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account and sets the generated ID on it.
func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	result, err := r.db.ExecContext(ctx, insertAccountQuery,
		account.FirstName, account.LastName, account.Email, account.PasswordHash, string(account.Type),
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}

	account.ID = id
	return nil
}

// GetByEmail retrieves an account by its email address.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.getOne(ctx, accountByEmailQuery, email)
}

// GetByID retrieves an account by its ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	return r.getOne(ctx, accountByIDQuery, id)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg any) (*model.Account, error) {
	account := &model.Account{}
	var accountType string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID, &account.FirstName, &account.LastName, &account.Email, &account.PasswordHash, &accountType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("select account: %w", err)
	}
	account.Type = model.AccountType(accountType)

	return account, nil
}

// Update changes the name and email of an account. MySQL reports zero
// affected rows when the values are unchanged, so a missing account is not
// detected here.
func (r *AccountRepository) Update(ctx context.Context, upd model.AccountUpdate) error {
	_, err := r.db.ExecContext(ctx, updateAccountQuery, upd.FirstName, upd.LastName, upd.Email, upd.ID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// UpdatePassword stores a new password hash.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	if _, err := r.db.ExecContext(ctx, updatePasswordQuery, hash, id); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
