package model

// AccountType is the role an account holds.
type AccountType string

const (
	AccountClient   AccountType = "Client"
	AccountEmployee AccountType = "Employee"
	AccountAdmin    AccountType = "Admin"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountClient, AccountEmployee, AccountAdmin:
		return true
	}
	return false
}

// Account represents an account row in the database.
type Account struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Type         AccountType
}

// Identity returns the non-secret account fields carried in a session token.
func (a *Account) Identity() Identity {
	return Identity{
		AccountID: a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Type:      a.Type,
	}
}

// Identity is the decoded session payload. It is never persisted.
type Identity struct {
	AccountID int64       `json:"account_id"`
	FirstName string      `json:"account_firstname"`
	LastName  string      `json:"account_lastname"`
	Email     string      `json:"account_email"`
	Type      AccountType `json:"account_type"`
}

// IsStaff reports whether the identity may manage inventory.
func (i Identity) IsStaff() bool {
	return i.Type == AccountEmployee || i.Type == AccountAdmin
}

// NewAccount holds the fields needed to create an account.
type NewAccount struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Type      AccountType
}

// AccountUpdate holds the editable profile fields of an account.
type AccountUpdate struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}
