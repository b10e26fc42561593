package view

import (
	"html/template"

	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/validation"
)

// LoginView echoes the submitted email.
type LoginView struct {
	Email string
}

// RegistrationView keeps the submitted values after a failed registration.
type RegistrationView struct {
	FirstName         string
	LastName          string
	Email             string
	SuggestedPassword string
}

// AccountView is the account management landing page.
type AccountView struct {
	Account model.Identity
}

// UpdateAccountView drives both forms of the account update page.
type UpdateAccountView struct {
	AccountID         int64
	FirstName         string
	LastName          string
	Email             string
	SuggestedPassword string
}

// GridView is one classification page.
type GridView struct {
	Grid template.HTML
}

// DetailView is one vehicle page.
type DetailView struct {
	Detail template.HTML
}

// InventoryManagementView is the staff landing page.
type InventoryManagementView struct {
	Select template.HTML
}

// ClassificationFormView keeps the submitted classification name.
type ClassificationFormView struct {
	Name string
}

// VehicleFormView drives the add and edit vehicle pages.
type VehicleFormView struct {
	Select template.HTML
	Form   validation.VehicleForm
	Found  bool
}

// DeleteView is the delete confirmation page. Vehicle is nil when the id
// does not exist.
type DeleteView struct {
	Vehicle *model.Vehicle
}

// ErrorView is the generic error page.
type ErrorView struct {
	Status  int
	Message string
}
