package validation

import (
	"fmt"
	"math"
	"strconv"

	"github.com/csemotors/csemotors-go/internal/model"
)

// maxVehiclePrice is the largest value inv_price DECIMAL(10,2) can hold.
const maxVehiclePrice = 99999999.99

// RegistrationForm is posted by the registration view.
type RegistrationForm struct {
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname" validate:"min=2"`
	Email     string `form:"account_email" validate:"required,email"`
	Password  string `form:"account_password,raw" validate:"strongpassword"`
}

func (RegistrationForm) Messages() map[string]string {
	return map[string]string{
		"account_firstname": "Please provide a first name.",
		"account_lastname":  "Please provide a last name.",
		"account_email":     "A valid email is required.",
		"account_password":  "Password does not meet requirements.",
	}
}

// NewAccount converts the form for the account service.
func (f RegistrationForm) NewAccount() model.NewAccount {
	return model.NewAccount{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
		Type:      model.AccountClient,
	}
}

// LoginForm is posted by the login view.
type LoginForm struct {
	Email    string `form:"account_email" validate:"required,email"`
	Password string `form:"account_password,raw" validate:"required"`
}

func (LoginForm) Messages() map[string]string {
	return map[string]string{
		"account_email":    "A valid email is required.",
		"account_password": "Please provide a password.",
	}
}

// AccountUpdateForm is posted by the account information section of the
// update view.
type AccountUpdateForm struct {
	AccountID string `form:"account_id" validate:"required,number"`
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname" validate:"min=2"`
	Email     string `form:"account_email" validate:"required,email"`
}

func (AccountUpdateForm) Messages() map[string]string {
	return map[string]string{
		"account_id":        "Invalid account.",
		"account_firstname": "Please provide a first name.",
		"account_lastname":  "Please provide a last name.",
		"account_email":     "A valid email is required.",
	}
}

// ID returns the posted account id, or 0 when it is not a number.
func (f AccountUpdateForm) ID() int64 {
	return parseID(f.AccountID)
}

// Update converts the form for the account service.
func (f AccountUpdateForm) Update() model.AccountUpdate {
	return model.AccountUpdate{
		ID:        f.ID(),
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}
}

// PasswordUpdateForm is posted by the password section of the update view.
type PasswordUpdateForm struct {
	AccountID       string `form:"account_id" validate:"required,number"`
	CurrentPassword string `form:"current_password,raw" validate:"required_with=NewPassword"`
	NewPassword     string `form:"new_password,raw" validate:"omitempty,strongpassword"`
	ConfirmPassword string `form:"confirm_password,raw" validate:"eqfield=NewPassword"`
}

func (PasswordUpdateForm) Messages() map[string]string {
	return map[string]string{
		"account_id":       "Invalid account.",
		"current_password": "Current password is required to change password.",
		"new_password":     "Password does not meet requirements.",
		"confirm_password": "Passwords do not match.",
	}
}

// ID returns the posted account id, or 0 when it is not a number.
func (f PasswordUpdateForm) ID() int64 {
	return parseID(f.AccountID)
}

// ClassificationForm is posted by the add-classification view.
type ClassificationForm struct {
	Name string `form:"classification_name" validate:"required,classname"`
}

func (ClassificationForm) Messages() map[string]string {
	return map[string]string{
		"classification_name.required":  "Please provide a classification name.",
		"classification_name.classname": "Classification name may only contain letters and numbers.",
	}
}

// VehicleForm is posted by the add and edit inventory views. Values stay
// strings so a failed submission re-renders exactly what was typed.
type VehicleForm struct {
	InvID            string `form:"inv_id" validate:"omitempty,number"`
	ClassificationID string `form:"classification_id" validate:"required,number"`
	Make             string `form:"inv_make" validate:"required"`
	Model            string `form:"inv_model" validate:"required"`
	Year             string `form:"inv_year" validate:"required,numeric,len=4,vehicleyear"`
	Description      string `form:"inv_description" validate:"required"`
	Image            string `form:"inv_image" validate:"required"`
	Thumbnail        string `form:"inv_thumbnail" validate:"required"`
	Price            string `form:"inv_price" validate:"required,numeric,positive,maxnum=99999999.99"`
	Miles            string `form:"inv_miles" validate:"required,numeric,nonnegative,maxnum=2147483647"`
	Color            string `form:"inv_color" validate:"required"`
}

func (VehicleForm) Messages() map[string]string {
	return map[string]string{
		"inv_id":                "Invalid vehicle.",
		"classification_id":     "Please select a classification.",
		"inv_make":              "Please provide a make.",
		"inv_model":             "Please provide a model.",
		"inv_year":              "Year must be a number.",
		"inv_year.len":          "Please provide a valid 4-digit year.",
		"inv_description":       "Please provide a description.",
		"inv_image":             "Please provide an image path.",
		"inv_thumbnail":         "Please provide a thumbnail path.",
		"inv_price":             "Price must be a number.",
		"inv_price.positive":    "Price must be greater than 0.",
		"inv_price.maxnum":      "Price must be no more than 99999999.99.",
		"inv_miles":             "Miles must be a number.",
		"inv_miles.nonnegative": "Miles cannot be negative.",
		"inv_miles.maxnum":      "Miles must be no more than 2147483647.",
		"inv_color":             "Please provide a color.",
	}
}

// VehicleFormFrom fills a form from a stored vehicle, for the edit view.
func VehicleFormFrom(v *model.Vehicle) VehicleForm {
	return VehicleForm{
		InvID:            strconv.FormatInt(v.ID, 10),
		ClassificationID: strconv.FormatInt(v.ClassificationID, 10),
		Make:             v.Make,
		Model:            v.Model,
		Year:             strconv.Itoa(v.Year),
		Description:      v.Description,
		Image:            v.Image,
		Thumbnail:        v.Thumbnail,
		Price:            strconv.FormatFloat(v.Price, 'f', -1, 64),
		Miles:            strconv.Itoa(v.Miles),
		Color:            v.Color,
	}
}

// ClassificationIDValue returns the selected classification, or 0.
func (f VehicleForm) ClassificationIDValue() int64 {
	return parseID(f.ClassificationID)
}

// Vehicle converts a validated form into a vehicle.
func (f VehicleForm) Vehicle() (model.Vehicle, error) {
	year, err := strconv.Atoi(f.Year)
	if err != nil {
		return model.Vehicle{}, fmt.Errorf("inv_year: %w", err)
	}
	price, err := strconv.ParseFloat(f.Price, 64)
	if err != nil {
		return model.Vehicle{}, fmt.Errorf("inv_price: %w", err)
	}
	if price <= 0 || price > maxVehiclePrice {
		return model.Vehicle{}, fmt.Errorf("inv_price: %v out of range", price)
	}
	miles, err := strconv.ParseFloat(f.Miles, 64)
	if err != nil {
		return model.Vehicle{}, fmt.Errorf("inv_miles: %w", err)
	}
	if miles < 0 || miles > math.MaxInt32 {
		return model.Vehicle{}, fmt.Errorf("inv_miles: %v out of range", miles)
	}

	return model.Vehicle{
		ID:               parseID(f.InvID),
		Make:             f.Make,
		Model:            f.Model,
		Year:             year,
		Description:      f.Description,
		Image:            f.Image,
		Thumbnail:        f.Thumbnail,
		Price:            price,
		Miles:            int(math.Round(miles)),
		Color:            f.Color,
		ClassificationID: f.ClassificationIDValue(),
	}, nil
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
