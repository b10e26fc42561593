// Package validation binds submitted forms, checks them against declarative
// and store-backed rules, and hands failures back to the originating view.
package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	minPasswordLength = 12
	minVehicleYear    = 1900
)

var classNamePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// FieldError is one violation keyed by the form field it belongs to. Field
// is empty when the message is about the form as a whole.
type FieldError struct {
	Field   string
	Message string
}

// Errors is the ordered list of violations shown above a form.
type Errors []FieldError

// Messages returns the messages in order.
func (e Errors) Messages() []string {
	out := make([]string, len(e))
	for i, fe := range e {
		out[i] = fe.Message
	}
	return out
}

// For returns the first message recorded for field, or "".
func (e Errors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// messenger is implemented by forms that carry their own field messages.
// Keys are either "field" or "field.tag".
type messenger interface {
	Messages() map[string]string
}

// Validator runs the declarative rules of a form.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
	onError  func(w http.ResponseWriter, r *http.Request, err error)
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the clock used for the vehicle year bound.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithErrorHandler sets the handler used when a custom rule fails with an
// infrastructure error instead of a validation message.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(v *Validator) { v.onError = fn }
}

// New builds a Validator with the custom tags registered.
func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		onError: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	must := func(tag string, fn validator.Func) {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}
	must("strongpassword", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	must("vehicleyear", func(fl validator.FieldLevel) bool {
		year, err := strconv.Atoi(fl.Field().String())
		return err == nil && year >= minVehicleYear && year <= v.maxYear()
	})
	must("positive", func(fl validator.FieldLevel) bool {
		n, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && n > 0
	})
	must("nonnegative", func(fl validator.FieldLevel) bool {
		n, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && n >= 0
	})
	must("maxnum", func(fl validator.FieldLevel) bool {
		limit, err := strconv.ParseFloat(fl.Param(), 64)
		if err != nil {
			return false
		}
		n, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && n <= limit
	})
	must("classname", func(fl validator.FieldLevel) bool {
		return classNamePattern.MatchString(fl.Field().String())
	})

	return v
}

func (v *Validator) maxYear() int {
	return v.now().Year() + 1
}

// Struct validates form and returns one error per failing field, in field
// order. A nil result means the form is valid.
func (v *Validator) Struct(form any) Errors {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		slog.Error("form validation failed", "error", err)
		return Errors{{Message: "The form could not be processed."}}
	}

	var messages map[string]string
	if m, ok := form.(messenger); ok {
		messages = m.Messages()
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: v.message(messages, fe)})
	}
	return out
}

func (v *Validator) message(messages map[string]string, fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if fe.Tag() == "vehicleyear" {
		return fmt.Sprintf("Year must be between %d and %d.", minVehicleYear, v.maxYear())
	}
	if msg, ok := messages[fe.Field()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid.", fe.Field())
}

// StrongPassword reports whether pw has at least 12 characters with a
// lowercase letter, an uppercase letter, a digit and a symbol.
func StrongPassword(pw string) bool {
	if len([]rune(pw)) < minPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, c := range pw {
		switch {
		case unicode.IsLower(c):
			lower = true
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsDigit(c):
			digit = true
		case !unicode.IsLetter(c) && !unicode.IsSpace(c):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
