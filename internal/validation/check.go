package validation

import (
	"context"
	"log/slog"
	"net/http"
)

// Rule is a context-aware check that may consult a store. It returns a
// non-nil FieldError on a violation and an error only when the check itself
// could not run.
type Rule[F any] func(ctx context.Context, form *F) (*FieldError, error)

// Reconstruct re-renders the view a form came from with the submitted values
// and the collected errors.
type Reconstruct[F any] func(w http.ResponseWriter, r *http.Request, form *F, errs Errors)

type formKey[F any] struct{}

// Check binds and validates F before the wrapped handler runs. When any
// rule fails, reconstruct is called and the wrapped handler is skipped.
func Check[F any](v *Validator, reconstruct Reconstruct[F], rules ...Rule[F]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			form := new(F)
			if err := Bind(r, form); err != nil {
				slog.Warn("form bind failed", "path", r.URL.Path, "error", err)
				reconstruct(w, r, form, Errors{{Message: "The form could not be read. Please try again."}})
				return
			}

			errs := v.Struct(form)
			for _, rule := range rules {
				fe, err := rule(r.Context(), form)
				if err != nil {
					slog.Error("validation rule failed", "path", r.URL.Path, "error", err)
					v.onError(w, r, err)
					return
				}
				if fe != nil {
					errs = append(errs, *fe)
				}
			}

			if len(errs) > 0 {
				reconstruct(w, r, form, errs)
				return
			}

			ctx := context.WithValue(r.Context(), formKey[F]{}, form)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FormFrom returns the form stored by Check.
func FormFrom[F any](ctx context.Context) (*F, bool) {
	form, ok := ctx.Value(formKey[F]{}).(*F)
	return form, ok
}
