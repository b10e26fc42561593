package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/csemotors/csemotors-go/internal/model"
)

// TokenCookieName is the cookie holding the login token.
const TokenCookieName = "jwt"

const (
	loginPath         = "/account/login"
	msgPleaseLogIn    = "Please log in"
	msgLoginRequired  = "Please log in."
	msgForbidden      = "You do not have permission to access that page."
	msgOwnAccountOnly = "You can only update your own account."
)

// TokenVerifier decodes a login token.
type TokenVerifier interface {
	Verify(token string) (model.Identity, error)
}

// Notifier queues a notice for the next rendered page.
type Notifier interface {
	Notice(w http.ResponseWriter, r *http.Request, message string)
}

// CheckToken decodes the token cookie on every request. A request without
// the cookie proceeds anonymously. A valid token attaches its identity to the
// context. Any other token clears the cookie and sends the client to login.
func CheckToken(tokens TokenVerifier, notices Notifier, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := tokens.Verify(cookie.Value)
			if err != nil {
				ClearTokenCookie(w, secureCookie)
				notices.Notice(w, r, msgPleaseLogIn)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin(notices Notifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFromContext(r.Context()); !ok {
				notices.Notice(w, r, msgLoginRequired)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole redirects requests whose identity holds none of roles.
func RequireRole(notices Notifier, roles ...model.AccountType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok || !slices.Contains(roles, id.Type) {
				notices.Notice(w, r, msgForbidden)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelf redirects a posted form whose field does not hold the
// logged-in account's id. It must run before any check that reads the named
// account, so nothing about another account is revealed.
func RequireSelf(notices Notifier, field, redirect string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			posted, err := strconv.ParseInt(r.PostFormValue(field), 10, 64)
			if !ok || err != nil || posted != id.AccountID {
				notices.Notice(w, r, msgOwnAccountOnly)
				http.Redirect(w, r, redirect, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetTokenCookie stores a login token in an HTTP-only cookie.
func SetTokenCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie expires the token cookie.
func ClearTokenCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
