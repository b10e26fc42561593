package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/csemotors/csemotors-go/internal/crypto"
	"github.com/csemotors/csemotors-go/internal/middleware"
	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/service"
	"github.com/csemotors/csemotors-go/internal/session"
	"github.com/csemotors/csemotors-go/internal/validation"
	"github.com/csemotors/csemotors-go/internal/view"
)

const (
	msgBadCredentials      = "Please check your credentials and try again."
	msgRegistrationFailed  = "Sorry, the registration failed."
	msgOwnAccountOnly      = "You can only update your own account."
	msgAccountNotFound     = "Account not found."
	msgAccountUpdated      = "Account updated successfully."
	msgAccountUpdateFailed = "Sorry, the account update failed."
	msgEmailExists         = "Email already exists. Please use a different email."
	msgNoPasswordChange    = "No password change requested."
	msgPasswordUpdated     = "Password updated successfully."
	msgPasswordFailed      = "Sorry, the password update failed."
	msgLoggedOut           = "You have been successfully logged out."
)

// AccountHandler handles login, registration and account maintenance.
type AccountHandler struct {
	accounts     *service.AccountService
	render       Renderer
	notices      *session.Notices
	errors       *ErrorHandler
	tokenTTL     time.Duration
	secureCookie bool
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *service.AccountService, render Renderer, notices *session.Notices, errs *ErrorHandler, tokenTTL time.Duration, secureCookie bool) *AccountHandler {
	return &AccountHandler{
		accounts:     accounts,
		render:       render,
		notices:      notices,
		errors:       errs,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}
}

// LoginView handles GET /account/login requests.
func (h *AccountHandler) LoginView(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, "", nil, nil)
}

// Login handles POST /account/login requests after validation.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	form, _ := validation.FormFrom[validation.LoginForm](r.Context())

	token, id, err := h.accounts.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.renderLogin(w, r, http.StatusBadRequest, form.Email, nil, notice(msgBadCredentials))
			return
		}
		h.errors.ServerError(w, r, err)
		return
	}

	slog.Info("account logged in", "account_id", id.AccountID)
	middleware.SetTokenCookie(w, token, h.tokenTTL, h.secureCookie)
	http.Redirect(w, r, "/account/", http.StatusSeeOther)
}

func (h *AccountHandler) reconstructLogin(w http.ResponseWriter, r *http.Request, f *validation.LoginForm, errs validation.Errors) {
	h.renderLogin(w, r, http.StatusBadRequest, f.Email, errs, nil)
}

func (h *AccountHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, email string, errs validation.Errors, notices []session.Notice) {
	h.render.Render(w, r, status, "account/login", view.Page{
		Title:   "Login",
		Errors:  errs,
		Notices: notices,
		Data:    view.LoginView{Email: email},
	})
}

// RegistrationView handles GET /account/registration requests.
func (h *AccountHandler) RegistrationView(w http.ResponseWriter, r *http.Request) {
	h.renderRegistration(w, r, http.StatusOK, validation.RegistrationForm{}, nil, nil)
}

// Register handles POST /account/register requests after validation.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	form, _ := validation.FormFrom[validation.RegistrationForm](r.Context())

	account, err := h.accounts.Register(r.Context(), form.NewAccount())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrEmailTaken) {
			status = http.StatusConflict
		} else {
			slog.Error("registration failed", "error", err)
		}
		h.renderRegistration(w, r, status, *form, nil, notice(msgRegistrationFailed))
		return
	}

	slog.Info("account registered", "account_id", account.ID)
	h.notices.Success(w, r, fmt.Sprintf("Congratulations, you're registered %s. Please log in.", account.FirstName))
	http.Redirect(w, r, "/account/login", http.StatusSeeOther)
}

func (h *AccountHandler) reconstructRegistration(w http.ResponseWriter, r *http.Request, f *validation.RegistrationForm, errs validation.Errors) {
	h.renderRegistration(w, r, http.StatusBadRequest, *f, errs, nil)
}

func (h *AccountHandler) renderRegistration(w http.ResponseWriter, r *http.Request, status int, f validation.RegistrationForm, errs validation.Errors, notices []session.Notice) {
	h.render.Render(w, r, status, "account/registration", view.Page{
		Title:   "Registration",
		Errors:  errs,
		Notices: notices,
		Data: view.RegistrationView{
			FirstName:         f.FirstName,
			LastName:          f.LastName,
			Email:             f.Email,
			SuggestedPassword: suggestPassword(),
		},
	})
}

// Management handles GET /account/ requests.
func (h *AccountHandler) Management(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())
	h.render.Render(w, r, http.StatusOK, "account/management", view.Page{
		Title: "Account Management",
		Data:  view.AccountView{Account: id},
	})
}

// UpdateView handles GET /account/update/{accountID} requests.
func (h *AccountHandler) UpdateView(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
	if err != nil {
		h.errors.NotFound(w, r)
		return
	}
	if !h.isSelf(r, accountID) {
		h.redirectWithNotice(w, r, "/account/", msgOwnAccountOnly)
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			h.redirectWithNotice(w, r, "/account/", msgAccountNotFound)
			return
		}
		h.errors.ServerError(w, r, err)
		return
	}

	h.renderUpdate(w, r, http.StatusOK, updateViewFrom(account), nil, nil)
}

// Update handles POST /account/update requests after validation. The route
// only admits forms naming the logged-in account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	form, _ := validation.FormFrom[validation.AccountUpdateForm](r.Context())

	token, _, err := h.accounts.UpdateAccount(r.Context(), form.Update())
	if err != nil {
		v := view.UpdateAccountView{AccountID: form.ID(), FirstName: form.FirstName, LastName: form.LastName, Email: form.Email}
		if errors.Is(err, service.ErrEmailTaken) {
			h.renderUpdate(w, r, http.StatusConflict, v, validation.Errors{{Field: "account_email", Message: msgEmailExists}}, nil)
			return
		}
		slog.Error("account update failed", "account_id", form.ID(), "error", err)
		h.renderUpdate(w, r, http.StatusInternalServerError, v, nil, notice(msgAccountUpdateFailed))
		return
	}

	middleware.SetTokenCookie(w, token, h.tokenTTL, h.secureCookie)
	h.notices.Success(w, r, msgAccountUpdated)
	http.Redirect(w, r, "/account/", http.StatusSeeOther)
}

func (h *AccountHandler) reconstructUpdate(w http.ResponseWriter, r *http.Request, f *validation.AccountUpdateForm, errs validation.Errors) {
	h.renderUpdate(w, r, http.StatusBadRequest, view.UpdateAccountView{
		AccountID: f.ID(),
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}, errs, nil)
}

// UpdatePassword handles POST /account/update-password requests after
// validation. The route only admits forms naming the logged-in account.
func (h *AccountHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	form, _ := validation.FormFrom[validation.PasswordUpdateForm](r.Context())

	err := h.accounts.UpdatePassword(r.Context(), form.ID(), form.NewPassword)
	switch {
	case errors.Is(err, service.ErrNoPasswordRequested):
		h.redirectWithNotice(w, r, "/account/", msgNoPasswordChange)
	case err != nil:
		slog.Error("password update failed", "account_id", form.ID(), "error", err)
		h.redirectWithNotice(w, r, fmt.Sprintf("/account/update/%d", form.ID()), msgPasswordFailed)
	default:
		h.notices.Success(w, r, msgPasswordUpdated)
		http.Redirect(w, r, "/account/", http.StatusSeeOther)
	}
}

func (h *AccountHandler) reconstructPassword(w http.ResponseWriter, r *http.Request, _ *validation.PasswordUpdateForm, errs validation.Errors) {
	id, _ := middleware.IdentityFromContext(r.Context())
	account, err := h.accounts.GetAccount(r.Context(), id.AccountID)
	if err != nil {
		h.errors.ServerError(w, r, err)
		return
	}
	h.renderUpdate(w, r, http.StatusBadRequest, updateViewFrom(account), errs, nil)
}

func (h *AccountHandler) renderUpdate(w http.ResponseWriter, r *http.Request, status int, v view.UpdateAccountView, errs validation.Errors, notices []session.Notice) {
	v.SuggestedPassword = suggestPassword()
	h.render.Render(w, r, status, "account/update", view.Page{
		Title:   "Update Account",
		Errors:  errs,
		Notices: notices,
		Data:    v,
	})
}

// Logout handles GET /account/logout requests.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearTokenCookie(w, h.secureCookie)
	h.notices.Success(w, r, msgLoggedOut)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AccountHandler) isSelf(r *http.Request, accountID int64) bool {
	id, ok := middleware.IdentityFromContext(r.Context())
	return ok && id.AccountID == accountID
}

func (h *AccountHandler) redirectWithNotice(w http.ResponseWriter, r *http.Request, to, msg string) {
	h.notices.Notice(w, r, msg)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func updateViewFrom(a *model.Account) view.UpdateAccountView {
	return view.UpdateAccountView{
		AccountID: a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
	}
}

func notice(msg string) []session.Notice {
	return []session.Notice{{Kind: session.KindNotice, Message: msg}}
}

func suggestPassword() string {
	pw, err := crypto.SuggestPassword()
	if err != nil {
		slog.Warn("password suggestion failed", "error", err)
		return ""
	}
	return pw
}
