package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csemotors/csemotors-go/internal/middleware"
	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/session"
	"github.com/csemotors/csemotors-go/internal/validation"
)

type queuedNotices []session.Notice

func (q queuedNotices) Pop(http.ResponseWriter, *http.Request) []session.Notice { return q }

func TestRendererParsesAllPages(t *testing.T) {
	r, err := NewRenderer(queuedNotices(nil))
	require.NoError(t, err)

	for _, name := range []string{
		"home", "errors/error",
		"account/login", "account/registration", "account/management", "account/update",
		"inventory/classification", "inventory/detail", "inventory/management",
		"inventory/add-classification", "inventory/add-inventory", "inventory/edit", "inventory/delete",
	} {
		assert.Contains(t, r.pages, name)
	}
}

func TestRenderLayout(t *testing.T) {
	r, err := NewRenderer(queuedNotices{{Kind: session.KindSuccess, Message: "Welcome back"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/account/login", nil)
	rec := httptest.NewRecorder()
	r.Render(rec, req, http.StatusBadRequest, "account/login", Page{
		Title:   "Login",
		Errors:  validation.Errors{{Field: "account_email", Message: "A valid email is required."}, {Message: "The form could not be read."}},
		Notices: []session.Notice{{Kind: session.KindNotice, Message: "Please check your credentials and try again."}},
		Data:    LoginView{Email: "ada@example.com"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Login | CSE Motors</title>")
	assert.Contains(t, body, `value="ada@example.com"`)
	assert.Contains(t, body, "Welcome back")
	assert.Contains(t, body, "Please check your credentials and try again.")
	assert.Contains(t, body, `<li data-field="account_email">A valid email is required.</li>`)
	assert.Contains(t, body, "<li>The form could not be read.</li>")
	assert.Contains(t, body, "My Account")
	assert.Contains(t, body, ">Custom</a>", "fallback nav without the middleware")
}

func TestRenderUsesContextIdentityAndNav(t *testing.T) {
	r, err := NewRenderer(queuedNotices(nil))
	require.NoError(t, err)

	nav, err := Nav([]model.Classification{{ID: 7, Name: "Electric"}})
	require.NoError(t, err)

	var rec *httptest.ResponseRecorder
	h := middleware.Navigation(staticSource(nav))(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := middleware.WithIdentity(req.Context(), model.Identity{AccountID: 1, FirstName: "Ada", Type: model.AccountAdmin})
		r.Render(w, req.WithContext(ctx), http.StatusOK, "account/management", Page{
			Title: "Account Management",
			Data:  AccountView{Account: model.Identity{AccountID: 1, FirstName: "Ada", Type: model.AccountAdmin}},
		})
	}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/account/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "Welcome Ada")
	assert.Contains(t, body, `href="/inv/type/7"`)
	assert.Contains(t, body, "Manage Inventory")
	assert.Contains(t, body, "Logout")
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := NewRenderer(queuedNotices(nil))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "nope", Page{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
