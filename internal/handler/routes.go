package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/csemotors/csemotors-go/internal/crypto"
	"github.com/csemotors/csemotors-go/internal/middleware"
	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/service"
	"github.com/csemotors/csemotors-go/internal/session"
	"github.com/csemotors/csemotors-go/internal/validation"
)

// Deps holds everything the router needs.
type Deps struct {
	Accounts     *service.AccountService
	Inventory    *service.InventoryService
	Tokens       *crypto.TokenService
	Notices      *session.Notices
	Render       Renderer
	Nav          middleware.NavSource
	Validator    *validation.Validator
	StaticDir    string
	SecureCookie bool
}

// NewRouter wires the site routes.
func NewRouter(d Deps) http.Handler {
	errs := NewErrorHandler(d.Render)
	v := d.Validator
	if v == nil {
		v = validation.New(validation.WithErrorHandler(errs.ServerError))
	}

	home := NewHomeHandler(d.Render)
	accounts := NewAccountHandler(d.Accounts, d.Render, d.Notices, errs, d.Tokens.TTL(), d.SecureCookie)
	inventory := NewInventoryHandler(d.Inventory, d.Render, d.Notices, errs)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer(errs.ServerError))

	if d.StaticDir != "" {
		static := http.FileServer(http.Dir(d.StaticDir))
		for _, dir := range []string{"/css/*", "/js/*", "/images/*"} {
			r.Handle(dir, static)
		}
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.CheckToken(d.Tokens, d.Notices, d.SecureCookie))
		r.Use(middleware.Navigation(d.Nav))

		r.Get("/", home.Home)

		r.Route("/account", func(r chi.Router) {
			r.Get("/login", accounts.LoginView)
			r.Get("/registration", accounts.RegistrationView)
			r.Get("/logout", accounts.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(5, 10, http.HandlerFunc(errs.TooManyRequests)))
				r.With(validation.Check(v, accounts.reconstructLogin)).
					Post("/login", accounts.Login)
				r.With(validation.Check(v, accounts.reconstructRegistration)).
					Post("/register", accounts.Register)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireLogin(d.Notices))
				r.Get("/", accounts.Management)
				r.Get("/update/{accountID}", accounts.UpdateView)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSelf(d.Notices, "account_id", "/account/"))
					r.With(validation.Check(v, accounts.reconstructUpdate, validation.UniqueEmail(d.Accounts))).
						Post("/update", accounts.Update)
					r.With(validation.Check(v, accounts.reconstructPassword, validation.CurrentPasswordMatches(d.Accounts))).
						Post("/update-password", accounts.UpdatePassword)
				})
			})
		})

		r.Route("/inv", func(r chi.Router) {
			r.Get("/type/{classificationID}", inventory.ByClassification)
			r.Get("/detail/{vehicleID}", inventory.Detail)
			r.Get("/broken", errs.Broken)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireLogin(d.Notices))
				r.Use(middleware.RequireRole(d.Notices, model.AccountEmployee, model.AccountAdmin))

				r.Get("/", inventory.Management)
				r.Get("/getInventory/{classificationID}", inventory.GetInventory)

				r.Get("/add-classification", inventory.AddClassificationView)
				r.With(validation.Check(v, inventory.reconstructClassification)).
					Post("/add-classification", inventory.AddClassification)

				r.Get("/add-inventory", inventory.AddInventoryView)
				r.With(validation.Check(v, inventory.reconstructAddInventory)).
					Post("/add-inventory", inventory.AddInventory)

				r.Get("/edit/{vehicleID}", inventory.EditView)
				r.With(validation.Check(v, inventory.reconstructEdit)).
					Post("/update", inventory.Update)

				r.Get("/delete/{vehicleID}", inventory.DeleteView)
				r.Post("/delete", inventory.Delete)
			})
		})

		// Registered last so the handlers reach the subrouters mounted above.
		r.NotFound(errs.NotFound)
		r.MethodNotAllowed(errs.NotFound)
	})

	return r
}
