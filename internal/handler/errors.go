package handler

import (
	"log/slog"
	"net/http"

	"github.com/csemotors/csemotors-go/internal/middleware"
	"github.com/csemotors/csemotors-go/internal/view"
)

const (
	msgNotFound    = "Sorry, we appear to have lost that page."
	msgServerError = "Oh no! There was a crash. Maybe try a different route?"
	msgTooMany     = "Too many attempts. Please wait a moment and try again."
)

// Renderer writes a page inside the site layout.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, p view.Page)
}

// ErrorHandler renders the terminal error pages.
type ErrorHandler struct {
	render Renderer
}

// NewErrorHandler creates a new ErrorHandler.
func NewErrorHandler(render Renderer) *ErrorHandler {
	return &ErrorHandler{render: render}
}

// NotFound renders the generic 404 page.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusNotFound, msgNotFound)
}

// ServerError logs err and renders the generic 500 page.
func (h *ErrorHandler) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"error", err,
	)
	h.page(w, r, http.StatusInternalServerError, msgServerError)
}

// TooManyRequests renders the rate limit page.
func (h *ErrorHandler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusTooManyRequests, msgTooMany)
}

// Broken fails on purpose so the 500 path can be exercised end to end.
func (h *ErrorHandler) Broken(http.ResponseWriter, *http.Request) {
	panic("intentional error from /inv/broken")
}

func (h *ErrorHandler) page(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render.Render(w, r, status, "errors/error", view.Page{
		Title: http.StatusText(status),
		Data:  view.ErrorView{Status: status, Message: msg},
	})
}
