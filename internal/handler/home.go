package handler

import (
	"net/http"

	"github.com/csemotors/csemotors-go/internal/view"
)

// HomeHandler serves the landing page.
type HomeHandler struct {
	render Renderer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(render Renderer) *HomeHandler {
	return &HomeHandler{render: render}
}

// Home handles GET / requests.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "home", view.Page{Title: "Home"})
}
