package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/csemotors/csemotors-go/internal/middleware"
	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/session"
	"github.com/csemotors/csemotors-go/internal/validation"
)

// NoticePopper drains the notices queued for the current client.
type NoticePopper interface {
	Pop(w http.ResponseWriter, r *http.Request) []session.Notice
}

// Page is what a handler passes to Render.
type Page struct {
	Title   string
	Errors  validation.Errors
	Notices []session.Notice
	Data    any
}

type layoutData struct {
	Title    string
	Nav      template.HTML
	Identity *model.Identity
	Notices  []session.Notice
	Errors   validation.Errors
	Year     int
	Data     any
}

// Renderer executes page templates inside the site layout.
type Renderer struct {
	pages   map[string]*template.Template
	notices NoticePopper
}

// NewRenderer parses every embedded page with the layout.
func NewRenderer(notices NoticePopper) (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template), notices: notices}

	err := fs.WalkDir(templateFS, "templates/pages", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".html" {
			return err
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/pages/"), ".html")
		tmpl, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layouts/*.html", p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render writes page name with status. Queued notices are drained and shown
// ahead of p.Notices.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, p Page) {
	tmpl, ok := rd.pages[name]
	if !ok {
		slog.Error("unknown page", "page", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := layoutData{
		Title:   p.Title,
		Nav:     middleware.NavFromContext(r.Context()),
		Notices: append(rd.notices.Pop(w, r), p.Notices...),
		Errors:  p.Errors,
		Year:    time.Now().Year(),
		Data:    p.Data,
	}
	if data.Nav == "" {
		data.Nav = fallbackNav
	}
	if id, ok := middleware.IdentityFromContext(r.Context()); ok {
		data.Identity = &id
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		slog.Error("template execution failed", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
