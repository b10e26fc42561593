// Package session carries one-shot notices across a redirect.
package session

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const cookieName = "csemotors_session"

// Kind distinguishes how a notice is styled.
type Kind string

const (
	KindNotice  Kind = "notice"
	KindSuccess Kind = "success"
)

// Notice is a message shown once on the next rendered page.
type Notice struct {
	Kind    Kind
	Message string
}

// Notices stores flash messages in a signed cookie session.
type Notices struct {
	store sessions.Store
}

// New creates a Notices backed by a cookie store signed with secret.
func New(secret string, secure bool) *Notices {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return NewWithStore(store)
}

// NewWithStore wraps an existing session store.
func NewWithStore(store sessions.Store) *Notices {
	return &Notices{store: store}
}

// Add queues a notice for the next page the client renders. It must be
// called before the response headers are written.
func (n *Notices) Add(w http.ResponseWriter, r *http.Request, kind Kind, message string) {
	sess, err := n.store.Get(r, cookieName)
	if err != nil {
		// A stale or tampered cookie still yields a fresh session.
		slog.Warn("session decode failed", "error", err)
	}
	sess.AddFlash(message, string(kind))
	if err := sess.Save(r, w); err != nil {
		slog.Error("session save failed", "error", err)
	}
}

// Notice queues a plain notice.
func (n *Notices) Notice(w http.ResponseWriter, r *http.Request, message string) {
	n.Add(w, r, KindNotice, message)
}

// Success queues a success notice.
func (n *Notices) Success(w http.ResponseWriter, r *http.Request, message string) {
	n.Add(w, r, KindSuccess, message)
}

// Pop returns and clears every queued notice. Nothing is written when the
// queue was already empty.
func (n *Notices) Pop(w http.ResponseWriter, r *http.Request) []Notice {
	sess, err := n.store.Get(r, cookieName)
	if err != nil {
		slog.Warn("session decode failed", "error", err)
	}

	var out []Notice
	for _, kind := range []Kind{KindNotice, KindSuccess} {
		for _, f := range sess.Flashes(string(kind)) {
			if msg, ok := f.(string); ok {
				out = append(out, Notice{Kind: kind, Message: msg})
			}
		}
	}

	if len(out) > 0 {
		if err := sess.Save(r, w); err != nil {
			slog.Error("session save failed", "error", err)
		}
	}
	return out
}
