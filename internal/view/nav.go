package view

import (
	"context"
	"html/template"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/csemotors/csemotors-go/internal/model"
)

var fallbackClassifications = []model.Classification{
	{ID: 1, Name: "Custom"},
	{ID: 2, Name: "Sedan"},
	{ID: 3, Name: "Sport"},
	{ID: 4, Name: "SUV"},
	{ID: 5, Name: "Truck"},
}

var fallbackNav = func() template.HTML {
	h, err := Nav(fallbackClassifications)
	if err != nil {
		panic(err)
	}
	return h
}()

// Nav renders the site navigation: Home first, then one link per
// classification in the order given.
func Nav(classes []model.Classification) (template.HTML, error) {
	return renderFragment("nav", classes)
}

// FallbackNav is served when the classifications cannot be loaded.
func FallbackNav() template.HTML {
	return fallbackNav
}

// ClassificationLister loads classifications in display order.
type ClassificationLister interface {
	Classifications(ctx context.Context) ([]model.Classification, error)
}

// NavCache holds the rendered navigation for a fixed time. The lock only
// guards the cached fields; rebuild queries run outside it.
type NavCache struct {
	source  ClassificationLister
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time
	group   singleflight.Group

	mu      sync.RWMutex
	html    template.HTML
	builtAt time.Time
	valid   bool
}

// NavCacheOption configures a NavCache.
type NavCacheOption func(*NavCache)

// WithNavClock sets the clock used to age the cached fragment.
func WithNavClock(now func() time.Time) NavCacheOption {
	return func(c *NavCache) { c.now = now }
}

// NewNavCache creates a cache that rebuilds from source once ttl has
// elapsed, bounding each rebuild query by timeout.
func NewNavCache(source ClassificationLister, ttl, timeout time.Duration, opts ...NavCacheOption) *NavCache {
	c := &NavCache{
		source:  source,
		ttl:     ttl,
		timeout: timeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the navigation fragment. Concurrent misses share a single
// rebuild, and a caller whose ctx ends stops waiting for it. A failed
// rebuild yields the fallback, which is not cached.
func (c *NavCache) Get(ctx context.Context) template.HTML {
	if html, ok := c.cached(); ok {
		return html
	}

	ch := c.group.DoChan("nav", func() (any, error) {
		return c.rebuild(context.WithoutCancel(ctx)), nil
	})
	select {
	case res := <-ch:
		return res.Val.(template.HTML)
	case <-ctx.Done():
		return fallbackNav
	}
}

func (c *NavCache) cached() (template.HTML, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.valid && c.now().Sub(c.builtAt) < c.ttl {
		return c.html, true
	}
	return "", false
}

// rebuild runs detached from any single caller and is bounded by timeout.
func (c *NavCache) rebuild(ctx context.Context) template.HTML {
	if html, ok := c.cached(); ok {
		return html
	}

	now := c.now()
	qctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	classes, err := c.source.Classifications(qctx)
	if err != nil {
		slog.Warn("navigation rebuild failed, using fallback", "error", err)
		return fallbackNav
	}
	html, err := Nav(classes)
	if err != nil {
		slog.Error("navigation render failed, using fallback", "error", err)
		return fallbackNav
	}

	c.mu.Lock()
	c.html, c.builtAt, c.valid = html, now, true
	c.mu.Unlock()
	return html
}
