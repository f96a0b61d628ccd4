// Package viewstate holds the single piece of navigation state shared by
// the whole client: which top-level view is active.
//
// A Store is created once by the application and handed down explicitly
// through a context.Context. Reading it from a context that never had one
// installed is a programming error and panics.
package viewstate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
)

var ErrUnknownView = errors.New("unknown view")

type Store struct {
	mu     sync.RWMutex
	active models.ActiveView
	subs   []func(models.ActiveView)
}

// New returns a store with the documents view active.
func New() *Store {
	return &Store{active: models.ViewDocuments}
}

func (s *Store) Active() models.ActiveView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Set switches the active view. Only the two known views are accepted;
// anything else leaves the state untouched.
func (s *Store) Set(v models.ActiveView) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownView, string(v))
	}

	s.mu.Lock()
	changed := s.active != v
	s.active = v
	subs := append([]func(models.ActiveView){}, s.subs...)
	s.mu.Unlock()

	if changed {
		for _, fn := range subs {
			fn(v)
		}
	}
	return nil
}

// OnChange registers fn to be called after every actual view change.
func (s *Store) OnChange(fn func(models.ActiveView)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// ParseView accepts the canonical view names plus the short aliases
// "docs" and "storage".
func ParseView(name string) (models.ActiveView, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "documents", "docs":
		return models.ViewDocuments, nil
	case "viewdocuments", "storage":
		return models.ViewStorage, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
}

type ctxKey struct{}

func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the store installed by NewContext.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || s == nil {
		panic("viewstate: no Store in context; install one with viewstate.NewContext")
	}
	return s
}
