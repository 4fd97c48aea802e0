// Package handlertest provides a store backend double for handler tests.
package handlertest

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/upstream"
)

// ErrDown is returned by every call of a Down upstream.
var ErrDown = errors.New("connection refused")

// Upstream is an in-memory store backend. A nil Snapshot behaves like an
// unreachable backend.
type Upstream struct {
	mu       sync.Mutex
	Snapshot *portfolio.Snapshot
	Saved    []portfolio.Snapshot
	Contacts []upstream.Contact
}

// New returns an upstream holding s.
func New(s portfolio.Snapshot) *Upstream {
	return &Upstream{Snapshot: &s}
}

// Down returns an unreachable upstream.
func Down() *Upstream {
	return &Upstream{}
}

func (u *Upstream) URL() string { return "http://store.test" }

func (u *Upstream) Portfolio(context.Context) (portfolio.Snapshot, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.Snapshot == nil {
		return portfolio.Snapshot{}, ErrDown
	}

	return u.Snapshot.Clone(), nil
}

func (u *Upstream) Projects(ctx context.Context) ([]portfolio.Project, error) {
	s, err := u.Portfolio(ctx)
	if err != nil {
		return nil, err
	}

	return s.Projects, nil
}

func (u *Upstream) SavePortfolio(_ context.Context, s portfolio.Snapshot) (json.RawMessage, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.Snapshot == nil {
		return nil, ErrDown
	}

	u.Saved = append(u.Saved, s)
	*u.Snapshot = s.Clone()

	return json.RawMessage(`{"message":"Portfolio updated successfully"}`), nil
}

func (u *Upstream) SubmitContact(_ context.Context, msg upstream.Contact) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.Snapshot == nil {
		return "", ErrDown
	}

	u.Contacts = append(u.Contacts, msg)

	return "Thank you for your message! I'll get back to you soon.", nil
}

func (u *Upstream) Health(context.Context) (upstream.Health, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.Snapshot == nil {
		return upstream.Health{}, ErrDown
	}

	return upstream.Health{Status: "healthy", DataExists: true}, nil
}
