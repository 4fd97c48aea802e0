package handler

import (
	"context"
	"encoding/json"

	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/upstream"
)

// Upstream is the part of the store backend client used by the handlers.
type Upstream interface {
	URL() string
	Portfolio(ctx context.Context) (portfolio.Snapshot, error)
	Projects(ctx context.Context) ([]portfolio.Project, error)
	SavePortfolio(ctx context.Context, s portfolio.Snapshot) (json.RawMessage, error)
	SubmitContact(ctx context.Context, msg upstream.Contact) (string, error)
	Health(ctx context.Context) (upstream.Health, error)
}

var _ Upstream = (*upstream.Client)(nil)
