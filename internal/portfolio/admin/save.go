package admin

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/portfolio/remote"
)

// Kind classifies a save.
type Kind string

// Save outcomes.
const (
	// Saved means the store backend persisted the snapshot.
	Saved Kind = "saved"
	// Partial means only the local cache (and maybe the web service) holds it.
	Partial Kind = "partial"
	// Failed means the push errored. The local cache was still written.
	Failed Kind = "failed"
)

const (
	msgSaved      = "Portfolio data saved permanently to backend."
	msgPartial    = "Data saved locally but backend sync failed."
	msgSaveFailed = "Failed to save data. Please try again."
)

// Outcome is the result of SaveAll.
type Outcome struct {
	Kind   Kind
	Notice Notice
	Result remote.PushResult // zero when Kind is Failed
	Err    error             // the push error when Kind is Failed
}

// SaveAll writes the edited snapshot to the local cache, publishes it, then
// pushes it to the web service. A cache failure is logged and never changes
// the outcome.
func (e *Editor) SaveAll(ctx context.Context) Outcome {
	s := e.Snapshot()

	if err := e.cache.WriteSnapshot(s); err != nil {
		log.Warn().Err(err).Msg("failed to write local cache")
	}

	if e.publisher != nil {
		e.publisher.Publish(s)
	}

	res, err := e.remote.PushSnapshot(ctx, s)
	if err != nil {
		log.Error().Err(err).Msg("failed to push snapshot")

		return Outcome{
			Kind:   Failed,
			Notice: failure(msgSaveFailed),
			Err:    err,
		}
	}

	if res.Success && res.Status == remote.StatusDurable {
		return Outcome{
			Kind:   Saved,
			Notice: Notice{Title: titleSuccess, Description: msgSaved},
			Result: res,
		}
	}

	description := res.Message
	if description == "" {
		description = msgPartial
	}

	log.Warn().Str("message", res.Message).Msg("snapshot not persisted by the store backend")

	return Outcome{
		Kind:   Partial,
		Notice: Notice{Title: titlePartial, Description: description, Destructive: true},
		Result: res,
	}
}
