// Package save accepts a full snapshot from the admin client and forwards it
// to the store backend.
package save

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/auth"
	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/upstream"
	"github.com/devportfolio/devportfolio/internal/web/handler"
)

// Path is the save endpoint.
const Path = handler.AdminPath + "/save"

// Storage values of a save response.
const (
	StorageBackend = "backend"
	StorageLocal   = "local"
)

// Response is the body of a save response.
type Response struct {
	Success         bool            `json:"success"`
	Message         string          `json:"message"`
	Storage         string          `json:"storage,omitempty"`
	BackendResponse json.RawMessage `json:"backend_response,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// Service is the save handler service.
type Service struct {
	cfg *config.Config
	up  handler.Upstream
}

// Handler is the save handler.
var Handler = Service{}

// Init initializes the save handler. The route requires a session when
// Admin.RequireAuth is set.
func (s *Service) Init(app *fiber.App, cfg *config.Config, up handler.Upstream) error {
	if app == nil || cfg == nil || up == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.up = up

	if cfg.Admin.RequireAuth {
		app.Post(Path, auth.RequireAdmin(), s.Post)
	} else {
		app.Post(Path, s.Post)
	}

	return nil
}

// Post stores the snapshot. A store backend failure still answers 200 with
// storage "local".
func (s *Service) Post(c *fiber.Ctx) error {
	handler.NoStore(c)

	snap, err := portfolio.Decode(c.Body())
	if err != nil {
		log.Error().Err(err).Msg("error processing save request")

		return c.Status(fiber.StatusInternalServerError).JSON(Response{
			Message: "Failed to process save request",
			Error:   err.Error(),
		})
	}

	backendResponse, err := s.up.SavePortfolio(c.UserContext(), snap)
	if err != nil {
		upstream.RecordFallback(Path)
		log.Warn().Err(err).
			Str("name", snap.PersonalInfo.Name).
			Int("projects", len(snap.Projects)).
			Int("skills", len(snap.Skills)).
			Time("timestamp", time.Now()).
			Msg("backend not available, saving locally only")

		return c.JSON(Response{
			Success: true,
			Message: "Data saved locally (backend not available)",
			Storage: StorageLocal,
			Error:   "Backend connection failed",
		})
	}

	log.Info().RawJSON("backend_response", backendResponse).Msg("portfolio data saved to backend")

	return c.JSON(Response{
		Success:         true,
		Message:         "Portfolio data saved permanently to backend",
		Storage:         StorageBackend,
		BackendResponse: backendResponse,
	})
}
