// Package health reports the web service status together with the store
// backend connectivity.
package health

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/devportfolio/devportfolio/internal/web/handler"
)

// Path is the health endpoint.
const Path = handler.APIPath + "/health"

// Backend connectivity states.
const (
	BackendConnected    = "connected"
	BackendDisconnected = "disconnected"
)

// Backend is the store backend part of a health answer.
type Backend struct {
	Status     string `json:"status"`
	URL        string `json:"url"`
	DataExists bool   `json:"data_exists"`
}

// Response is the health answer.
type Response struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Backend   Backend `json:"backend"`
}

// Service is the health handler service.
type Service struct {
	up handler.Upstream
}

// Handler is the health handler.
var Handler = Service{}

// Init initializes the health handler.
func (s *Service) Init(app *fiber.App, up handler.Upstream) error {
	if app == nil || up == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.up = up

	app.Get(Path, s.Get)

	return nil
}

// Get answers 200 as long as the web service runs. A store backend outage
// only shows in the backend block.
func (s *Service) Get(c *fiber.Ctx) error {
	handler.NoStore(c)

	resp := Response{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Backend:   Backend{Status: BackendDisconnected, URL: s.up.URL()},
	}

	if h, err := s.up.Health(c.UserContext()); err == nil {
		resp.Backend.Status = BackendConnected
		resp.Backend.DataExists = h.DataExists
	}

	return c.JSON(resp)
}
