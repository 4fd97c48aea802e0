// Package cv serves the portfolio as a downloadable plain text CV.
package cv

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/config"
	cvgen "github.com/devportfolio/devportfolio/internal/cv"
	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/upstream"
	"github.com/devportfolio/devportfolio/internal/web/handler"
)

// Path is the CV endpoint.
const Path = handler.APIPath + "/cv"

// Service is the cv handler service.
type Service struct {
	cfg *config.Config
	up  handler.Upstream
	now func() time.Time
}

// Handler is the cv handler.
var Handler = Service{}

// Init initializes the cv handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, up handler.Upstream) error {
	if app == nil || cfg == nil || up == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.up = up
	s.now = time.Now

	app.Get(Path, s.Get)

	return nil
}

// Get renders the CV of the stored snapshot. Without the store backend the
// default personal info is used with no projects or skills.
func (s *Service) Get(c *fiber.Ctx) error {
	snap, err := s.up.Portfolio(c.UserContext())
	if err != nil {
		log.Warn().Err(err).Msg("backend not available, generating CV from fallback data")
		upstream.RecordFallback(Path)

		snap = portfolio.Default()
	}

	content, err := cvgen.Generate(snap, s.now(), s.cfg.Webserver.URL)
	if err != nil {
		log.Error().Err(err).Msg("error generating CV")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate CV"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, cvgen.Filename(snap.PersonalInfo.Name)))

	return c.SendString(content)
}
