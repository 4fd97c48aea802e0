// Package portfolio serves the public portfolio read endpoints. When the store
// backend can not be reached the sample portfolio is served instead.
package portfolio

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/upstream"
	"github.com/devportfolio/devportfolio/internal/web/handler"
)

const (
	// Path serves the whole snapshot.
	Path = handler.APIPath + "/portfolio"
	// ProjectsPath serves the project list.
	ProjectsPath = handler.APIPath + "/projects"
)

// Service is the portfolio handler service.
type Service struct {
	up handler.Upstream
}

// Handler is the portfolio handler.
var Handler = Service{}

// Init initializes the portfolio handler.
func (s *Service) Init(app *fiber.App, up handler.Upstream) error {
	if app == nil || up == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.up = up

	app.Get(Path, s.Get)
	app.Get(ProjectsPath, s.Projects)

	return nil
}

// Get returns the stored snapshot, or the sample snapshot.
func (s *Service) Get(c *fiber.Ctx) error {
	handler.NoStore(c)

	snap, err := s.up.Portfolio(c.UserContext())
	if err != nil {
		log.Warn().Err(err).Msg("backend not available, using fallback data")
		upstream.RecordFallback(Path)

		snap = portfolio.Sample()
	}

	return c.JSON(snap)
}

// Projects returns the stored project list, or the sample projects.
func (s *Service) Projects(c *fiber.Ctx) error {
	handler.NoStore(c)

	projects, err := s.up.Projects(c.UserContext())
	if err != nil {
		log.Warn().Err(err).Msg("backend not available, using fallback projects")
		upstream.RecordFallback(ProjectsPath)

		projects = portfolio.Sample().Projects
	}

	return c.JSON(projects)
}
