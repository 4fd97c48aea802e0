// Package web is the public web service: the JSON API read by the site and
// written by the admin client, proxied to the store backend.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/config"
	fiberlogger "github.com/devportfolio/devportfolio/internal/logger/adapter/fiber"
	"github.com/devportfolio/devportfolio/internal/web/handler"
	"github.com/devportfolio/devportfolio/internal/web/handler/contact"
	"github.com/devportfolio/devportfolio/internal/web/handler/cv"
	"github.com/devportfolio/devportfolio/internal/web/handler/health"
	"github.com/devportfolio/devportfolio/internal/web/handler/login"
	"github.com/devportfolio/devportfolio/internal/web/handler/logout"
	"github.com/devportfolio/devportfolio/internal/web/handler/portfolio"
	"github.com/devportfolio/devportfolio/internal/web/handler/save"
)

const (
	// CheckAlivePath answers 200 while the service takes traffic.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a signal and shuts the web service down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown stops the web service. Unless fast shutdown is set, /checkalive
// fails for Webserver.ShutDownTime seconds first.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// SetFastShutDown skips the graceful checkalive phase.
func (s *Service) SetFastShutDown(fast bool) {
	s.fastShutDown = fast
}

// New creates a new web service with the given configuration. db holds the
// admin users, up is the store backend.
func New(cfg *config.Config, db *gorm.DB, up handler.Upstream) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if up == nil {
		panic("upstream cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	service := &Service{
		cfg: cfg,
		App: app,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	if len(cfg.Webserver.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.Webserver.AllowedOrigins, ","),
			AllowCredentials: true,
		}))
	}

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes)
	mustInit(portfolio.Handler.Init(app, up))
	mustInit(save.Handler.Init(app, cfg, up))
	mustInit(contact.Handler.Init(app, up))
	mustInit(cv.Handler.Init(app, cfg, up))
	mustInit(health.Handler.Init(app, up))
	mustInit(login.Handler.Init(app, cfg, db))
	mustInit(logout.Handler.Init(app, cfg))

	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": cfg.Title + " web service is running"})
	})

	return service
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

func mustInit(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg(handler.ErrNilACDFatalLogMsg)
	}
}
