// Package store is the store backend: the durable home of the portfolio
// snapshot and of contact messages, served as a JSON API over chi.
package store

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/auth"
	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/db/controller/snapshot"
	"github.com/devportfolio/devportfolio/internal/db/models"
	chilogger "github.com/devportfolio/devportfolio/internal/logger/adapter/chi"
	"github.com/devportfolio/devportfolio/internal/portfolio"
)

const (
	maxBodySize       = 10 << 20
	readHeaderTimeout = 10 * time.Second

	checkAlivePath = "/checkalive"
)

// Models are the tables of the store backend.
func Models() []interface{} {
	return []interface{}{&models.Setting{}, &models.ContactMessage{}}
}

// Server is the store backend.
type Server struct {
	cfg      *config.Config
	db       *gorm.DB
	validate *validator.Validate
	now      func() time.Time
	server   *http.Server
}

// New creates the store backend on a migrated database.
func New(cfg *config.Config, db *gorm.DB) (*Server, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return &Server{
		cfg:      cfg,
		db:       db,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}, nil
}

// Seed stores the sample snapshot when none exists yet.
func (s *Server) Seed() error {
	if snapshot.Exists(s.db) {
		return nil
	}

	log.Info().Msg("initializing with default portfolio data")

	r := snapshot.Record{Snapshot: portfolio.Sample()}

	return r.Save(s.db, s.now())
}

// Routes returns the router of the store backend.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(chilogger.New(chilogger.Config{Config: s.cfg.Log, CheckAliveURI: checkAlivePath}))
	r.Use(middleware.Recoverer)

	if len(s.cfg.Store.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Store.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}))
	}

	requireToken := auth.RequireToken(s.cfg.Store.JWTSecret)

	r.Get("/", s.root)
	r.Get("/health", s.health)
	r.Get(checkAlivePath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/portfolio", s.getPortfolio)
		r.With(requireToken).Post("/portfolio", s.updatePortfolio)

		r.Get("/projects", s.listProjects)
		r.Get("/projects/{id}", s.getProject)
		r.Get("/skills", s.skills)
		r.Get("/personal-info", s.personalInfo)
		r.Get("/stats", s.stats)

		r.Post("/contact", s.createContact)
		r.With(requireToken).Get("/contact-messages", s.listContacts)
	})

	return r
}

// Start serves the store backend on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Info().Str("addr", addr).Msg("store backend listening")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// WaitShutdown waits for a signal and stops the server.
func (s *Server) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown stops the server, waiting up to Webserver.ShutDownTime seconds
// for running requests.
func (s *Server) Shutdown() {
	if s.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(s.cfg.Webserver.ShutDownTime)*time.Second)
	defer cancel()

	log.Info().Msg("stopping store backend ...")

	if err := s.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("store backend was stopped ... good bye...")
}
