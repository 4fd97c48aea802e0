// Package daemon wires the long-running services: the public web service and
// the store backend.
package daemon

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/db"
	"github.com/devportfolio/devportfolio/internal/db/kv"
	"github.com/devportfolio/devportfolio/internal/db/models"
	"github.com/devportfolio/devportfolio/internal/store"
	"github.com/devportfolio/devportfolio/internal/upstream"
	"github.com/devportfolio/devportfolio/internal/web"
	"github.com/devportfolio/devportfolio/internal/web/session"
)

// Daemon represents the web service daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start runs the web service until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go func() {
		if err := d.webService.Start(addr); err != nil {
			log.Error().Err(err).Msg("web service stopped")
		}
	}()

	log.Info().Str("addr", addr).Str("upstream", d.cfg.Upstream.URL).Msg("web service started")

	d.webService.WaitShutdown()

	return nil
}

// New creates the web service daemon: it migrates the user table, seeds the
// admin account, opens the session storage and connects the store backend.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	gdb, err := db.Open(&cfg.DB, cfg.DevMode, &models.User{})
	if err != nil {
		return nil, err
	}

	if err = seed(cfg, gdb); err != nil {
		return nil, errors.Wrap(err, "failed to seed admin user")
	}

	// Initialize fiber session store
	sessionStorage, err := kv.Open(&cfg.DB, cfg.DevMode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open session storage")
	}

	session.Init(sessionStorage, cfg.Webserver.Session.ExpiryTime)

	up, err := upstream.Open(cfg.Upstream)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, gdb, up),
	}, nil
}

// Backend represents the store backend daemon.
type Backend struct {
	cfg    *config.Config
	server *store.Server
}

// NewBackend creates the store backend daemon and seeds the sample
// portfolio into an empty database.
func NewBackend(cfg *config.Config) (*Backend, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	gdb, err := db.Open(&cfg.Store.DB, cfg.DevMode, store.Models()...)
	if err != nil {
		return nil, err
	}

	server, err := store.New(cfg, gdb)
	if err != nil {
		return nil, err
	}

	if err = server.Seed(); err != nil {
		return nil, errors.Wrap(err, "failed to seed portfolio")
	}

	return &Backend{cfg: cfg, server: server}, nil
}

// Start runs the store backend until SIGINT or SIGTERM.
func (b *Backend) Start() error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- b.server.Start(fmt.Sprintf(":%d", b.cfg.Store.Port))
	}()

	stopped := make(chan struct{})

	go func() {
		b.server.WaitShutdown()
		close(stopped)
	}()

	select {
	case err := <-errCh:
		return err
	case <-stopped:
		return <-errCh
	}
}

// SetFastShutDown skips the graceful checkalive phase of the web service.
func (d *Daemon) SetFastShutDown(fast bool) {
	d.webService.SetFastShutDown(fast)
}
