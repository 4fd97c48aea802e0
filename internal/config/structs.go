package config

import (
	"time"

	"github.com/devportfolio/devportfolio/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Upstream  Upstream
	Store     Store
	Admin     Admin
	Client    Client
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool     // disable recover middleware
	Domain         string   // domain name for the webserver
	Port           int      // listening port for the webserver
	ShutDownTime   int      // wait time for shutdown
	URL            string   // base url for the webserver
	AllowedOrigins []string // CORS origins, empty disables CORS
	Session        Session  // session settings
}

// Upstream is the store backend the web service proxies to.
type Upstream struct {
	URL       string
	Timeout   time.Duration
	JWTSecret string // shared secret for signing write requests, empty disables signing
}

// Store implements the store backend settings.
type Store struct {
	Port           int
	AllowedOrigins []string
	JWTSecret      string // must match Upstream.JWTSecret of the web service
	DB             DB
}

// Admin holds the admin account and access policy of the web service.
type Admin struct {
	RequireAuth bool   // protect /api/admin/save with a session
	Username    string // seeded when no user exists
	Password    string
	TOTPSecret  string // optional, enables a second factor for the seeded user
}

// Client implements the admin client settings.
type Client struct {
	URL      string
	Timeout  time.Duration
	Username string
	Password string
	Cache    DB // local cache storage
}
