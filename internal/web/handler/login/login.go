package login

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/auth"
	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/web/handler"
	"github.com/devportfolio/devportfolio/internal/web/session"
)

const (
	// Path is the path to the login endpoint.
	Path = handler.AdminPath + "/login"
)

// Form is the login body. Code is only needed for accounts with TOTP.
type Form struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Code     string `json:"code"`
}

// Service is the login handler service.
type Service struct {
	cfg       *config.Config
	localAuth *auth.LocalProvider
	validate  *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.cfg = cfg
	s.localAuth = auth.NewLocalProvider(db)
	s.validate = validator.New(validator.WithRequiredStructEnabled())

	app.Post(Path, s.Post)

	return nil
}

// Post checks the credentials and opens a session.
func (s *Service) Post(c *fiber.Ctx) error {
	handler.NoStore(c)

	var form Form

	if err := json.Unmarshal(c.Body(), &form); err != nil {
		return loginError(c, fiber.StatusBadRequest, ErrInvalidFormData)
	}

	if err := s.validate.Struct(form); err != nil {
		return loginError(c, fiber.StatusBadRequest, ErrInvalidFormData)
	}

	user, err := s.localAuth.Authenticate(form.Username, form.Password, form.Code)

	switch {
	case errors.Is(err, auth.ErrInvalidCode):
		log.Warn().Str("username", form.Username).Msg("login with invalid one-time code")
		return loginError(c, fiber.StatusUnauthorized, ErrInvalidCode)
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrUserAccountDisabled):
		log.Warn().Err(err).Str("username", form.Username).Msg("login failed")
		return loginError(c, fiber.StatusUnauthorized, ErrInvalidCredentials)
	case err != nil:
		log.Error().Err(err).Msg("failed to authenticate user")
		return loginError(c, fiber.StatusInternalServerError, ErrInternalServerError)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return loginError(c, fiber.StatusInternalServerError, ErrInternalServerError)
	}

	userSession := &session.Data{
		User: *user,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return loginError(c, fiber.StatusInternalServerError, ErrInternalServerError)
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Domain:   s.cfg.Webserver.Domain,
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	log.Info().Str("username", user.Username).Msg("admin logged in")

	return c.JSON(fiber.Map{"success": true, "user": user})
}

func loginError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
}
