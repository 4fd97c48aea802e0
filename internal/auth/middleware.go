package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/db/models"
	"github.com/devportfolio/devportfolio/internal/web/session"
)

// LocalsUser is the fiber.Locals key holding the logged in *models.User.
const LocalsUser = "CurrentUser"

// RequireAdmin creates Fiber middleware that requires a logged in admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get session cookie
		sessionID := c.Cookies(session.CookieName)
		if sessionID == "" {
			log.Warn().Str("uri", c.OriginalURL()).Msg("No session cookie found")
			return unauthorizedJSON(c)
		}

		// Read session data
		sessionData := new(session.Data)
		if err := sessionData.Read(sessionID); err != nil {
			log.Warn().Err(err).Msg("Failed to read session")
			return unauthorizedJSON(c)
		}

		// Check if the session is valid
		if sessionData.User.ID == 0 || !sessionData.User.Active {
			log.Warn().Msg("Invalid session data")
			return unauthorizedJSON(c)
		}

		c.Locals(LocalsUser, &sessionData.User)

		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireAdmin.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(LocalsUser).(*models.User)
	return user, ok
}

func unauthorizedJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}
