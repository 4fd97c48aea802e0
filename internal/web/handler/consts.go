package handler

import "github.com/gofiber/fiber/v2"

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPath prefixes every JSON endpoint.
	APIPath = "/api"

	// AdminPath prefixes the admin endpoints.
	AdminPath = APIPath + "/admin"

	// ErrNilACDFatalLogMsg is used if app, cfg or upstream var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or upstream is nil"
)

// NoStore marks a response as not cacheable.
func NoStore(c *fiber.Ctx) {
	c.Set(fiber.HeaderCacheControl, "no-store")
}
