// Package fiber implements a zerolog access-log middleware for fiber apps.
package fiber

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/devportfolio/devportfolio/internal/logger"
)

// cacheControlError is set on responses the error handler could not write.
const cacheControlError = "max-age=0"

// Config of the middleware.
type Config struct {
	// Config of the logger.
	Config logger.Log

	// CheckAliveURI for disabling logging of check alive http calls.
	CheckAliveURI string
}

// New creates a fiber access logging middleware. Errors returned by the
// handler chain are answered by the app's error handler here, so the logged
// status is the one the client gets.
func New(cfg Config) fiber.Handler {
	accessLogger := logger.NewAccessLogger(&cfg.Config)
	skipCheckAlive := cfg.Config.DisableCheckAlive && cfg.CheckAliveURI != ""

	return func(ctx *fiber.Ctx) error {
		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if err := ctx.App().ErrorHandler(ctx, chainErr); err != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
				ctx.Set(fiber.HeaderCacheControl, cacheControlError)
			}
		}

		elapsed := time.Since(start).Seconds()
		ctx.Set("X-Performance", strconv.FormatFloat(elapsed, 'f', 6, 64))

		if skipCheckAlive && string(ctx.Request().RequestURI()) == cfg.CheckAliveURI {
			return nil
		}

		// fasthttp normalizes multi slash paths, the log keeps the path as requested.
		uri := ctx.Path()
		if q := ctx.Request().URI().QueryString(); len(q) > 0 {
			uri += "?" + string(q)
		}

		event := accessLogger.Log().Str("IP", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Float64("X-Performance", elapsed).
			Str("URI", uri).
			Str("method", ctx.Method()).
			Bytes("host", ctx.Request().Host()).
			Int("bytes", len(ctx.Response().Body())).
			Str(fiber.HeaderXForwardedFor, ctx.Get(fiber.HeaderXForwardedFor)).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderOrigin, ctx.Get(fiber.HeaderOrigin)).
			Str(fiber.HeaderReferer, ctx.Get(fiber.HeaderReferer))

		if rid := ctx.GetRespHeader(fiber.HeaderXRequestID); rid != "" {
			event.Str("request_id", rid)
		}

		if chainErr != nil {
			event.Err(chainErr)
		}

		event.Send()

		return nil
	}
}
