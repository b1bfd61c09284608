package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/artem13815/resumematch/pkg/logger"
)

// RequestLogger logs one line per request and puts a request-scoped logger
// into the user context.
func RequestLogger(base *zerolog.Logger) fiber.Handler {
	base = logger.OrNop(base)
	return func(c *fiber.Ctx) error {
		start := time.Now()
		l := base.With().Str("request_id", requestID(c)).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext(), l))

		err := c.Next()
		if err != nil {
			// let the app error handler pick the status before logging
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http request")
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}
