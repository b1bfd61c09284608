package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/rs/zerolog"

	"github.com/artem13815/resumematch/api/http/presenter"
)

// AppConfig tunes the Fiber instance.
type AppConfig struct {
	BodyLimit int
	Swagger   bool
}

// NewApp builds a Fiber app with middleware and all routes registered.
func NewApp(cfg AppConfig, h Handlers, authMW fiber.Handler, log *zerolog.Logger) *fiber.App {
	fc := fiber.Config{
		AppName: "resumematch",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return presenter.FromError(c, err)
		},
	}
	if cfg.BodyLimit > 0 {
		fc.BodyLimit = cfg.BodyLimit
	}
	app := fiber.New(fc)
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log))

	Register(app, h, authMW)
	if cfg.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}
	return app
}
