// Package webapi assembles the Fiber application: middleware plus the
// ledger routes.
package webapi

import (
	"errors"

	"github.com/alpenbank/ledger/infra/initializer"
	"github.com/alpenbank/ledger/webapi/common"
	ledgerapi "github.com/alpenbank/ledger/webapi/ledger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp builds the Fiber app with rate limiting, panic recovery and the
// ledger routes registered.
func SetupApp(deps *initializer.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "alpenbank ledger",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ErrorResponseJSON(c, fe.Code, fe.Message, nil)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	app.Use(recover.New())
	// Keyed on the connection address; forwarded headers are client
	// controlled and would let any direct caller pick its own bucket.
	app.Use(limiter.New(limiter.Config{
		Max:        deps.Config.RateLimit.MaxRequests,
		Expiration: deps.Config.RateLimit.Window,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "ok", nil)
	})

	ledgerapi.Routes(app, deps.Ledger)
	return app
}
