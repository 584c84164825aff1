package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const ApiKeyHeaderName = "X-Api-Key"

// New guards mutating routes and pprof with a shared api key. Read-only
// search traffic stays open.
func New(apiKey string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		apiKeyNeeded := false

		if strings.Contains(ctx.Path(), "pprof") ||
			ctx.Method() == fiber.MethodPost ||
			ctx.Method() == fiber.MethodDelete {
			apiKeyNeeded = true
		}

		if apiKeyNeeded && ctx.GetReqHeaders()[ApiKeyHeaderName] != apiKey {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		return ctx.Next()
	}
}
