package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tavolo/search-api-go/search"
)

// healthCheck godoc
// @Summary            Show the status of the server and its search backend.
// @Tags               Healthcheck
// @Accept             */*
// @Produce            json
// @Success            200
// @Failure            503 {object} handler.ErrorResponse
// @Router             /health [GET]
func HealthCheck(index *search.ProductIndex) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := index.Ping(ctx.Context()); err != nil {
			return writeError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusOK)
	}
}
