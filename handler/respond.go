package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tavolo/search-api-go/search"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// writeError maps the search error taxonomy onto HTTP statuses. Callers can
// tell "no matches" (200 with empty results) from "search is down" (503).
func writeError(ctx *fiber.Ctx, err error) error {
	var validationErr *search.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: validationErr.Error()})
	case errors.Is(err, search.ErrReindexInProgress):
		return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: err.Error()})
	case errors.Is(err, search.ErrTimeout):
		return ctx.Status(fiber.StatusGatewayTimeout).JSON(ErrorResponse{Message: err.Error()})
	case errors.Is(err, search.ErrUnavailable):
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Message: err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: err.Error()})
	}
}

// rejectUnknownParams fails requests carrying query parameters outside the
// endpoint's closed set instead of silently ignoring them.
func rejectUnknownParams(ctx *fiber.Ctx, allowed map[string]bool) error {
	var unknown string
	ctx.Context().QueryArgs().VisitAll(func(key, _ []byte) {
		if !allowed[string(key)] && unknown == "" {
			unknown = string(key)
		}
	})

	if unknown != "" {
		return &search.ValidationError{Field: unknown, Reason: "unknown query parameter"}
	}
	return nil
}
