package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tavolo/search-api-go/indexer"
)

// reindex godoc
// @Summary            Rebuild both search indices from the catalog source
// @Tags               Index
// @Produce            json
// @Success            200 {object} indexer.ReindexReport
// @Failure            409 {object} handler.ErrorResponse
// @Router             /reindex [POST]
func Reindex(pipeline *indexer.Pipeline) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		report, err := pipeline.ReindexAll(ctx.Context())
		if err != nil {
			return writeError(ctx, err)
		}

		return ctx.Status(fiber.StatusOK).JSON(report)
	}
}
