package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tavolo/search-api-go/catalog"
	"github.com/tavolo/search-api-go/indexer"
	"github.com/tavolo/search-api-go/pkg/validator"
	"github.com/tavolo/search-api-go/search"
)

// indexRestaurant godoc
// @Summary            Upsert a restaurant document into the search index
// @Tags               Index
// @Accept             json
// @Produce            json
// @Success            201
// @Param              body body catalog.Venue true "Full current entity state"
// @Router             /index/restaurant [POST]
func IndexRestaurant(pipeline *indexer.Pipeline) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var venue catalog.Venue
		if err := ctx.BodyParser(&venue); err != nil {
			return writeError(ctx, &search.ValidationError{Field: "body", Reason: err.Error()})
		}

		if err := validator.Validate(venue); err != nil {
			return writeError(ctx, &search.ValidationError{Field: "body", Reason: err.Error()})
		}

		if err := pipeline.UpsertVenue(ctx.Context(), venue); err != nil {
			return writeError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusCreated)
	}
}

// deleteRestaurantIndex godoc
// @Summary            Remove a restaurant document from the search index
// @Tags               Index
// @Produce            json
// @Success            200
// @Param              id path string true "Restaurant Id"
// @Router             /index/restaurant/{id} [DELETE]
func DeleteRestaurantIndex(pipeline *indexer.Pipeline) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Params("id")
		if id == "" {
			return writeError(ctx, &search.ValidationError{Field: "id", Reason: "is required"})
		}

		if err := pipeline.DeleteVenue(ctx.Context(), id); err != nil {
			return writeError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusOK)
	}
}
