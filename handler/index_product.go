package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tavolo/search-api-go/catalog"
	"github.com/tavolo/search-api-go/indexer"
	"github.com/tavolo/search-api-go/pkg/validator"
	"github.com/tavolo/search-api-go/search"
)

// indexProduct godoc
// @Summary            Upsert a menu item document into the search index
// @Tags               Index
// @Accept             json
// @Produce            json
// @Success            201
// @Param              body body catalog.Product true "Full current entity state"
// @Router             /index/product [POST]
func IndexProduct(pipeline *indexer.Pipeline) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var product catalog.Product
		if err := ctx.BodyParser(&product); err != nil {
			return writeError(ctx, &search.ValidationError{Field: "body", Reason: err.Error()})
		}

		if err := validator.Validate(product); err != nil {
			return writeError(ctx, &search.ValidationError{Field: "body", Reason: err.Error()})
		}

		if err := pipeline.UpsertProduct(ctx.Context(), product); err != nil {
			return writeError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusCreated)
	}
}

// deleteProductIndex godoc
// @Summary            Remove a menu item document from the search index
// @Tags               Index
// @Produce            json
// @Success            200
// @Param              id path string true "Product Id"
// @Router             /index/product/{id} [DELETE]
func DeleteProductIndex(pipeline *indexer.Pipeline) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Params("id")
		if id == "" {
			return writeError(ctx, &search.ValidationError{Field: "id", Reason: "is required"})
		}

		// Idempotent: deleting an id that was never indexed still succeeds.
		if err := pipeline.DeleteProduct(ctx.Context(), id); err != nil {
			return writeError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusOK)
	}
}
