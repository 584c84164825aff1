package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tavolo/search-api-go/cache"
	"github.com/tavolo/search-api-go/search"
)

type cacheClearRequest struct {
	Pattern string `json:"pattern"`
}

// clearCache godoc
// @Summary            Drop cached search responses, optionally by key pattern
// @Tags               Cache
// @Accept             json
// @Produce            json
// @Success            200
// @Param              body body handler.cacheClearRequest false "Key pattern, all entries when omitted"
// @Router             /cache/clear [POST]
func ClearCache(cacheRepo *cache.RedisRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var req cacheClearRequest
		if len(ctx.Body()) > 0 {
			if err := ctx.BodyParser(&req); err != nil {
				return writeError(ctx, &search.ValidationError{Field: "body", Reason: err.Error()})
			}
		}

		if req.Pattern != "" {
			cacheRepo.DeletePattern(req.Pattern)
			return ctx.SendStatus(fiber.StatusOK)
		}

		if err := cacheRepo.Prune(); err != nil {
			return writeError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusOK)
	}
}
