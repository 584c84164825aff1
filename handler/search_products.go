package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/tavolo/search-api-go/cache"
	"github.com/tavolo/search-api-go/catalog"
	"github.com/tavolo/search-api-go/config"
	"github.com/tavolo/search-api-go/search"
)

var productSearchParams = map[string]bool{
	"q": true, "restaurantId": true, "category": true, "available": true,
	"minPrice": true, "maxPrice": true, "page": true, "size": true,
}

// searchProducts godoc
// @Summary            Search menu items with free text and filters
// @Tags               Search
// @Produce            json
// @Success            200 {object} catalog.ProductSearchResponse
// @Param              q query string false "Free text query"
// @Param              restaurantId query string false "Restaurant Id"
// @Param              category query string false "Category"
// @Param              available query boolean false "Availability"
// @Param              minPrice query number false "Minimum price"
// @Param              maxPrice query number false "Maximum price"
// @Param              page query integer false "Page"
// @Param              size query integer false "Page size"
// @Router             /search/products [GET]
func SearchProducts(index *search.ProductIndex, cacheRepo *cache.RedisRepository, cfg *config.Config) fiber.Handler {
	ttl := time.Duration(cfg.CacheTTL) * time.Second

	return func(ctx *fiber.Ctx) error {
		if err := rejectUnknownParams(ctx, productSearchParams); err != nil {
			return writeError(ctx, err)
		}

		filters := catalog.ProductFilters{
			VenueID:  ctx.Query("restaurantId"),
			Category: ctx.Query("category"),
		}

		if raw := ctx.Query("available"); raw != "" {
			available, err := strconv.ParseBool(raw)
			if err != nil {
				return writeError(ctx, &search.ValidationError{Field: "available", Reason: "must be a boolean"})
			}
			filters.Available = &available
		}

		if raw := ctx.Query("minPrice"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil || price < 0 {
				return writeError(ctx, &search.ValidationError{Field: "minPrice", Reason: "must be a non-negative number"})
			}
			filters.MinPrice = &price
		}

		if raw := ctx.Query("maxPrice"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil || price < 0 {
				return writeError(ctx, &search.ValidationError{Field: "maxPrice", Reason: "must be a non-negative number"})
			}
			filters.MaxPrice = &price
		}

		if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
			return writeError(ctx, &search.ValidationError{Field: "minPrice", Reason: "must not exceed maxPrice"})
		}

		query := strings.TrimSpace(ctx.Query("q"))
		page := catalog.NormalizePage(
			ctx.QueryInt("page", 1),
			ctx.QueryInt("size", cfg.DefaultPageSize),
			cfg.DefaultPageSize,
			cfg.MaxPageSize,
		)

		key := cache.ResponseKey(cache.KindProducts, query, filters.Signature(), page)
		if cached := cacheRepo.GetBytes(key); len(cached) > 0 {
			ctx.Set("x-cached-response", "true")
			ctx.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
			return ctx.Send(cached)
		}

		hits, total, err := index.Search(ctx.Context(), query, filters, page)
		if err != nil {
			return writeError(ctx, err)
		}

		resp := catalog.ProductSearchResponse{
			Query:      query,
			Filters:    filters,
			Results:    hits,
			Pagination: catalog.NewPagination(page, total),
		}

		body, err := jsoniter.Marshal(resp)
		if err != nil {
			return err
		}

		cacheRepo.SetKey(key, body, ttl)
		ctx.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
		return ctx.Send(body)
	}
}
