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

var restaurantSearchParams = map[string]bool{
	"q": true, "cuisine": true, "priceRange": true, "minRating": true,
	"page": true, "size": true,
}

// searchRestaurants godoc
// @Summary            Search restaurants with free text and filters
// @Tags               Search
// @Produce            json
// @Success            200 {object} catalog.VenueSearchResponse
// @Param              q query string false "Free text query"
// @Param              cuisine query string false "Cuisine"
// @Param              priceRange query integer false "Price range (1-3)"
// @Param              minRating query number false "Minimum rating (0-5)"
// @Param              page query integer false "Page"
// @Param              size query integer false "Page size"
// @Router             /search/restaurants [GET]
func SearchRestaurants(index *search.VenueIndex, cacheRepo *cache.RedisRepository, cfg *config.Config) fiber.Handler {
	ttl := time.Duration(cfg.CacheTTL) * time.Second

	return func(ctx *fiber.Ctx) error {
		if err := rejectUnknownParams(ctx, restaurantSearchParams); err != nil {
			return writeError(ctx, err)
		}

		filters := catalog.VenueFilters{
			Cuisine: ctx.Query("cuisine"),
		}

		if raw := ctx.Query("priceRange"); raw != "" {
			priceRange, err := strconv.Atoi(raw)
			if err != nil || priceRange < 1 || priceRange > 3 {
				return writeError(ctx, &search.ValidationError{Field: "priceRange", Reason: "must be 1, 2 or 3"})
			}
			filters.PriceRange = &priceRange
		}

		if raw := ctx.Query("minRating"); raw != "" {
			rating, err := strconv.ParseFloat(raw, 64)
			if err != nil || rating < 0 || rating > 5 {
				return writeError(ctx, &search.ValidationError{Field: "minRating", Reason: "must be between 0 and 5"})
			}
			filters.MinRating = &rating
		}

		query := strings.TrimSpace(ctx.Query("q"))
		page := catalog.NormalizePage(
			ctx.QueryInt("page", 1),
			ctx.QueryInt("size", cfg.DefaultPageSize),
			cfg.DefaultPageSize,
			cfg.MaxPageSize,
		)

		key := cache.ResponseKey(cache.KindRestaurants, query, filters.Signature(), page)
		if cached := cacheRepo.GetBytes(key); len(cached) > 0 {
			ctx.Set("x-cached-response", "true")
			ctx.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
			return ctx.Send(cached)
		}

		hits, total, err := index.Search(ctx.Context(), query, filters, page)
		if err != nil {
			return writeError(ctx, err)
		}

		resp := catalog.VenueSearchResponse{
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
