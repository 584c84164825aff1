package handler

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/tavolo/search-api-go/cache"
	"github.com/tavolo/search-api-go/catalog"
	"github.com/tavolo/search-api-go/search"
)

const (
	suggestionLimitDefault = 10
	suggestionLimitMax     = 25
)

var suggestionParams = map[string]bool{"q": true, "type": true, "limit": true}

// getSuggestions godoc
// @Summary            Autocomplete product or restaurant names by prefix
// @Tags               Search
// @Produce            json
// @Success            200 {object} catalog.SuggestionsResponse
// @Param              q query string true "Prefix, at least 2 characters"
// @Param              type query string false "products or restaurants"
// @Param              limit query integer false "Maximum suggestions"
// @Router             /suggestions [GET]
func GetSuggestions(products *search.ProductIndex, venues *search.VenueIndex) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := rejectUnknownParams(ctx, suggestionParams); err != nil {
			return writeError(ctx, err)
		}

		prefix := strings.TrimSpace(ctx.Query("q"))
		if utf8.RuneCountInString(prefix) < 2 {
			return writeError(ctx, &search.ValidationError{Field: "q", Reason: "must be at least 2 characters"})
		}

		limit := ctx.QueryInt("limit", suggestionLimitDefault)
		if limit < 1 {
			limit = suggestionLimitDefault
		}
		if limit > suggestionLimitMax {
			limit = suggestionLimitMax
		}

		kind := ctx.Query("type", cache.KindProducts)

		var (
			suggestions []catalog.Suggestion
			err         error
		)
		switch kind {
		case cache.KindProducts:
			suggestions, err = products.Suggest(ctx.Context(), prefix, limit)
		case cache.KindRestaurants:
			suggestions, err = venues.Suggest(ctx.Context(), prefix, limit)
		default:
			return writeError(ctx, &search.ValidationError{Field: "type", Reason: "must be products or restaurants"})
		}
		if err != nil {
			return writeError(ctx, err)
		}

		if suggestions == nil {
			suggestions = []catalog.Suggestion{}
		}

		return ctx.JSON(catalog.SuggestionsResponse{
			Query:       prefix,
			Type:        kind,
			Suggestions: suggestions,
		})
	}
}
