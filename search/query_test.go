package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo/search-api-go/catalog"
)

func testOptions() Options {
	opts := Options{}
	opts.setDefaults()
	return opts
}

func boolQuery(t *testing.T, query map[string]interface{}) map[string]interface{} {
	t.Helper()
	q, ok := query["query"].(map[string]interface{})
	require.True(t, ok)
	b, ok := q["bool"].(map[string]interface{})
	require.True(t, ok)
	return b
}

func TestBuildProductQueryEmptyTextMatchesAll(t *testing.T) {
	query := buildProductQuery("", catalog.ProductFilters{}, catalog.Page{Page: 1, Size: 20}, testOptions())

	b := boolQuery(t, query)
	must := b["must"].([]interface{})
	require.Len(t, must, 1)
	_, hasMatchAll := must[0].(map[string]interface{})["match_all"]
	assert.True(t, hasMatchAll)
}

func TestBuildProductQueryBoostedFields(t *testing.T) {
	query := buildProductQuery("hamburguesa", catalog.ProductFilters{}, catalog.Page{Page: 1, Size: 20}, testOptions())

	b := boolQuery(t, query)
	must := b["must"].([]interface{})
	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})

	assert.Equal(t, "hamburguesa", multiMatch["query"])
	assert.Equal(t, []string{"name^3", "category^2", "description^1"}, multiMatch["fields"])
	assert.Equal(t, "AUTO", multiMatch["fuzziness"])
}

func TestBuildProductQueryHidesUnavailableByDefault(t *testing.T) {
	query := buildProductQuery("", catalog.ProductFilters{}, catalog.Page{Page: 1, Size: 20}, testOptions())

	filters := boolQuery(t, query)["filter"].([]map[string]interface{})
	require.Len(t, filters, 1)
	assert.Equal(t, map[string]interface{}{"available": true}, filters[0]["term"])
}

func TestBuildProductQueryExplicitAvailabilityWins(t *testing.T) {
	available := false
	query := buildProductQuery("", catalog.ProductFilters{Available: &available}, catalog.Page{Page: 1, Size: 20}, testOptions())

	filters := boolQuery(t, query)["filter"].([]map[string]interface{})
	require.Len(t, filters, 1)
	assert.Equal(t, map[string]interface{}{"available": false}, filters[0]["term"])
}

func TestBuildProductQueryFilterContext(t *testing.T) {
	min, max := 5.0, 15.0
	f := catalog.ProductFilters{
		VenueID:  "venue-1",
		Category: "Hamburguesas",
		MinPrice: &min,
		MaxPrice: &max,
	}
	query := buildProductQuery("queso", f, catalog.Page{Page: 1, Size: 20}, testOptions())

	filters := boolQuery(t, query)["filter"].([]map[string]interface{})
	// venue, category, implicit availability, price range
	require.Len(t, filters, 4)

	var rangeClause map[string]interface{}
	for _, clause := range filters {
		if r, ok := clause["range"]; ok {
			rangeClause = r.(map[string]interface{})
		}
	}
	require.NotNil(t, rangeClause)
	bounds := rangeClause["price"].(map[string]interface{})
	assert.Equal(t, 5.0, bounds["gte"])
	assert.Equal(t, 15.0, bounds["lte"])
}

func TestBuildProductQueryDeterministicSort(t *testing.T) {
	query := buildProductQuery("pizza", catalog.ProductFilters{}, catalog.Page{Page: 1, Size: 20}, testOptions())

	sort := query["sort"].([]interface{})
	require.Len(t, sort, 4)
	assert.Equal(t, map[string]interface{}{"_score": "desc"}, sort[0])
	assert.Equal(t, map[string]interface{}{"featured": "desc"}, sort[1])
	assert.Equal(t, map[string]interface{}{"price": "asc"}, sort[2])
	assert.Equal(t, map[string]interface{}{"id": "asc"}, sort[3])
}

func TestBuildProductQueryPaging(t *testing.T) {
	query := buildProductQuery("", catalog.ProductFilters{}, catalog.Page{Page: 3, Size: 25}, testOptions())

	assert.Equal(t, 50, query["from"])
	assert.Equal(t, 25, query["size"])
	assert.Equal(t, true, query["track_total_hits"])
}

func TestBuildVenueQueryFilters(t *testing.T) {
	priceRange := 2
	rating := 4.0
	f := catalog.VenueFilters{Cuisine: "italiana", PriceRange: &priceRange, MinRating: &rating}

	query := buildVenueQuery("trattoria", f, catalog.Page{Page: 1, Size: 20}, testOptions())

	filters := boolQuery(t, query)["filter"].([]map[string]interface{})
	require.Len(t, filters, 3)

	sort := query["sort"].([]interface{})
	require.Len(t, sort, 3)
	assert.Equal(t, map[string]interface{}{"_score": "desc"}, sort[0])
	assert.Equal(t, map[string]interface{}{"rating": "desc"}, sort[1])
	assert.Equal(t, map[string]interface{}{"id": "asc"}, sort[2])
}

func TestBuildVenueQueryNoFilterClauseWhenUnfiltered(t *testing.T) {
	query := buildVenueQuery("", catalog.VenueFilters{}, catalog.Page{Page: 1, Size: 20}, testOptions())

	_, hasFilter := boolQuery(t, query)["filter"]
	assert.False(t, hasFilter)
}

func TestSnippetFromPrefersName(t *testing.T) {
	snippet := snippetFrom(map[string][]string{
		"description": {"con <em>queso</em> fundido"},
		"name":        {"<em>Queso</em>burguesa"},
	})
	assert.Equal(t, "<em>Queso</em>burguesa", snippet)

	snippet = snippetFrom(map[string][]string{
		"description": {"con <em>queso</em> fundido"},
	})
	assert.Equal(t, "con <em>queso</em> fundido", snippet)

	assert.Equal(t, "", snippetFrom(nil))
}
