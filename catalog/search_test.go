package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	page := NormalizePage(0, 0, 20, 100)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Size)

	page = NormalizePage(-3, -1, 20, 100)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Size)

	page = NormalizePage(2, 500, 20, 100)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 100, page.Size)

	page = NormalizePage(4, 15, 20, 100)
	assert.Equal(t, 4, page.Page)
	assert.Equal(t, 15, page.Size)
}

func TestPageFrom(t *testing.T) {
	assert.Equal(t, 0, Page{Page: 1, Size: 20}.From())
	assert.Equal(t, 40, Page{Page: 3, Size: 20}.From())
	assert.Equal(t, 0, Page{Page: 0, Size: 20}.From())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(Page{Page: 1, Size: 20}, 45)
	assert.Equal(t, 45, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)

	p = NewPagination(Page{Page: 3, Size: 20}, 45)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPagination(Page{Page: 1, Size: 20}, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)

	// page count is a ceiling, a partial last page still counts
	p = NewPagination(Page{Page: 1, Size: 20}, 20)
	assert.Equal(t, 1, p.TotalPages)
	p = NewPagination(Page{Page: 1, Size: 20}, 21)
	assert.Equal(t, 2, p.TotalPages)
}

func TestProductFiltersSignature(t *testing.T) {
	available := true
	min, max := 5.0, 12.5

	full := ProductFilters{
		VenueID:   "venue-1",
		Category:  "Hamburguesas",
		Available: &available,
		MinPrice:  &min,
		MaxPrice:  &max,
	}
	empty := ProductFilters{}

	assert.NotEqual(t, full.Signature(), empty.Signature())
	assert.Equal(t, full.Signature(), full.Signature())

	// an unset pointer and an explicit value must not collide
	off := false
	explicit := ProductFilters{Available: &off}
	assert.NotEqual(t, empty.Signature(), explicit.Signature())
}

func TestVenueFiltersSignature(t *testing.T) {
	priceRange := 2
	rating := 4.0

	full := VenueFilters{Cuisine: "italiana", PriceRange: &priceRange, MinRating: &rating}
	assert.NotEqual(t, full.Signature(), VenueFilters{}.Signature())
	assert.Equal(t, full.Signature(), full.Signature())
}
