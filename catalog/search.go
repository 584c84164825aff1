package catalog

import (
	"fmt"
	"strings"
)

// ProductFilters is the closed set of filters accepted for product searches.
// Unknown filter keys are rejected at the HTTP boundary, never silently
// dropped.
type ProductFilters struct {
	VenueID   string   `json:"venueId,omitempty"`
	Category  string   `json:"category,omitempty"`
	Available *bool    `json:"available,omitempty"`
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
}

// Signature is a stable textual form used to build cache keys.
func (f ProductFilters) Signature() string {
	parts := []string{"venue=" + f.VenueID, "category=" + f.Category}
	if f.Available != nil {
		parts = append(parts, fmt.Sprintf("available=%t", *f.Available))
	}
	if f.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("min=%g", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("max=%g", *f.MaxPrice))
	}
	return strings.Join(parts, "|")
}

// VenueFilters is the closed set of filters accepted for venue searches.
type VenueFilters struct {
	Cuisine    string   `json:"cuisine,omitempty"`
	PriceRange *int     `json:"priceRange,omitempty"`
	MinRating  *float64 `json:"minRating,omitempty"`
}

func (f VenueFilters) Signature() string {
	parts := []string{"cuisine=" + f.Cuisine}
	if f.PriceRange != nil {
		parts = append(parts, fmt.Sprintf("range=%d", *f.PriceRange))
	}
	if f.MinRating != nil {
		parts = append(parts, fmt.Sprintf("rating=%g", *f.MinRating))
	}
	return strings.Join(parts, "|")
}

// Page holds normalized pagination input. From() is never negative.
type Page struct {
	Page int
	Size int
}

func (p Page) From() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Size
}

// NormalizePage clamps page and size to sane bounds.
func NormalizePage(page, size, defaultSize, maxSize int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return Page{Page: page, Size: size}
}

// Pagination is the response envelope computed from the full filtered total,
// not the returned page.
type Pagination struct {
	Page       int  `json:"page"`
	Size       int  `json:"size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

func NewPagination(page Page, total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + page.Size - 1) / page.Size
	}
	return Pagination{
		Page:       page.Page,
		Size:       page.Size,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page.Page < totalPages,
		HasPrev:    page.Page > 1 && total > 0,
	}
}

// ProductHit is one ranked product match.
type ProductHit struct {
	Product
	Venue   *VenueRef `json:"venue,omitempty"`
	Score   float64   `json:"score"`
	Snippet string    `json:"snippet,omitempty"`
}

// VenueHit is one ranked venue match.
type VenueHit struct {
	Venue
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet,omitempty"`
}

type Suggestion struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type ProductSearchResponse struct {
	Query      string         `json:"query"`
	Filters    ProductFilters `json:"filters"`
	Results    []ProductHit   `json:"results"`
	Pagination Pagination     `json:"pagination"`
}

type VenueSearchResponse struct {
	Query      string       `json:"query"`
	Filters    VenueFilters `json:"filters"`
	Results    []VenueHit   `json:"results"`
	Pagination Pagination   `json:"pagination"`
}

type SuggestionsResponse struct {
	Query       string       `json:"query"`
	Type        string       `json:"type"`
	Suggestions []Suggestion `json:"suggestions"`
}
