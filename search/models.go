package search

import "github.com/tavolo/search-api-go/catalog"

// Common wire models

type Total struct {
	Value int `json:"value"`
}

type Result[T any] struct {
	Took int     `json:"took"`
	Hits Hits[T] `json:"hits"`
}

type Hits[T any] struct {
	Total Total     `json:"total"`
	Hits  []Item[T] `json:"hits"`
}

type Item[T any] struct {
	Index     string              `json:"_index,omitempty"`
	Id        string              `json:"_id"`
	Score     float64             `json:"_score"`
	Source    T                   `json:"_source"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}

type bulkItem struct {
	ID     string `json:"_id"`
	Status int    `json:"status"`
	Error  *struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

type bulkResponse struct {
	Errors bool                  `json:"errors"`
	Items  []map[string]bulkItem `json:"items"`
}

type suggestOption struct {
	Text  string  `json:"text"`
	Score float64 `json:"_score"`
}

type suggestResponse struct {
	Suggest map[string][]struct {
		Options []suggestOption `json:"options"`
	} `json:"suggest"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// Index documents

// ProductDocument is the denormalized product as stored in the index. Venue
// is only populated by the reindex pipeline; single-document upserts have no
// venue context and leave it empty.
type ProductDocument struct {
	catalog.Product
	Venue   *catalog.VenueRef `json:"venue,omitempty"`
	Suggest []string          `json:"suggest,omitempty"`
}

func NewProductDocument(p catalog.Product, venue *catalog.VenueRef) ProductDocument {
	p.NormalizeDescription()
	return ProductDocument{
		Product: p,
		Venue:   venue,
		Suggest: []string{p.Name},
	}
}

type VenueDocument struct {
	catalog.Venue
	Suggest []string `json:"suggest,omitempty"`
}

func NewVenueDocument(v catalog.Venue) VenueDocument {
	v.NormalizeDescription()
	return VenueDocument{
		Venue:   v,
		Suggest: []string{v.Name},
	}
}
