package catalog

import "strings"

// DescriptionPlaceholder replaces empty descriptions before indexing. It must
// stay identical to the default the catalog service writes, otherwise the
// index drifts from the system of record on no-op updates.
const DescriptionPlaceholder = "Sin descripción disponible"

// VenueRef is the venue attributes denormalized onto a product document.
type VenueRef struct {
	Name    string `json:"name,omitempty"`
	Cuisine string `json:"cuisine,omitempty"`
}

type Product struct {
	ID          string  `json:"id" validate:"required"`
	VenueID     string  `json:"venueId" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category"`
	Featured    bool    `json:"featured"`
	Available   bool    `json:"available"`
}

// NormalizeDescription applies the same empty-description defaulting the
// catalog service applies on write.
func (p *Product) NormalizeDescription() {
	if strings.TrimSpace(p.Description) == "" {
		p.Description = DescriptionPlaceholder
	}
}
