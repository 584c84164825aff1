package catalog

import "strings"

type Venue struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Cuisine     string  `json:"cuisine"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	PriceRange  int     `json:"priceRange" validate:"gte=1,lte=3"`
	ImageURL    string  `json:"imageUrl"`
}

func (v *Venue) NormalizeDescription() {
	if strings.TrimSpace(v.Description) == "" {
		v.Description = DescriptionPlaceholder
	}
}
