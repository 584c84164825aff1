package search

import (
	"context"

	"github.com/tavolo/search-api-go/catalog"
)

// VenueIndex serves ranked restaurant queries and owns the venues index
// lifecycle.
type VenueIndex struct {
	index *Index[VenueDocument]
	opts  Options
}

func NewVenueIndex(connStr string, opts Options) *VenueIndex {
	opts.setDefaults()
	return &VenueIndex{
		index: NewIndex[VenueDocument](connStr, VenuesIndexName, opts.Timeout),
		opts:  opts,
	}
}

func (v *VenueIndex) Ping(ctx context.Context) error {
	return v.index.Ping(ctx)
}

func (v *VenueIndex) EnsureSchema(ctx context.Context) error {
	return ensureSchema(ctx, v.index, venueMapping(v.opts.Language), v.opts.SchemaRetries)
}

func (v *VenueIndex) Drop(ctx context.Context) error {
	return v.index.Drop(ctx)
}

func (v *VenueIndex) Upsert(ctx context.Context, doc VenueDocument) error {
	ctx, cancel := context.WithTimeout(ctx, v.opts.Timeout)
	defer cancel()
	return v.index.Upsert(ctx, doc.ID, doc)
}

func (v *VenueIndex) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, v.opts.Timeout)
	defer cancel()
	return v.index.Delete(ctx, id)
}

func (v *VenueIndex) Bulk(ctx context.Context, docs []VenueDocument) (BulkReport, error) {
	items := make([]Item[VenueDocument], 0, len(docs))
	for _, doc := range docs {
		items = append(items, Item[VenueDocument]{Id: doc.ID, Source: doc})
	}
	return v.index.Bulk(ctx, items)
}

func (v *VenueIndex) Search(ctx context.Context, query string, filters catalog.VenueFilters, page catalog.Page) ([]catalog.VenueHit, int, error) {
	ctx, cancel := context.WithTimeout(ctx, v.opts.Timeout)
	defer cancel()

	res, err := v.index.Search(ctx, buildVenueQuery(query, filters, page, v.opts))
	if err != nil {
		return nil, 0, err
	}

	hits := make([]catalog.VenueHit, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		hits = append(hits, catalog.VenueHit{
			Venue:   hit.Source.Venue,
			Score:   hit.Score,
			Snippet: snippetFrom(hit.Highlight),
		})
	}
	return hits, res.Hits.Total.Value, nil
}

func (v *VenueIndex) Suggest(ctx context.Context, prefix string, limit int) ([]catalog.Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, v.opts.Timeout)
	defer cancel()
	return v.index.Suggest(ctx, prefix, limit)
}

func buildVenueQuery(query string, filters catalog.VenueFilters, page catalog.Page, opts Options) map[string]interface{} {
	var match map[string]interface{}
	if query == "" {
		match = map[string]interface{}{
			"match_all": map[string]interface{}{},
		}
	} else {
		match = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": query,
				"fields": []string{
					boosted("name", opts.NameBoost),
					boosted("cuisine", opts.CategoryBoost),
					boosted("description", opts.DescriptionBoost),
				},
				"type":          "best_fields",
				"fuzziness":     opts.Fuzziness,
				"prefix_length": 1,
			},
		}
	}

	var filterClauses []map[string]interface{}

	if filters.Cuisine != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"cuisine": filters.Cuisine},
		})
	}

	if filters.PriceRange != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"priceRange": *filters.PriceRange},
		})
	}

	if filters.MinRating != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"rating": map[string]interface{}{"gte": *filters.MinRating},
			},
		})
	}

	boolQuery := map[string]interface{}{
		"must": []interface{}{match},
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"sort": []interface{}{
			map[string]interface{}{"_score": "desc"},
			map[string]interface{}{"rating": "desc"},
			map[string]interface{}{"id": "asc"},
		},
		"highlight": map[string]interface{}{
			"fields": map[string]interface{}{
				"name":        map[string]interface{}{},
				"description": map[string]interface{}{},
			},
		},
		"from":             page.From(),
		"size":             page.Size,
		"track_total_hits": true,
	}
}
