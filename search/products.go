package search

import (
	"context"

	"github.com/tavolo/search-api-go/catalog"
)

// ProductIndex serves ranked menu-item queries and owns the products index
// lifecycle.
type ProductIndex struct {
	index *Index[ProductDocument]
	opts  Options
}

func NewProductIndex(connStr string, opts Options) *ProductIndex {
	opts.setDefaults()
	return &ProductIndex{
		index: NewIndex[ProductDocument](connStr, ProductsIndexName, opts.Timeout),
		opts:  opts,
	}
}

func (p *ProductIndex) Ping(ctx context.Context) error {
	return p.index.Ping(ctx)
}

// EnsureSchema provisions the products index if it does not exist yet.
func (p *ProductIndex) EnsureSchema(ctx context.Context) error {
	return ensureSchema(ctx, p.index, productMapping(p.opts.Language), p.opts.SchemaRetries)
}

// Drop removes the whole index. Used by the reindex pipeline before a
// rebuild so stale documents cannot survive schema or data changes.
func (p *ProductIndex) Drop(ctx context.Context) error {
	return p.index.Drop(ctx)
}

func (p *ProductIndex) Upsert(ctx context.Context, doc ProductDocument) error {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()
	return p.index.Upsert(ctx, doc.ID, doc)
}

func (p *ProductIndex) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()
	return p.index.Delete(ctx, id)
}

func (p *ProductIndex) Bulk(ctx context.Context, docs []ProductDocument) (BulkReport, error) {
	items := make([]Item[ProductDocument], 0, len(docs))
	for _, doc := range docs {
		items = append(items, Item[ProductDocument]{Id: doc.ID, Source: doc})
	}
	return p.index.Bulk(ctx, items)
}

// Search runs a ranked query over the products index and normalizes the raw
// hits. The total reflects the entire filtered set, not the returned page.
func (p *ProductIndex) Search(ctx context.Context, query string, filters catalog.ProductFilters, page catalog.Page) ([]catalog.ProductHit, int, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	res, err := p.index.Search(ctx, buildProductQuery(query, filters, page, p.opts))
	if err != nil {
		return nil, 0, err
	}

	hits := make([]catalog.ProductHit, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		hits = append(hits, catalog.ProductHit{
			Product: hit.Source.Product,
			Venue:   hit.Source.Venue,
			Score:   hit.Score,
			Snippet: snippetFrom(hit.Highlight),
		})
	}
	return hits, res.Hits.Total.Value, nil
}

func (p *ProductIndex) Suggest(ctx context.Context, prefix string, limit int) ([]catalog.Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()
	return p.index.Suggest(ctx, prefix, limit)
}

// buildProductQuery translates a search request into the engine's DSL.
// Filters go into the bool filter context so they constrain the eligible set
// without contributing to the relevance score. The sort chain after score is
// deterministic, keeping paging stable across identical requests.
func buildProductQuery(query string, filters catalog.ProductFilters, page catalog.Page, opts Options) map[string]interface{} {
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
					boosted("category", opts.CategoryBoost),
					boosted("description", opts.DescriptionBoost),
				},
				"type":          "best_fields",
				"fuzziness":     opts.Fuzziness,
				"prefix_length": 1,
			},
		}
	}

	var filterClauses []map[string]interface{}

	if filters.VenueID != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"venueId": filters.VenueID},
		})
	}

	if filters.Category != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"category": filters.Category},
		})
	}

	// Unavailable products are hidden unless explicitly asked for.
	available := true
	if filters.Available != nil {
		available = *filters.Available
	}
	filterClauses = append(filterClauses, map[string]interface{}{
		"term": map[string]interface{}{"available": available},
	})

	if filters.MinPrice != nil || filters.MaxPrice != nil {
		bounds := map[string]interface{}{}
		if filters.MinPrice != nil {
			bounds["gte"] = *filters.MinPrice
		}
		if filters.MaxPrice != nil {
			bounds["lte"] = *filters.MaxPrice
		}
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"price": bounds},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   []interface{}{match},
				"filter": filterClauses,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"_score": "desc"},
			map[string]interface{}{"featured": "desc"},
			map[string]interface{}{"price": "asc"},
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
