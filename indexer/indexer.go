// Package indexer keeps the search indices consistent with the system of
// record: single-document writes on catalog mutations and a full rebuild.
package indexer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tavolo/search-api-go/cache"
	"github.com/tavolo/search-api-go/catalog"
	log "github.com/tavolo/search-api-go/pkg/logger"
	"github.com/tavolo/search-api-go/search"
)

// ProductEngine is the slice of the index client the pipeline needs for
// menu items.
type ProductEngine interface {
	EnsureSchema(ctx context.Context) error
	Drop(ctx context.Context) error
	Upsert(ctx context.Context, doc search.ProductDocument) error
	Delete(ctx context.Context, id string) error
	Bulk(ctx context.Context, docs []search.ProductDocument) (search.BulkReport, error)
}

// VenueEngine is the slice of the index client the pipeline needs for
// restaurants.
type VenueEngine interface {
	EnsureSchema(ctx context.Context) error
	Drop(ctx context.Context) error
	Upsert(ctx context.Context, doc search.VenueDocument) error
	Delete(ctx context.Context, id string) error
	Bulk(ctx context.Context, docs []search.VenueDocument) (search.BulkReport, error)
}

// ResponseCache invalidates cached search responses after index writes.
type ResponseCache interface {
	DeletePattern(pattern string)
	Prune() error
}

// Source is the fetch-all view of the system of record used by ReindexAll.
type Source interface {
	AllVenues(ctx context.Context) ([]catalog.Venue, error)
	AllProducts(ctx context.Context) ([]catalog.Product, error)
}

// Pipeline applies catalog mutations to the search indices. A single mutex
// guards the full reindex; single-document writes do not contend on it.
type Pipeline struct {
	products ProductEngine
	venues   VenueEngine
	cache    ResponseCache
	source   Source

	reindexMu sync.Mutex
}

func New(products ProductEngine, venues VenueEngine, responseCache ResponseCache, source Source) *Pipeline {
	return &Pipeline{
		products: products,
		venues:   venues,
		cache:    responseCache,
		source:   source,
	}
}

// UpsertProduct replaces the product document wholesale. Mutation events
// carry no venue context, so the denormalized venue block stays empty until
// the next full reindex.
func (p *Pipeline) UpsertProduct(ctx context.Context, product catalog.Product) error {
	doc := search.NewProductDocument(product, nil)
	if err := p.products.Upsert(ctx, doc); err != nil {
		log.Logger().Error("product index upsert failed, index may drift from catalog",
			zap.String("id", product.ID), zap.String("kind", "product"), zap.Error(err))
		return err
	}

	p.cache.DeletePattern(cache.KindPattern(cache.KindProducts))
	return nil
}

// DeleteProduct removes the document. Deleting an absent id is not an error.
func (p *Pipeline) DeleteProduct(ctx context.Context, id string) error {
	if err := p.products.Delete(ctx, id); err != nil {
		log.Logger().Error("product index delete failed, index may drift from catalog",
			zap.String("id", id), zap.String("kind", "product"), zap.Error(err))
		return err
	}

	p.cache.DeletePattern(cache.KindPattern(cache.KindProducts))
	return nil
}

// UpsertVenue replaces the venue document wholesale. Cached product results
// may embed denormalized venue fields, so both namespaces are invalidated.
func (p *Pipeline) UpsertVenue(ctx context.Context, venue catalog.Venue) error {
	doc := search.NewVenueDocument(venue)
	if err := p.venues.Upsert(ctx, doc); err != nil {
		log.Logger().Error("venue index upsert failed, index may drift from catalog",
			zap.String("id", venue.ID), zap.String("kind", "venue"), zap.Error(err))
		return err
	}

	p.cache.DeletePattern(cache.KindPattern(cache.KindRestaurants))
	p.cache.DeletePattern(cache.KindPattern(cache.KindProducts))
	return nil
}

func (p *Pipeline) DeleteVenue(ctx context.Context, id string) error {
	if err := p.venues.Delete(ctx, id); err != nil {
		log.Logger().Error("venue index delete failed, index may drift from catalog",
			zap.String("id", id), zap.String("kind", "venue"), zap.Error(err))
		return err
	}

	p.cache.DeletePattern(cache.KindPattern(cache.KindRestaurants))
	p.cache.DeletePattern(cache.KindPattern(cache.KindProducts))
	return nil
}
