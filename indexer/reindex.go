package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tavolo/search-api-go/catalog"
	log "github.com/tavolo/search-api-go/pkg/logger"
	"github.com/tavolo/search-api-go/search"
)

// ReindexReport summarizes a full rebuild. Per-document bulk rejections are
// carried in the report rather than failing the operation: the rebuild is
// best effort, fully observable, and the operator decides whether to retry.
type ReindexReport struct {
	VenuesIndexed   int                  `json:"venuesIndexed"`
	ProductsIndexed int                  `json:"productsIndexed"`
	VenueFailures   []search.BulkFailure `json:"venueFailures,omitempty"`
	ProductFailures []search.BulkFailure `json:"productFailures,omitempty"`
}

// ReindexAll rebuilds both indices from the system of record. Venues are
// torn down, recreated and repopulated before products are touched, so the
// two blackout windows never overlap. A concurrent call is rejected with
// ErrReindexInProgress; concurrent drop/recreate on the same index loses
// writes.
func (p *Pipeline) ReindexAll(ctx context.Context) (*ReindexReport, error) {
	if !p.reindexMu.TryLock() {
		return nil, search.ErrReindexInProgress
	}
	defer p.reindexMu.Unlock()

	venues, err := p.source.AllVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch venues from system of record: %w", err)
	}
	products, err := p.source.AllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products from system of record: %w", err)
	}

	venueReport, err := p.rebuildVenues(ctx, venues)
	if err != nil {
		return nil, err
	}

	productReport, err := p.rebuildProducts(ctx, products, venues)
	if err != nil {
		return nil, err
	}

	// Stale cached results referencing pre-reindex data must not survive.
	// Best effort: a brief stale window is acceptable, a failed prune is not
	// a failed reindex.
	if err := p.cache.Prune(); err != nil {
		log.Logger().Warn("cache prune after reindex failed", zap.Error(err))
	}

	log.Logger().Info("reindex completed",
		zap.Int("venuesIndexed", venueReport.Indexed),
		zap.Int("productsIndexed", productReport.Indexed),
		zap.Int("venueFailures", len(venueReport.Failures)),
		zap.Int("productFailures", len(productReport.Failures)))

	return &ReindexReport{
		VenuesIndexed:   venueReport.Indexed,
		ProductsIndexed: productReport.Indexed,
		VenueFailures:   venueReport.Failures,
		ProductFailures: productReport.Failures,
	}, nil
}

func (p *Pipeline) rebuildVenues(ctx context.Context, venues []catalog.Venue) (search.BulkReport, error) {
	if err := p.venues.Drop(ctx); err != nil {
		return search.BulkReport{}, fmt.Errorf("drop venues index: %w", err)
	}
	if err := p.venues.EnsureSchema(ctx); err != nil {
		return search.BulkReport{}, fmt.Errorf("recreate venues index: %w", err)
	}

	docs := make([]search.VenueDocument, 0, len(venues))
	for _, venue := range venues {
		docs = append(docs, search.NewVenueDocument(venue))
	}

	report, err := p.venues.Bulk(ctx, docs)
	if err != nil {
		return search.BulkReport{}, fmt.Errorf("bulk index venues: %w", err)
	}
	logPartialFailures("venue", report)
	return report, nil
}

func (p *Pipeline) rebuildProducts(ctx context.Context, products []catalog.Product, venues []catalog.Venue) (search.BulkReport, error) {
	if err := p.products.Drop(ctx); err != nil {
		return search.BulkReport{}, fmt.Errorf("drop products index: %w", err)
	}
	if err := p.products.EnsureSchema(ctx); err != nil {
		return search.BulkReport{}, fmt.Errorf("recreate products index: %w", err)
	}

	// Join venue attributes onto products by id. Products whose venue is
	// gone are indexed without the denormalized block; the catalog tolerates
	// them transiently after a venue delete.
	venueByID := make(map[string]*catalog.VenueRef, len(venues))
	for _, venue := range venues {
		venueByID[venue.ID] = &catalog.VenueRef{Name: venue.Name, Cuisine: venue.Cuisine}
	}

	docs := make([]search.ProductDocument, 0, len(products))
	for _, product := range products {
		docs = append(docs, search.NewProductDocument(product, venueByID[product.VenueID]))
	}

	report, err := p.products.Bulk(ctx, docs)
	if err != nil {
		return search.BulkReport{}, fmt.Errorf("bulk index products: %w", err)
	}
	logPartialFailures("product", report)
	return report, nil
}

func logPartialFailures(kind string, report search.BulkReport) {
	if len(report.Failures) == 0 {
		return
	}

	ids := make([]string, 0, len(report.Failures))
	for _, failure := range report.Failures {
		ids = append(ids, failure.ID)
	}
	log.Logger().Warn("bulk index rejected some documents",
		zap.String("kind", kind),
		zap.Int("failed", len(report.Failures)),
		zap.Strings("ids", ids))
}
