package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tavolo/search-api-go/catalog"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresSource reads the catalog tables directly. Used by deployments
// where the search service shares the database with the catalog service.
type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(connStr string) (*PostgresSource, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("connect to catalog database: %w", err)
	}

	return &PostgresSource{pool: pool}, nil
}

func (s *PostgresSource) Close() {
	s.pool.Close()
}

func (s *PostgresSource) AllVenues(ctx context.Context) ([]catalog.Venue, error) {
	query, args, err := psql.
		Select("id", "name", "coalesce(description, '')", "coalesce(address, '')",
			"cuisine", "rating", "price_range", "coalesce(image_url, '')").
		From("restaurants").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build venues query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query venues: %w", err)
	}
	defer rows.Close()

	var venues []catalog.Venue
	for rows.Next() {
		var v catalog.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.Address,
			&v.Cuisine, &v.Rating, &v.PriceRange, &v.ImageURL); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (s *PostgresSource) AllProducts(ctx context.Context) ([]catalog.Product, error) {
	query, args, err := psql.
		Select("id", "restaurant_id", "name", "coalesce(description, '')",
			"price", "category", "featured", "available").
		From("menu_items").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.VenueID, &p.Name, &p.Description,
			&p.Price, &p.Category, &p.Featured, &p.Available); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
