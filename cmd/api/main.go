package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tavolo/search-api-go/cache"
	"github.com/tavolo/search-api-go/config"
	"github.com/tavolo/search-api-go/handler"
	"github.com/tavolo/search-api-go/indexer"
	"github.com/tavolo/search-api-go/middleware/auth"
	log "github.com/tavolo/search-api-go/pkg/logger"
	"github.com/tavolo/search-api-go/repository"
	"github.com/tavolo/search-api-go/search"
	_ "github.com/tavolo/search-api-go/swagger"
)

type Application struct {
	app      *fiber.App
	cfg      *config.Config
	products *search.ProductIndex
	venues   *search.VenueIndex
	cache    *cache.RedisRepository
	pipeline *indexer.Pipeline
}

func (a *Application) Register() {
	a.app.Get("/", handler.RedirectSwagger)
	a.app.Get("/health", handler.HealthCheck(a.products))
	a.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	a.app.Get("/monitor", monitor.New())

	a.app.Get("/search/products", handler.SearchProducts(a.products, a.cache, a.cfg))
	a.app.Get("/search/restaurants", handler.SearchRestaurants(a.venues, a.cache, a.cfg))
	a.app.Get("/suggestions", handler.GetSuggestions(a.products, a.venues))

	a.app.Post("/index/product", handler.IndexProduct(a.pipeline))
	a.app.Delete("/index/product/:id", handler.DeleteProductIndex(a.pipeline))
	a.app.Post("/index/restaurant", handler.IndexRestaurant(a.pipeline))
	a.app.Delete("/index/restaurant/:id", handler.DeleteRestaurantIndex(a.pipeline))
	a.app.Post("/reindex", handler.Reindex(a.pipeline))
	a.app.Post("/cache/clear", handler.ClearCache(a.cache))

	route := a.app.Group("/swagger")
	route.Get("*", swagger.HandlerDefault)
}

func newSource(cfg *config.Config) (indexer.Source, func(), error) {
	if cfg.DBConnStr != "" {
		source, err := repository.NewPostgresSource(cfg.DBConnStr)
		if err != nil {
			return nil, nil, err
		}
		return source, source.Close, nil
	}
	if cfg.SourceBaseURL != "" {
		return repository.NewHTTPSource(cfg.SourceBaseURL, cfg.RequestTimeout), func() {}, nil
	}
	return nil, nil, fmt.Errorf("either DB_CONN_STR or CATALOG_BASE_URL must be set")
}

// @title						Tavolo Search API
// @version					    1.0
// @description				    Full-text search and indexing over the restaurant catalog
// @BasePath					/
// @schemes					    https http
// @securityDefinitions.apiKey	ApiKeyAuth
// @in							header
// @name						X-Api-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Logger().Fatal("could not load config", zap.Error(err))
	}

	opts := search.Options{
		Language:         cfg.AnalyzerLanguage,
		NameBoost:        cfg.NameBoost,
		CategoryBoost:    cfg.CategoryBoost,
		DescriptionBoost: cfg.DescriptionBoost,
		Fuzziness:        cfg.Fuzziness,
		Timeout:          cfg.RequestTimeout,
		SchemaRetries:    cfg.SchemaRetries,
	}

	products := search.NewProductIndex(cfg.ElasticURL, opts)
	venues := search.NewVenueIndex(cfg.ElasticURL, opts)

	startupCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := products.EnsureSchema(startupCtx); err != nil {
		log.Logger().Fatal("could not provision products index", zap.Error(err))
	}
	if err := venues.EnsureSchema(startupCtx); err != nil {
		log.Logger().Fatal("could not provision restaurants index", zap.Error(err))
	}

	cacheRepo := cache.NewRedisRepository(cfg.RedisAddr, cfg.RedisPassword)

	source, closeSource, err := newSource(cfg)
	if err != nil {
		log.Logger().Fatal("could not init catalog source", zap.Error(err))
	}
	defer closeSource()

	pipeline := indexer.New(products, venues, cacheRepo, source)

	app := fiber.New(fiber.Config{
		ReadTimeout: 30 * time.Second,
	})
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New())
	app.Use(recover.New())
	app.Use(auth.New(cfg.APIKey))
	app.Use(pprof.New())

	application := &Application{
		app:      app,
		cfg:      cfg,
		products: products,
		venues:   venues,
		cache:    cacheRepo,
		pipeline: pipeline,
	}
	application.Register()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT)
	signal.Notify(c, syscall.SIGTERM)

	go func() {
		<-c
		log.Logger().Info("application gracefully shutting down..")
		_ = app.Shutdown()
	}()

	if err := app.Listen(cfg.ListenAddr); err != nil {
		panic(fmt.Sprintf("app error: %s", err.Error()))
	}
}
