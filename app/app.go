// Package app wires configuration, storage and services into the API dependencies.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"larana.GO/api"
	_ "larana.GO/api/bundles"
	_ "larana.GO/api/graphql"
	_ "larana.GO/api/health"
	_ "larana.GO/api/ozon"
	_ "larana.GO/api/products"
	"larana.GO/config"
	"larana.GO/core/auth"
	"larana.GO/core/cache"
	"larana.GO/core/logger"
	"larana.GO/model/entity/catalog"
	bundleRepo "larana.GO/model/repository/bundle"
	mappingRepo "larana.GO/model/repository/mapping"
	productRepo "larana.GO/model/repository/product"
	"larana.GO/service/listcache"
	"larana.GO/service/ozon"
	"larana.GO/service/product"
)

// App holds the process-wide services.
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Deps   *api.Deps
}

// New loads configuration, opens the database, loads the catalog and builds every service.
func New() (*App, error) {
	config.LoadAppConfig()
	cfg := config.AppConfig

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	config.InitRedis()
	if config.RedisClient != nil {
		log.Info("redis connection successful")
	} else {
		log.Info("redis not configured or not reachable, using in-process cache")
	}

	db, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := db.AutoMigrate(catalog.Models()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info("database connection successful")

	store := product.NewStore(productRepo.GetProductRepository(db), log.Named("catalog"))
	if err := store.Load(); err != nil {
		return nil, err
	}
	if n, err := store.Repair(); err != nil {
		log.Warn("catalog repair failed", zap.Error(err))
	} else if n > 0 {
		log.Info("catalog repaired", zap.Int("products", n))
	}

	local := cache.GetInstance()
	lists := listcache.New(config.RedisClient, local, time.Duration(cfg.CatalogCacheTTL)*time.Second, log.Named("listcache"))
	store.OnChange(func() { lists.Invalidate(context.Background(), store.Version()) })

	var src ozon.Source
	client, err := ozon.NewClient(cfg.Ozon, log.Named("ozon"))
	switch {
	case err == nil:
		src = client
	case errors.Is(err, ozon.ErrNoCredentials):
		log.Warn("ozon credentials not configured, marketplace import disabled")
	default:
		return nil, err
	}
	importer := ozon.NewImporter(src, mappingRepo.NewMappingRepository(db), store, local, ozon.ImporterOptions{
		Fetch:            ozon.FetchOptions{PageSize: cfg.Ozon.PageSize, BatchSize: cfg.Ozon.BatchSize},
		PlaceholderImage: cfg.PlaceholderImage,
		SessionTTL:       cfg.PreviewTTL,
	}, log.Named("ozon"))

	return &App{
		Config: cfg,
		DB:     db,
		Log:    log,
		Deps: &api.Deps{
			DB:      db,
			Config:  cfg,
			Store:   store,
			Bundles: bundleRepo.NewBundleRepository(db, store),
			Ozon:    importer,
			Lists:   lists,
			Log:     log,
		},
	}, nil
}

// Echo builds the HTTP server with middleware and every registered route module.
func (a *App) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())
	e.Use(durationMiddleware(a.Log))

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())

	api.ApplyModules(apiGroup, a.Deps)
	api.ApplyRoutes(e, a.Deps)
	return e
}

func durationMiddleware(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Debug("request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()))
			return err
		}
	}
}

// Close releases the database and logger.
func (a *App) Close() {
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
	if config.RedisClient != nil {
		config.RedisClient.Close()
	}
	_ = a.Log.Sync()
}
