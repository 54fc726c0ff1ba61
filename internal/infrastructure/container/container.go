// Package container wires the application with Uber FX.
package container

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountsvc "github.com/recipewhirl/backend/internal/application/account"
	cookbooksvc "github.com/recipewhirl/backend/internal/application/cookbook"
	"github.com/recipewhirl/backend/internal/application/interaction"
	"github.com/recipewhirl/backend/internal/application/search"
	"github.com/recipewhirl/backend/internal/application/session"
	"github.com/recipewhirl/backend/internal/infrastructure/assistant"
	"github.com/recipewhirl/backend/internal/infrastructure/cache"
	"github.com/recipewhirl/backend/internal/infrastructure/config"
	"github.com/recipewhirl/backend/internal/infrastructure/http/apiserver"
	"github.com/recipewhirl/backend/internal/infrastructure/mealdb"
	"github.com/recipewhirl/backend/internal/infrastructure/monitoring"
	gormrepo "github.com/recipewhirl/backend/internal/infrastructure/persistence/gorm"
	"github.com/recipewhirl/backend/internal/infrastructure/persistence/postgres"
	"github.com/recipewhirl/backend/internal/ports/outbound"
	"github.com/recipewhirl/backend/pkg/logger"
)

// Module assembles every dependency of the API process
var Module = fx.Options(
	fx.Provide(
		func() (*config.Config, error) { return config.Load("") },
		func(cfg *config.Config) (*zap.Logger, error) {
			return logger.New(logger.Config{
				Level:       cfg.App.LogLevel,
				Format:      cfg.App.LogFormat,
				Development: cfg.App.Debug,
			})
		},
		monitoring.NewMetrics,
		postgres.NewConnection,
	),

	// Repositories
	fx.Provide(
		fx.Annotate(gormrepo.NewFavoriteRepository, fx.As(new(outbound.FavoriteRepository))),
		fx.Annotate(gormrepo.NewRatingRepository, fx.As(new(outbound.RatingRepository))),
		fx.Annotate(gormrepo.NewSearchHistoryRepository, fx.As(new(outbound.SearchHistoryRepository))),
		fx.Annotate(gormrepo.NewUserRepository, fx.As(new(outbound.UserRepository))),
		fx.Annotate(gormrepo.NewCookbookRepository, fx.As(new(outbound.CookbookRepository))),
	),

	// Catalog: MealDB behind a Redis lookaside cache. Redis being down is
	// not fatal; the catalog is used directly in that case.
	fx.Provide(
		func(cfg *config.Config, metrics *monitoring.Metrics, log *zap.Logger) outbound.RecipeSource {
			source := mealdb.NewClient(cfg.Catalog.BaseURL,
				&http.Client{Timeout: cfg.Catalog.Timeout}, metrics, log)

			client, err := cache.NewRedisClient(&cfg.Redis)
			if err != nil {
				log.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
				return source
			}
			return cache.NewCachedSource(source, cache.NewRedisCache(client), cfg.Redis.RecipeTTL, log)
		},
		func(cfg *config.Config, metrics *monitoring.Metrics, log *zap.Logger) outbound.AssistantService {
			return assistant.NewClient(&cfg.Assistant, metrics, log)
		},
	),

	// Application services
	fx.Provide(
		session.NewManager,
		interaction.NewStore,
		interaction.NewController,
		cookbooksvc.NewService,
		func(cfg *config.Config, source outbound.RecipeSource, history outbound.SearchHistoryRepository,
			metrics *monitoring.Metrics, log *zap.Logger) *search.Pipeline {
			return search.NewPipeline(source, history, metrics, cfg.Catalog.RandomCount, log)
		},
		func(cfg *config.Config, users outbound.UserRepository, sessions *session.Manager,
			log *zap.Logger) *accountsvc.Service {
			return accountsvc.NewService(users, sessions, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration, log)
		},
	),

	fx.Provide(apiserver.NewServer),

	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, cfg *config.Config, db *gorm.DB, server *apiserver.Server, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Database.AutoMigrate {
				if err := db.AutoMigrate(
					&gormrepo.UserModel{},
					&gormrepo.FavoriteModel{},
					&gormrepo.RatingModel{},
					&gormrepo.SearchHistoryModel{},
					&gormrepo.UserRecipeModel{},
				); err != nil {
					return err
				}
				log.Info("Schema auto-migrated")
			}

			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
