// Package main is the entry point for the Roamlog API server.
package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/roamlog/api/internal/config"
	"github.com/roamlog/api/internal/data"
	"github.com/roamlog/api/internal/http/handler"
	"github.com/roamlog/api/internal/http/router"
	"github.com/roamlog/api/internal/repository"
	"github.com/roamlog/api/internal/repository/cached"
	mongorepo "github.com/roamlog/api/internal/repository/mongo"
	pgrepo "github.com/roamlog/api/internal/repository/postgres"
	"github.com/roamlog/api/internal/service"
	"github.com/roamlog/api/pkg/logger"
)

func main() {
	ctx := context.Background()

	logger.InitLogging()
	config.InitConf()

	repo, storePing, err := newPrimaryRepository(ctx)
	if err != nil {
		logger.Fatal(ctx, "failed to connect primary store: %v", err)
	}

	var cachePing handler.Pinger
	if config.Conf.RedisAddr != "" {
		client := data.NewRedisClient()
		ttl := time.Duration(config.Conf.CacheTTLSeconds) * time.Second
		if ttl <= 0 {
			ttl = time.Minute
		}
		repo = cached.NewPostRepository(repo, client, ttl)
		cachePing = handler.PingerFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		logger.Info(ctx, "read cache enabled, ttl=%s", ttl)
	}

	svc := service.NewService(repo, service.RealClock{})
	engine := router.NewRouter(handler.NewHandler(svc), handler.NewHealthHandler(storePing, cachePing))

	port := config.Conf.RoamlogPort
	if port == "" {
		logger.Info(ctx, "no port configured, falling back to default: 8080")
		port = "8080"
	}

	if err := engine.Run(":" + port); err != nil {
		logger.Fatal(ctx, "failed to start server: %v", err)
	}
}

// newPrimaryRepository picks the primary store from configuration:
// MongoDB by default, Postgres when DATA_BACKEND=postgres.
func newPrimaryRepository(ctx context.Context) (repository.PostRepository, handler.Pinger, error) {
	if config.Conf.DataBackend == "postgres" {
		pool, err := data.NewPostgresPool(ctx)
		if err != nil {
			return nil, nil, err
		}
		repo := pgrepo.NewPostRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, nil, err
		}
		return repo, handler.PingerFunc(pool.Ping), nil
	}
	db, err := data.NewMongoDatabase(ctx)
	if err != nil {
		return nil, nil, err
	}
	ping := handler.PingerFunc(func(ctx context.Context) error {
		return db.Client().Ping(ctx, readpref.Primary())
	})
	return mongorepo.NewPostRepository(db), ping, nil
}
