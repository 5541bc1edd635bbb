package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"haven-data/internal/backend"
	"haven-data/internal/config"
	httpapi "haven-data/internal/http"
	"haven-data/internal/logger"
	"haven-data/internal/query"
	"haven-data/internal/service"
	"haven-data/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "haven-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var client backend.Client
	var db *sql.DB
	switch cfg.Backend {
	case "memory":
		client = backend.NewMemory()
		log.Info("using in-memory backend")
	case "rest":
		if cfg.REST.BaseURL == "" {
			log.Fatal("REST_BASE_URL is required when BACKEND=rest")
		}
		client = backend.NewREST(cfg.REST.BaseURL, cfg.REST.APIKey)
		log.Info("using REST backend", zap.String("base_url", cfg.REST.BaseURL))
	default:
		db, err = sql.Open("postgres", cfg.DSN())
		if err != nil {
			log.Fatal("failed to open database", zap.Error(err))
		}
		if err := db.Ping(); err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		client = backend.NewPostgres(db)
		log.Info("using postgres backend",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Database))
	}

	var kv store.KV
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unavailable, falling back to in-process cache", zap.Error(err))
			_ = redisClient.Close()
			redisClient = nil
			kv = store.NewMemoryKV()
		} else {
			kv = store.NewRedisKV(redisClient)
		}
	} else {
		kv = store.NewMemoryKV()
	}
	cache := query.NewCache(client, kv, cfg.Cache.TTL, log)

	properties := service.NewPropertyService(client, cache, log)
	beds := service.NewBedService(client, cache, log)
	tenants := service.NewTenantService(client, cache, log)
	dashboard := service.NewDashboardService(cache, log)
	settings := service.NewSettingsService(client, cache, log)
	records := service.NewRecordsService(client, cache, log)

	api := httpapi.NewAPI(properties, beds, tenants, dashboard, settings, records, log)
	router := httpapi.NewRouter(log)
	router.RegisterRoutes(api)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}
