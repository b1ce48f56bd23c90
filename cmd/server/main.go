package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"tienda/internal/auth"
	authservice "tienda/internal/auth/service"
	"tienda/internal/commons"
	"tienda/internal/config"
	"tienda/internal/infrastructure/logger"
	"tienda/internal/infrastructure/mysql"
	"tienda/internal/infrastructure/redis"
	"tienda/internal/product"
	"tienda/internal/purchase"
	"tienda/internal/server"
)

func main() {
	refreshDB := pflag.Bool("refresh-db", false, "drop and recreate every table before starting")
	seedPath := pflag.String("seed", "", "YAML seed file applied after the schema is ready")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	ctx := context.Background()
	if *refreshDB {
		if err := mysql.Reset(ctx, db); err != nil {
			zapLogger.Fatal("refreshing database", zap.Error(err))
		}
		zapLogger.Info("database schema recreated")
	} else if err := mysql.Migrate(ctx, db); err != nil {
		zapLogger.Fatal("migrating database", zap.Error(err))
	}

	if *seedPath != "" {
		seed, err := commons.LoadSeed(*seedPath)
		if err != nil {
			zapLogger.Fatal("loading seed", zap.Error(err))
		}
		if err := mysql.ApplySeed(ctx, db, seed, authservice.HashPassword); err != nil {
			zapLogger.Fatal("applying seed", zap.Error(err))
		}
		zapLogger.Info("seed applied", zap.String("file", *seedPath))
	}

	var limiter goredis.Cmdable
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			zapLogger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			defer client.Close()
			limiter = client
			zapLogger.Info("redis connected")
		}
	}

	modules := server.Modules{
		Auth:     auth.NewModule(db, cfg.Auth, zapLogger),
		Product:  product.NewModule(db, zapLogger),
		Purchase: purchase.NewModule(db, cfg.Purchase, zapLogger),
	}

	router := server.NewRouter(modules, limiter, cfg.Auth, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(runCtx); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
