package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/fightstation/backend/internal/app"
	"github.com/fightstation/backend/internal/cache"
	"github.com/fightstation/backend/internal/config"
	"github.com/fightstation/backend/internal/db"
	"github.com/fightstation/backend/internal/logger"
	"github.com/fightstation/backend/internal/server"
	"github.com/fightstation/backend/internal/service/profiles"
	"github.com/fightstation/backend/internal/service/recommend"
)

func main() {
	// no .env file is fine, plain environment variables apply
	_ = godotenv.Load()

	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(database, redisCache, log)

	if cfg.App.ENV == "development" {
		if err := db.SeedDemoData(database); err != nil {
			log.Error("failed to seed demo data", "err", err)
		}
	}

	registrars := []server.Registrar{
		recommend.NewRegistrar(appCtx, cfg.Matching.ResultTTL),
		profiles.NewRegistrar(appCtx),
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
