package main

import (
	"context"

	"github.com/emberapp/ember-backend/internal/app"
	"github.com/emberapp/ember-backend/internal/cache"
	"github.com/emberapp/ember-backend/internal/config"
	"github.com/emberapp/ember-backend/internal/db"
	"github.com/emberapp/ember-backend/internal/logger"
	"github.com/emberapp/ember-backend/internal/server"
	"github.com/emberapp/ember-backend/internal/service/account"
	"github.com/emberapp/ember-backend/internal/service/chat"
	"github.com/emberapp/ember-backend/internal/service/discover"
	"github.com/emberapp/ember-backend/internal/service/match"
	"github.com/emberapp/ember-backend/internal/service/media"
	"github.com/emberapp/ember-backend/internal/service/report"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB (closed on shutdown)
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Error("failed to close db", "err", err)
		}
	}()

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(cfg, database, redisCache, log)

	registrars := []server.Registrar{
		account.NewRegistrar(appCtx),
		discover.NewRegistrar(appCtx),
		match.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
		report.NewRegistrar(appCtx),
		media.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedDemoData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	if err := server.StartHTTPServer(appCtx, registrars...); err != nil {
		log.Error("http server exited with error", "err", err)
	}
}
