package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/cache"
	"github.com/emberapp/ember-backend/internal/config"
)

// AppContext holds shared dependencies (DB, Redis, Logger, config).
// It is constructed once in main and injected into every service; no
// package-global handles exist anywhere below it.
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
}

// New creates a new AppContext
func New(cfg *config.Config, database *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		Config:     cfg,
		DB:         database,
		RedisCache: rdb,
		Logger:     logger,
	}
}
