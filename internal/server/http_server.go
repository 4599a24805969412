package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emberapp/ember-backend/internal/app"
	"github.com/emberapp/ember-backend/internal/auth"
)

// NewRouter assembles the gin engine: middleware, health endpoint, static
// uploads, and every registrar's routes split across the public and
// protected groups.
func NewRouter(appCtx *app.AppContext, registrars ...Registrar) *gin.Engine {
	cfg := appCtx.Config
	if cfg.App.ENV != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(appCtx.Logger), CORSMiddleware())

	router.GET("/healthz", healthHandler(appCtx))
	if cfg.Upload.Dir != "" {
		router.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)
	}

	public := router.Group("/")
	protected := router.Group("/", auth.Middleware(cfg))

	for _, r := range registrars {
		r.Register(public, protected)
	}

	return router
}

// StartHTTPServer boots the HTTP server and blocks until SIGINT/SIGTERM,
// then drains in-flight requests before returning.
func StartHTTPServer(appCtx *app.AppContext, registrars ...Registrar) error {
	cfg := appCtx.Config
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(appCtx, registrars...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	appCtx.Logger.Info("http server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appCtx.Logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func healthHandler(appCtx *app.AppContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"backend": "ok", "database": "ok", "cache": "ok"}
		code := http.StatusOK

		if sqlDB, err := appCtx.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status["database"] = "unavailable"
			code = http.StatusServiceUnavailable
		}
		if err := appCtx.RedisCache.Ping(c.Request.Context()); err != nil {
			status["cache"] = "unavailable"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, status)
	}
}
