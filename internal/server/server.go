// Package server boots the HTTP process: config, database, cache, handler
// assembly and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/bazaar/app/routes"
	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/reqid"
	"github.com/shashiranjanraj/bazaar/pkg/router"
	"gorm.io/gorm"
)

// BuildHandler assembles the full middleware stack and route table over db.
// Split out from Start so tests can drive the exact production handler with
// httptest.
func BuildHandler(db *gorm.DB) http.Handler {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	routes.RegisterAPI(r, db)
	return r.Handler()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to ten seconds.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	db, err := database.Connect()
	if err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, continuing without it", "error", err.Error())
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           BuildHandler(db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
