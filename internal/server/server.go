// Package server is the composition root: it loads config, opens the
// store, wires the middleware stack and routes, and runs the HTTP server
// until a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/merchdesk/app/routes"
	"github.com/shashiranjanraj/merchdesk/config"
	"github.com/shashiranjanraj/merchdesk/pkg/cache"
	"github.com/shashiranjanraj/merchdesk/pkg/database"
	"github.com/shashiranjanraj/merchdesk/pkg/logger"
	"github.com/shashiranjanraj/merchdesk/pkg/metrics"
	"github.com/shashiranjanraj/merchdesk/pkg/middleware"
	"github.com/shashiranjanraj/merchdesk/pkg/migration"
	"github.com/shashiranjanraj/merchdesk/pkg/reqid"
	"github.com/shashiranjanraj/merchdesk/pkg/router"
	"gorm.io/gorm"
)

const shutdownGrace = 10 * time.Second

// Start boots the dashboard API and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoLogURI(); uri != "" {
		sink, err := logger.EnableMongoSink(uri, config.MongoLogDB(), "logs")
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		} else {
			defer sink.Close()
		}
	}

	db, err := database.Open(config.DatabasePath())
	if err != nil {
		return err
	}
	if err := migration.New(db).Run(); err != nil {
		return err
	}

	c, err := cache.Connect(config.RedisAddr(), config.RedisPassword())
	if err != nil {
		// The cache degrades to a no-op; the dashboard runs off SQLite alone.
		logger.Warn("redis unavailable, aggregate cache disabled", "error", err)
	}

	r := NewRouter(db, c)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("merchdesk listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(ctx)
}

// NewRouter builds the full middleware stack and route table around the
// given store and cache handles. Split out from Start so the route:list
// command and the HTTP tests can stand up the exact production surface.
func NewRouter(db *gorm.DB, c *cache.Cache) *router.Router {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	routes.RegisterAPI(r, db, c)
	return r
}
