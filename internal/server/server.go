// Package server boots the application: config, logging, storage, the
// background machinery, and the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/priyadarshi/darzi/app/jobs"
	"github.com/priyadarshi/darzi/app/routes"
	"github.com/priyadarshi/darzi/app/services"
	"github.com/priyadarshi/darzi/config"
	"github.com/priyadarshi/darzi/pkg/cache"
	"github.com/priyadarshi/darzi/pkg/database"
	"github.com/priyadarshi/darzi/pkg/event"
	"github.com/priyadarshi/darzi/pkg/logger"
	"github.com/priyadarshi/darzi/pkg/migration"
	"github.com/priyadarshi/darzi/pkg/router"
	"github.com/priyadarshi/darzi/pkg/schedule"
	"github.com/priyadarshi/darzi/pkg/ws"
	"gorm.io/gorm"
)

// NewRouter builds the full route table. Shared with the route:list
// command, which never serves requests.
func NewRouter(db *gorm.DB, hub *ws.Hub) *router.Router {
	r := router.New()
	routes.Register(r, db, hub)
	return r
}

// Run starts the application and blocks until SIGINT/SIGTERM or a fatal
// listener error. A production deployment without an externally supplied
// signing key refuses to start.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := config.CheckProduction(); err != nil {
		return err
	}

	closeLogs, err := logger.Setup()
	if err != nil {
		logger.Warn("mongo log sink unavailable", "error", err)
	}
	defer closeLogs()

	if err := database.Connect(); err != nil {
		return err
	}
	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	// Order status changes go out on the live feed. The order service
	// already drops its own cache entries on every write.
	event.Listen(services.EventOrderStatusChanged, func(payload interface{}) {
		hub.BroadcastJSON(payload)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs.RegisterDueDateReminder(database.DB)
	go schedule.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           NewRouter(database.DB, hub).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
