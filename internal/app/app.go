// Package app assembles and runs the record service: it picks the store
// backend from the configured DSN, attaches the optional redis change
// fan, seeds default data when asked to, and serves the web interface
// until an OS signal stops it.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sijil-app/sijil/internal/config"
	"github.com/sijil-app/sijil/internal/logging"
	"github.com/sijil-app/sijil/internal/metrics"
	"github.com/sijil-app/sijil/internal/reconcile"
	"github.com/sijil-app/sijil/internal/seed"
	"github.com/sijil-app/sijil/internal/session"
	"github.com/sijil-app/sijil/internal/store"
	"github.com/sijil-app/sijil/internal/web"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	store  store.Store
	rdb    *redis.Client
	fan    *store.RedisFan
	web    *web.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout)

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	app := &App{config: cfg, logger: logger, store: st}

	// The redis fan only matters when several instances share one SQL
	// database; the in-memory backend is single-instance by nature.
	if sqlStore, ok := st.(*store.SQL); ok && cfg.RedisAddr != "" {
		app.rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		app.fan = store.NewRedisFan(app.rdb, logger)
		sqlStore.SetNotifier(app.fan)
	}

	if cfg.SeedOnStart {
		if _, err := seed.Run(ctx, st, logger); err != nil {
			st.Close()
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	m := metrics.New()
	sessions := session.NewManager(st, cfg.SecretKey, cfg.SessionValidity, logger)
	reconciler := reconcile.New(st, logger, m)
	app.web = web.NewServer(st, sessions, reconciler, m, logger, cfg.AllowedOrigins)

	return app, nil
}

// openStore selects the backend from the DSN: empty means in-memory,
// anything else goes to the SQL store which sniffs sqlite vs postgres.
func openStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (store.Store, error) {
	if cfg.DatabaseDSN == "" {
		logger.Info(ctx, "using in-memory store")
		return store.NewMemory(logger), nil
	}
	return store.OpenSQL(ctx, cfg.DatabaseDSN, logger)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:    app.config.HTTPAddr,
		Handler: app.web.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "http server listening", "addr", app.config.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "http server error", "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	if app.fan != nil {
		sqlStore := app.store.(*store.SQL)
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.fan.Run(ctx, sqlStore.HandleRemote)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "store close error", "error", err)
	}
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Error(ctx, "redis close error", "error", err)
		}
	}

	app.logger.Info(ctx, "app stopped")
}
