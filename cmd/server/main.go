package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"nutrisync/internal/config"
	"nutrisync/internal/db"
	"nutrisync/internal/db/mock"
	applog "nutrisync/internal/log"
	"nutrisync/internal/server"
	"nutrisync/internal/usda"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc       = config.Load
	setLogLevelFunc      = applog.SetLevel
	newMockDatabaseFunc  = mock.New
	configureDatabase    = db.Configure
	newServerFunc        = newServer
	subscribeShutdownSig = subscribeSignals
)

func newServer(cfg server.Config) (serverLifecycle, error) {
	return server.New(cfg)
}

func subscribeSignals() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
	return ch, func() { signal.Stop(ch) }
}

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	var database *gorm.DB
	if cfg.Database.UseMock {
		applog.Info(ctx, "using in-memory demo database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	serverCfg := server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Database: database,
		Decimals: cfg.Workspace.Decimals,
	}
	if cfg.USDA.APIKey != "" {
		client, err := usda.NewClient(usda.Config{
			APIKey:   cfg.USDA.APIKey,
			BaseURL:  cfg.USDA.BaseURL,
			Timeout:  cfg.USDA.Timeout,
			PageSize: cfg.USDA.PageSize,
		})
		if err != nil {
			applog.Error(ctx, "failed to configure usda client", "error", err)
			return 1
		}
		serverCfg.Foods = client
	} else {
		applog.Warn(ctx, "USDA_API_KEY not set, food lookup disabled")
	}

	srv, err := newServerFunc(serverCfg)
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "context cancelled, shutting down http server")
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server encountered an error", "error", err)
		return 1
	}
	return 0
}
