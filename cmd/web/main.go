package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/csemotors/csemotors-go/internal/config"
	"github.com/csemotors/csemotors-go/internal/crypto"
	"github.com/csemotors/csemotors-go/internal/handler"
	"github.com/csemotors/csemotors-go/internal/repository"
	"github.com/csemotors/csemotors-go/internal/service"
	"github.com/csemotors/csemotors-go/internal/session"
	"github.com/csemotors/csemotors-go/internal/view"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	slog.SetDefault(newLogger(cfg))

	db, err := repository.NewDB(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database open failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// The site still serves the fallback navigation while the database is down.
	if err := repository.Migrate(context.Background(), db, cfg.DBDriver); err != nil {
		slog.Warn("database migration failed", "error", err)
	}

	tokens := crypto.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	accounts := service.NewAccountService(repository.NewAccountRepository(db), tokens)
	inventory := service.NewInventoryService(repository.NewInventoryRepository(db))

	notices := session.New(cfg.SessionSecret, cfg.SecureCookies())
	render, err := view.NewRenderer(notices)
	if err != nil {
		slog.Error("template parse failed", "error", err)
		os.Exit(1)
	}

	router := handler.NewRouter(handler.Deps{
		Accounts:     accounts,
		Inventory:    inventory,
		Tokens:       tokens,
		Notices:      notices,
		Render:       render,
		Nav:          view.NewNavCache(inventory, cfg.NavCacheTTL, cfg.NavQueryTimeout),
		StaticDir:    cfg.StaticDir,
		SecureCookie: cfg.SecureCookies(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
