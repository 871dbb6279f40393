package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/lamdn/circura/internal/borrow"
	borrowStore "github.com/lamdn/circura/internal/borrow/store"
	"github.com/lamdn/circura/internal/catalog"
	catalogStore "github.com/lamdn/circura/internal/catalog/store"
	"github.com/lamdn/circura/internal/config"
	"github.com/lamdn/circura/internal/database"
	circuraHttp "github.com/lamdn/circura/internal/http"
	"github.com/lamdn/circura/internal/http/auth"
	borrowHandler "github.com/lamdn/circura/internal/http/borrow"
	catalogHandler "github.com/lamdn/circura/internal/http/catalog"
	importHandler "github.com/lamdn/circura/internal/http/importcsv"
	settingsHandler "github.com/lamdn/circura/internal/http/settings"
	"github.com/lamdn/circura/internal/importer"
	"github.com/lamdn/circura/internal/notifier"
	"github.com/lamdn/circura/internal/settings"
	settingsStore "github.com/lamdn/circura/internal/settings/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		borrowService   = borrow.NewService(borrowStore.New(db))
		catalogService  = catalog.NewService(catalogStore.New(db))
		settingsService = settings.NewService(settingsStore.New(db))
		importService   = importer.NewService()
		notify          = notifier.New(cfg.Notify.WebhookURL, slog.Default())
	)

	var (
		authMW    = auth.NewMiddleware(cfg.Auth.Secret)
		borrowH   = borrowHandler.NewHandler(borrowService, settingsService, notify)
		catalogH  = catalogHandler.NewHandler(catalogService)
		settingsH = settingsHandler.NewHandler(settingsService)
		importH   = importHandler.NewHandler(importService, catalogService)
	)

	router := circuraHttp.New(authMW, borrowH, catalogH, settingsH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
