package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/categorylist"
	categoryListStore "github.com/MrJamesThe3rd/tally/internal/categorylist/store"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	categoryListHandler "github.com/MrJamesThe3rd/tally/internal/http/categorylist"
	healthHandler "github.com/MrJamesThe3rd/tally/internal/http/health"
	receiptHandler "github.com/MrJamesThe3rd/tally/internal/http/receipt"
	txHandler "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	translationHandler "github.com/MrJamesThe3rd/tally/internal/http/translation"
	"github.com/MrJamesThe3rd/tally/internal/logging"
	"github.com/MrJamesThe3rd/tally/internal/receipt"
	receiptStore "github.com/MrJamesThe3rd/tally/internal/receipt/store"
	"github.com/MrJamesThe3rd/tally/internal/translation"
	translationStore "github.com/MrJamesThe3rd/tally/internal/translation/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.App.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	var (
		translationService  = translation.NewService(translationStore.New(db))
		categoryListService = categorylist.NewService(categoryListStore.New(db))
		receiptService      = receipt.NewService(receiptStore.New(db), translationService,
			receipt.WithWorkers(cfg.Receipt.TranslateWorkers))
	)

	seeded, err := translationService.EnsureDefaults(ctx)
	if err != nil {
		return err
	}

	defaultList, err := categoryListService.EnsureDefault(ctx)
	if err != nil {
		return fmt.Errorf("ensuring default category list: %w", err)
	}

	slog.Info("seed data ready", "translations_added", seeded, "default_list", defaultList.Name)

	router := tallyHttp.New(tallyHttp.Handlers{
		Health:        healthHandler.NewHandler(cfg.App.Version),
		Transactions:  txHandler.NewHandler(categoryListService, cfg.Server.UploadMaxBytes),
		Receipts:      receiptHandler.NewHandler(receiptService, cfg.Server.UploadMaxBytes),
		Translations:  translationHandler.NewHandler(translationService),
		CategoryLists: categoryListHandler.NewHandler(categoryListService),
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
