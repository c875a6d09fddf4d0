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

	"github.com/joho/godotenv"

	"github.com/slateapp/slate/internal/app"
	"github.com/slateapp/slate/internal/auth"
	"github.com/slateapp/slate/internal/bills"
	"github.com/slateapp/slate/internal/config"
	slatehttp "github.com/slateapp/slate/internal/http"
	authhttp "github.com/slateapp/slate/internal/http/auth"
	billshttp "github.com/slateapp/slate/internal/http/bills"
	profilehttp "github.com/slateapp/slate/internal/http/profile"
	summaryhttp "github.com/slateapp/slate/internal/http/summary"
	"github.com/slateapp/slate/internal/notify"
	"github.com/slateapp/slate/internal/profile"
	"github.com/slateapp/slate/internal/storage/localcache"
	"github.com/slateapp/slate/internal/storage/sqlite"
	"github.com/slateapp/slate/pkg/logging"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// Remote store (SQLite-backed).
	store, err := sqlite.New(cfg.Data.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize remote store: %w", err)
	}
	defer store.Close()
	slog.Info("Remote store initialized", "database", cfg.Data.DBPath)

	// On-device cache slots.
	cache, err := localcache.New(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize local cache: %w", err)
	}
	slog.Info("Local cache initialized", "dir", cfg.Data.Dir)

	// Reconciliation services, starting anonymous until someone signs in.
	notifier := notify.Log{}
	billSvc := bills.NewService(cache, store, notifier)
	profileSvc := profile.NewService(cache, store, notifier)

	session := app.New(billSvc, profileSvc)
	session.SignOut(context.Background())

	authn := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	handler := slatehttp.New(
		jwtManager,
		authhttp.NewHandler(authn, jwtManager, session),
		billshttp.NewHandler(billSvc),
		profilehttp.NewHandler(profileSvc),
		summaryhttp.NewHandler(billSvc),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	return nil
}
