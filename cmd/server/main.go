package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"adsplanner/internal/delivery"
	"adsplanner/internal/domain"
	"adsplanner/internal/infrastructure"
	"adsplanner/internal/usecase"
	"adsplanner/pkg/config"
	"adsplanner/pkg/logger"
	"adsplanner/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info("Starting server")

	m := metrics.New()

	workspaceRepo, listRepo, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open storage")
	}
	defer closeStore()

	var remote domain.RemoteClient
	if cfg.Remote.FeedURL != "" || cfg.Remote.SinkURL != "" {
		remote = infrastructure.NewRemoteClient(infrastructure.RemoteClientConfig{
			FeedURL:    cfg.Remote.FeedURL,
			SinkURL:    cfg.Remote.SinkURL,
			SinkSecret: cfg.Remote.SinkSecret,
			Timeout:    cfg.Remote.Timeout,
			RateLimit:  float64(cfg.Remote.RateLimitPerSecond),
		}, log, m)
		log.WithFields(map[string]any{
			"feed": cfg.Remote.FeedURL != "",
			"sink": cfg.Remote.SinkURL != "",
		}).Info("Remote provider configured")
	}

	importService := usecase.NewImportService(workspaceRepo, remote, log, m)
	workspaceService := usecase.NewWorkspaceService(workspaceRepo, listRepo, remote, log, m)
	listService := usecase.NewNegativeListService(listRepo, log, m)
	conflictService := usecase.NewConflictService(workspaceRepo, listRepo, log, m)

	seed, err := infrastructure.LoadNegativeLists(cfg.Negative.SeedFile)
	if err != nil {
		log.WithError(err).Fatal("Failed to load negative keyword lists")
	}
	if _, err := listService.SeedDefaults(context.Background(), seed); err != nil {
		log.WithError(err).Fatal("Failed to seed negative keyword lists")
	}

	handlers := delivery.NewHTTPHandlers(importService, workspaceService, listService, conflictService, cfg.Import.MaxUploadBytes, log)
	router := delivery.NewHTTPRouter(handlers, delivery.RouterConfig{
		RequestTimeout:     cfg.Server.RequestTimeout,
		RateLimitPerSecond: float64(cfg.Server.RateLimitPerSecond),
		RateLimitBurst:     cfg.Server.RateLimitBurst,
	}, log, m)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router.SetupRoutes(),
	}

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("addr", server.Addr).Info("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-sigChan
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Error during shutdown")
	}

	log.Info("Server stopped")
}

func openStore(cfg *config.Config, log *logger.Logger) (domain.WorkspaceRepository, domain.NegativeListRepository, func(), error) {
	if cfg.Storage.Driver != config.DriverSQLite {
		return infrastructure.NewMemoryWorkspaceRepository(log),
			infrastructure.NewMemoryNegativeListRepository(log),
			func() {}, nil
	}

	db, err := infrastructure.OpenSQLite(cfg.Storage.SQLitePath)
	if err != nil {
		return nil, nil, nil, err
	}
	log.WithField("path", cfg.Storage.SQLitePath).Info("Using sqlite storage")

	return infrastructure.NewSQLiteWorkspaceRepository(db, log),
		infrastructure.NewSQLiteNegativeListRepository(db, log),
		func() { db.Close() }, nil
}
