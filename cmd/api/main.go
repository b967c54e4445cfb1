package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talentnet-backend/infrastructure/config"
	"talentnet-backend/infrastructure/di"
	"talentnet-backend/interfaces/http/rest"
	"talentnet-backend/interfaces/http/rest/handlers"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger
	defer logger.Sync()

	// Rebuild the in-memory graph from the edge journal before serving
	if err := rebuildGraph(ctx, container); err != nil {
		logger.Fatal("Failed to rebuild graph from journal", zap.Error(err))
	}

	router := rest.NewRouter(
		handlers.NewNetworkHandler(container.Network, container.Traversal, logger),
		handlers.NewFeedHandler(container.Feed, cfg.FeedDeadline, logger),
		handlers.NewRecommendationHandler(container.Recommender, cfg.FeedDeadline, logger),
		container.TokenValidator,
		container.RateLimiter,
		container.Tracer,
		cfg,
		logger,
	)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.Int("edges", container.Store.EdgeCount()),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
}

// rebuildGraph replays the edge journal into the store. Replay bypasses
// the state machine and mutation hooks; journal entries are already the
// outcome of validated transitions.
func rebuildGraph(ctx context.Context, container *di.Container) error {
	start := time.Now()
	edges, err := container.EdgeRepo.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, edge := range edges {
		container.Store.ApplyEdge(edge)
	}
	container.Logger.Info("Rebuilt graph from journal",
		zap.Int("edges", len(edges)),
		zap.Duration("elapsed", time.Since(start)),
	)
	container.Metrics.RecordGraphSize(ctx, container.Store.EdgeCount())
	return nil
}
