package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/postdex/internal/config"
	"github.com/kailas-cloud/postdex/internal/db/mongodb"
	logpkg "github.com/kailas-cloud/postdex/internal/logger"
	"github.com/kailas-cloud/postdex/internal/metrics"
	postrepo "github.com/kailas-cloud/postdex/internal/repository/post"
	searchrepo "github.com/kailas-cloud/postdex/internal/repository/search"
	chiTransport "github.com/kailas-cloud/postdex/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/postdex/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/postdex/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/postdex/internal/usecase/health"
	postuc "github.com/kailas-cloud/postdex/internal/usecase/post"
	searchuc "github.com/kailas-cloud/postdex/internal/usecase/search"
	"github.com/kailas-cloud/postdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting postdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.String("database", cfg.Database.Name),
		zap.String("collection", cfg.Database.Collection),
		zap.String("embedding_model", cfg.Embedding.Model),
	)

	metrics.RegisterHTTPMetrics()
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterStoreMetrics()

	// Connect to MongoDB and verify it answers before taking traffic
	store, err := mongodb.NewStore(context.Background(), mongodb.Config{
		URI:      cfg.Database.URI,
		Database: cfg.Database.Name,
		AppName:  version.AppName(),
	})
	if err != nil {
		logger.Fatal("Failed to create MongoDB client", zap.Error(err))
	}

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(context.Background(), readiness); err != nil {
		logger.Fatal("MongoDB not ready", zap.Duration("timeout", readiness), zap.Error(err))
	}
	logger.Info("Pinged your deployment. You successfully connected to MongoDB!")

	embedder := embeddinguc.NewInstrumentedEmbedder(
		openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:   cfg.Embedding.APIKey,
			BaseURL:  cfg.Embedding.BaseURL,
			Model:    cfg.Embedding.Model,
			Provider: cfg.Embedding.Provider,
		}),
		cfg.Embedding.Provider, cfg.Embedding.Model,
	)

	// Repositories
	postRepo := postrepo.New(store, cfg.Database.Collection)
	searchRepo := searchrepo.New(store, searchrepo.Options{
		Collection: cfg.Database.Collection,
		Index:      cfg.Search.Index,
		Path:       cfg.Search.Path,
		K:          cfg.Search.K,
	})

	// Use case services
	postSvc := postuc.New(postRepo)
	searchSvc := searchuc.New(searchRepo, embedder)
	healthSvc := healthuc.New(store, embedder)

	server := chiTransport.NewServer(postSvc, searchSvc, healthSvc)
	handler := chiTransport.NewRouter(server, logger, chiTransport.RouterConfig{
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server is running", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	store.Close(shutdownCtx)

	logger.Info("Server stopped gracefully")
}
