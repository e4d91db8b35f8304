package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/operata/feedback-portal/internal/config"
	"github.com/operata/feedback-portal/internal/db"
	"github.com/operata/feedback-portal/internal/incidence"
	"github.com/operata/feedback-portal/internal/ingestion"
	"github.com/operata/feedback-portal/internal/refdata"
	"github.com/operata/feedback-portal/internal/repository"
	"github.com/operata/feedback-portal/internal/schema"
	"github.com/operata/feedback-portal/internal/sector"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.Database); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Reference data and schema declarations load once; immutable after.
	registry := schema.NewRegistry()
	referenceData := refdata.Default()

	incidenceRepo := repository.NewIncidenceRepository(conn.Pool)
	logRepo := repository.NewIngestionLogRepository(conn.Pool)

	incidenceSvc := incidence.NewService(incidenceRepo, logger)
	sectorResolver := sector.NewResolver(conflictPolicy(cfg.SectorConflictPolicy), logger)
	ingestionSvc := ingestion.NewService(registry, incidenceSvc, sectorResolver, logRepo, logger)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	mux := http.NewServeMux()
	mux.Handle("/ingest", ingestion.NewHTTPHandler(ingestionSvc))
	mux.Handle("/ingest/logs", ingestion.NewLogsHandler(ingestionSvc))
	mux.Handle("/dropdowns", refdata.NewHTTPHandler(referenceData))

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      corsHandler.Handler(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting feedback portal", zap.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

func buildLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	return zcfg.Build()
}

func conflictPolicy(name string) sector.ConflictPolicy {
	if name == "prefer_foreign_key" {
		return sector.PreferForeignKey{}
	}
	return sector.PreferEmbedded{}
}
