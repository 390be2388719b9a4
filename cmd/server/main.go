// Package main is the entry point for the kassa API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kassa/internal/config"
	"kassa/internal/domain/report"
	v1 "kassa/internal/infrastructure/http/v1"
	"kassa/internal/infrastructure/storage/postgres"
	"kassa/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting kassa server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.DSN)
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxConnLifetime

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if cfg.Database.Bootstrap {
		if err := postgres.Bootstrap(ctx, pool); err != nil {
			log.Fatalw("failed to bootstrap schema", "error", err)
		}
		log.Info("database schema up to date")
	}

	txManager := postgres.NewTxManager(pool)

	// --- Report archive ---
	var archiver report.Archiver = report.NopArchiver{}
	if cfg.Archive.Enabled {
		archiveService, err := postgres.NewArchiveService(txManager, postgres.ArchiveConfig{
			CompressionLevel:  cfg.Archive.CompressionLevel,
			CompressThreshold: cfg.Archive.CompressThreshold,
		})
		if err != nil {
			log.Fatalw("failed to initialize archive service", "error", err)
		}
		archiver = archiveService
		log.Info("report archive enabled")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:      pool,
		TxManager: txManager,
		Logger:    log,
		Archiver:  archiver,
	})

	// --- HTTP server ---
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
