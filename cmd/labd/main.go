package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joseph-ayodele/bloodwork-analyzer/internal/async"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/common"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/export"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/extract"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/ingest"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/pipeline"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
	repo "github.com/joseph-ayodele/bloodwork-analyzer/internal/repository"
	svc "github.com/joseph-ayodele/bloodwork-analyzer/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, err := registry.Load(cfg.Extract.CataloguePath, logger)
	if err != nil {
		logger.Error("failed to load nutrient catalogue", "path", cfg.Extract.CataloguePath, "error", err)
		os.Exit(1)
	}
	extractor := extract.New(reg, extract.WithLogger(logger))

	// Storage: postgres when DB_URL is set, otherwise in-memory.
	var (
		reports repo.LabReportRepository
		results repo.NutrientResultRepository
	)
	if cfg.Database.DSN != "" {
		pool, err := repo.Open(ctx, repo.Config{
			DSN:              cfg.Database.DSN,
			MaxConns:         cfg.Database.MaxConns,
			MinConns:         cfg.Database.MinConns,
			MaxConnLifetime:  cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
			DialTimeout:      cfg.Database.DialTimeout,
			StatementTimeout: cfg.Database.StatementTimeout,
		}, logger)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer repo.Close(pool, logger)
		if err := repo.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		if err := repo.EnsureSchema(ctx, pool, logger); err != nil {
			logger.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		reports = repo.NewLabReportRepository(pool, logger)
		results = repo.NewNutrientResultRepository(pool, logger)
	} else {
		logger.Warn("DB_URL not set, using in-memory store")
		mem := repo.NewMemoryStore()
		reports, results = mem, mem
	}

	processor := pipeline.NewProcessor(logger, reg, extractor, reports, results, cfg.Extract.MinResults)
	queue := async.NewProcessorQueue(processor, logger,
		async.WithWorkers(cfg.Extract.Workers),
		async.WithQueueSize(cfg.Extract.QueueSize),
	)

	if cfg.Ingest.WatchDir != "" {
		ingestService := ingest.NewService(reports, queue, logger)
		go func() {
			err := ingestService.Run(ctx, ingest.WatchConfig{
				Roots:       []string{cfg.Ingest.WatchDir},
				InitialScan: true,
				Debounce:    cfg.Ingest.Debounce,
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("ingest watcher stopped", "error", err)
			}
		}()
	}

	exporter := export.NewService(reports, results, logger)
	api := svc.NewServer(logger, reg, extractor, reports, results, exporter, queue)

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: api.Router(),
	}
	logger.Info("bloodwork-analyzer listening", "addr", cfg.Server.HTTPAddr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown interrupted", "error", err)
	}
}
