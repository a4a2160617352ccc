package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/user/audit-service/internal/adapter/chromedp_browser"
	"github.com/user/audit-service/internal/adapter/lighthouse"
	postgres_adapter "github.com/user/audit-service/internal/adapter/postgres"
	redis_adapter "github.com/user/audit-service/internal/adapter/redis"
	ops "github.com/user/audit-service/internal/delivery/http"
	"github.com/user/audit-service/internal/input"
	"github.com/user/audit-service/internal/report"
	"github.com/user/audit-service/internal/repository"
	"github.com/user/audit-service/internal/usecase"
	"github.com/user/audit-service/pkg/config"
	"github.com/user/audit-service/pkg/logger"
	"github.com/user/audit-service/pkg/metrics"
)

func main() {
	// Environment variables may be set directly; a missing .env is fine.
	_ = godotenv.Load()

	inputPath := flag.String("input", "urls.csv", "CSV file with url and optional description columns")
	outputRoot := flag.String("out", "./audits", "Root directory for audit artifacts")
	flag.Parse()

	// --- Configuration ---
	cfg := config.Load()

	// --- Logger ---
	logger.Init(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	slog.Info("Logger initialized", "level", cfg.LogLevel)

	// --- Metrics ---
	metrics.Init()
	if cfg.MetricsAddr != "" {
		ops.StartOpsServer(cfg.MetricsAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Input ---
	targets, err := input.LoadTargets(*inputPath)
	if err != nil {
		slog.Error("Failed to load target list", "path", *inputPath, "error", err)
		os.Exit(1)
	}
	if len(targets) == 0 {
		slog.Error("Target list is empty", "path", *inputPath)
		os.Exit(1)
	}
	slog.Info("Loaded targets", "path", *inputPath, "count", len(targets))

	if err := os.MkdirAll(*outputRoot, 0o755); err != nil {
		slog.Error("Failed to create output root", "path", *outputRoot, "error", err)
		os.Exit(1)
	}

	// --- Optional sinks ---
	var history repository.HistoryRepository
	if cfg.PostgresHost != "" {
		connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
		dbpool, err := pgxpool.New(ctx, connString)
		if err != nil {
			slog.Error("Unable to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbpool.Close()

		historyRepo := postgres_adapter.NewHistoryRepo(dbpool)
		if err := historyRepo.EnsureSchema(ctx); err != nil {
			slog.Error("Unable to prepare audit_history schema", "error", err)
			os.Exit(1)
		}
		history = historyRepo
		slog.Info("Audit history sink enabled", "host", cfg.PostgresHost)
	}

	var scoreCache repository.ScoreCacheRepository
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			slog.Error("Unable to connect to Redis", "error", err)
			os.Exit(1)
		}
		scoreCache = redis_adapter.NewScoreCache(rdb)
		slog.Info("Score cache enabled", "addr", cfg.RedisAddr)
	}

	// --- Adapters ---
	browser, err := chromedp_browser.NewChromedpBrowser(cfg.ChromePath)
	if err != nil {
		slog.Error("Failed to initialize browser adapter", "error", err)
		os.Exit(1)
	}
	engine := lighthouse.NewRunner(cfg.LighthousePath, cfg.EngineTimeout)

	// --- Use Cases ---
	resolver := usecase.NewObstructionResolver(cfg.QuiescentTimeout)
	runner := usecase.NewAuditRunner(browser, engine, resolver, *outputRoot, cfg.NavigationTimeout)
	orchestrator := usecase.NewBatchOrchestrator(
		runner,
		report.NewReporter(),
		history,
		scoreCache,
		*outputRoot,
		cfg.JobDelay,
		cfg.ScoreCacheExpiry,
	)

	// --- Batch ---
	ledger, err := orchestrator.RunBatch(ctx, targets)
	if err != nil {
		slog.Error("Batch failed", "error", err)
		os.Exit(1)
	}
	if ledger.Len() == 0 {
		slog.Error("Batch produced no ledger entries")
		os.Exit(1)
	}

	slog.Info("Done", "run_id", ledger.RunID, "entries", ledger.Len(), "output", *outputRoot)
}
