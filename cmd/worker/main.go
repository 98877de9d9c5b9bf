package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/app"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/audit"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/products"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/platform/db"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	auditLogger := shared.NewAuditLogger(pool)
	productService := products.NewService(products.NewRepository(pool), auditLogger, logger)
	auditService := audit.NewService(audit.NewRepository(pool), logger)

	mailer, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := mailer.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	lowStockJob := jobs.NewLowStockScanJob(productService, mailer, logger)
	retentionJob := jobs.NewAuditRetentionJob(auditService, logger)

	lowStockTask, err := jobs.NewLowStockScanTask(cfg.StockAlertTo, cfg.StockAlertFrom)
	if err != nil {
		logger.Error("build low stock task", slog.Any("error", err))
		os.Exit(1)
	}
	retentionDays := int(cfg.AuditRetention / (24 * time.Hour))
	retentionTask, err := jobs.NewAuditRetentionTask(retentionDays)
	if err != nil {
		logger.Error("build audit retention task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeLowStockScan, Handler: lowStockJob.Handle},
			{Type: jobs.TaskTypeAuditRetention, Handler: retentionJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 7 * * *", Task: lowStockTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 3 * * 0", Task: retentionTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
