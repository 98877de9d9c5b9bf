package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/products"
)

// StockLister is the slice of the product service the sweep needs.
type StockLister interface {
	ListBelowMinimum(ctx context.Context) ([]products.Product, error)
}

// EmailEnqueuer queues outgoing alert mails.
type EmailEnqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error)
}

// LowStockScanJob checks the catalogue for articles under their minimum
// stock and queues one summary email per run.
type LowStockScanJob struct {
	Products StockLister
	Mailer   EmailEnqueuer
	Logger   *slog.Logger
}

func NewLowStockScanJob(products StockLister, mailer EmailEnqueuer, logger *slog.Logger) *LowStockScanJob {
	return &LowStockScanJob{Products: products, Mailer: mailer, Logger: logger}
}

// Handle executes the sweep.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Products == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := time.Now()
	low, err := j.Products.ListBelowMinimum(ctx)
	if err != nil {
		j.logger().Error("scan failed", slog.Any("error", err))
		return err
	}
	if len(low) == 0 {
		j.logger().Info("no articles under minimum stock", slog.Duration("duration", time.Since(start)))
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "%d articles are under their minimum stock:\n\n", len(low))
	for _, p := range low {
		fmt.Fprintf(&body, "- %s (%s %s): stock %d, minimum %d\n",
			p.Name, p.Brand, p.PackageFormat, p.Stock, p.MinimumStock)
	}

	if j.Mailer != nil && payload.AlertTo != "" {
		_, err := j.Mailer.EnqueueSendEmail(ctx, SendEmailPayload{
			To:      payload.AlertTo,
			Subject: fmt.Sprintf("Stock alert: %d articles under minimum", len(low)),
			Body:    body.String(),
		})
		if err != nil {
			j.logger().Error("enqueue alert email", slog.Any("error", err))
			return err
		}
	}

	j.logger().Info("completed low stock scan",
		slog.Int("under_minimum", len(low)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypeLowStockScan))
	}
	return slog.Default().With(slog.String("job", TaskTypeLowStockScan))
}
