package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/products"
)

type stubLister struct {
	low []products.Product
	err error
}

func (s stubLister) ListBelowMinimum(context.Context) ([]products.Product, error) {
	return s.low, s.err
}

type captureMailer struct {
	sent []SendEmailPayload
	err  error
}

func (m *captureMailer) EnqueueSendEmail(_ context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, payload)
	return &asynq.TaskInfo{}, nil
}

func lowProduct(name string, stock, minimum int) products.Product {
	return products.Product{
		Name:          name,
		Brand:         "NorteCan",
		PackageFormat: "saco 15kg",
		SalePrice:     decimal.RequireFromString("27.90"),
		Stock:         stock,
		MinimumStock:  minimum,
	}
}

func TestLowStockScanQueuesSummaryEmail(t *testing.T) {
	mailer := &captureMailer{}
	job := NewLowStockScanJob(stubLister{low: []products.Product{
		lowProduct("Pienso perro adulto", 3, 10),
		lowProduct("Pienso cachorro", 1, 6),
	}}, mailer, nil)

	task, err := NewLowStockScanTask("compras@gestor.local", "no-reply@gestor.local")
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "compras@gestor.local", mailer.sent[0].To)
	require.Contains(t, mailer.sent[0].Subject, "2 articles")
	require.Contains(t, mailer.sent[0].Body, "Pienso cachorro")
	require.Contains(t, mailer.sent[0].Body, "stock 1, minimum 6")
}

func TestLowStockScanNothingUnderMinimum(t *testing.T) {
	mailer := &captureMailer{}
	job := NewLowStockScanJob(stubLister{}, mailer, nil)

	task, err := NewLowStockScanTask("compras@gestor.local", "")
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	require.Empty(t, mailer.sent)
}

func TestLowStockScanPropagatesListError(t *testing.T) {
	boom := errors.New("pool exhausted")
	job := NewLowStockScanJob(stubLister{err: boom}, nil, nil)

	task, err := NewLowStockScanTask("compras@gestor.local", "")
	require.NoError(t, err)

	require.ErrorIs(t, job.Handle(context.Background(), task), boom)
}

func TestLowStockScanBadPayloadSkipsRetry(t *testing.T) {
	job := NewLowStockScanJob(stubLister{}, nil, nil)
	task := asynq.NewTask(TaskTypeLowStockScan, []byte("{not json"))

	require.ErrorIs(t, job.Handle(context.Background(), task), asynq.SkipRetry)
}

type stubPruner struct {
	days    []int
	removed int64
	err     error
}

func (p *stubPruner) Prune(_ context.Context, days int) (int64, error) {
	p.days = append(p.days, days)
	return p.removed, p.err
}

func TestAuditRetentionPrunesConfiguredDays(t *testing.T) {
	pruner := &stubPruner{removed: 42}
	job := NewAuditRetentionJob(pruner, nil)

	task, err := NewAuditRetentionTask(365)
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, []int{365}, pruner.days)
}

func TestAuditRetentionRejectsNonPositiveDays(t *testing.T) {
	pruner := &stubPruner{}
	job := NewAuditRetentionJob(pruner, nil)

	task, err := NewAuditRetentionTask(0)
	require.NoError(t, err)

	require.ErrorIs(t, job.Handle(context.Background(), task), asynq.SkipRetry)
	require.Empty(t, pruner.days)
}
