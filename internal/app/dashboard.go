package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/clients"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/products"
	mdshared "github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/suppliers"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

// DashboardSummary is the landing-page snapshot of the business.
type DashboardSummary struct {
	ActiveClients   int `json:"active_clients"`
	ActiveSuppliers int `json:"active_suppliers"`
	ActiveProducts  int `json:"active_products"`
	LowStock        int `json:"low_stock_products"`
}

// DashboardService aggregates counts from the master-data modules.
type DashboardService struct {
	clients   *clients.Service
	suppliers *suppliers.Service
	products  *products.Service
}

func NewDashboardService(c *clients.Service, s *suppliers.Service, p *products.Service) *DashboardService {
	return &DashboardService{clients: c, suppliers: s, products: p}
}

// Summary loads the four counters concurrently; one failing query fails
// the whole snapshot.
func (d *DashboardService) Summary(ctx context.Context) (DashboardSummary, error) {
	var summary DashboardSummary
	active := shared.StatusActive
	countFilters := mdshared.ListFilters{Page: 1, Limit: 1, Status: &active}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, total, err := d.clients.List(gctx, countFilters)
		summary.ActiveClients = total
		return err
	})
	g.Go(func() error {
		_, total, err := d.suppliers.List(gctx, countFilters)
		summary.ActiveSuppliers = total
		return err
	})
	g.Go(func() error {
		filters := products.Filters{ListFilters: countFilters}
		_, total, err := d.products.List(gctx, filters)
		summary.ActiveProducts = total
		return err
	})
	g.Go(func() error {
		count, err := d.products.CountBelowMinimum(gctx)
		summary.LowStock = count
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardSummary{}, err
	}
	return summary, nil
}
