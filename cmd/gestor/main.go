package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/app"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/audit"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/auth"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/clients"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/employees"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/products"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/suppliers"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/masterdata/vatrates"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/platform/cache"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/platform/db"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/purchases"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/returns"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/sales"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/users"
	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "gestor_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager)
	authMW := auth.Middleware{Logger: logger}

	auditLogger := shared.NewAuditLogger(pool)

	clientService := clients.NewService(clients.NewRepository(pool), auditLogger, logger)
	supplierService := suppliers.NewService(suppliers.NewRepository(pool), auditLogger, logger)
	employeeService := employees.NewService(employees.NewRepository(pool), auditLogger, logger)
	vatRateService := vatrates.NewService(vatrates.NewRepository(pool), auditLogger, logger)
	productService := products.NewService(products.NewRepository(pool), auditLogger, logger)
	userService := users.NewService(users.NewRepository(pool), auditLogger, logger)

	purchaseService := purchases.NewService(purchases.NewRepository(pool), productService, auditLogger, logger)
	saleService := sales.NewService(sales.NewRepository(pool), auditLogger, logger)
	returnService := returns.NewService(returns.NewSupplierRepository(pool), returns.NewClientRepository(pool), auditLogger, logger)

	auditService := audit.NewService(audit.NewRepository(pool), logger)

	reportClient := report.NewClient(cfg.GotenbergURL)
	reportHandler := report.NewHandler(reportClient, purchaseService, saleService, logger)

	dashboard := app.NewDashboardService(clientService, supplierService, productService)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		Auth:           authHandler,
		AuthMW:         authMW,
		Clients:        clients.NewHandler(logger, clientService),
		Suppliers:      suppliers.NewHandler(logger, supplierService),
		Employees:      employees.NewHandler(logger, employeeService),
		VATRates:       vatrates.NewHandler(logger, vatRateService),
		Products:       products.NewHandler(logger, productService),
		Users:          users.NewHandler(logger, userService),
		Purchases:      purchases.NewHandler(logger, purchaseService),
		Sales:          sales.NewHandler(logger, saleService),
		Returns:        returns.NewHandler(logger, returnService),
		Audit:          audit.NewHandler(logger, auditService),
		Reports:        reportHandler,
		Dashboard:      dashboard,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
