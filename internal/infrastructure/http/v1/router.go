// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/auth"
	"gestock/internal/domain/catalogs/account"
	"gestock/internal/domain/catalogs/customer"
	"gestock/internal/domain/catalogs/product"
	"gestock/internal/domain/catalogs/store"
	"gestock/internal/domain/catalogs/supplier"
	"gestock/internal/domain/catalogs/warehouse"
	"gestock/internal/domain/documents/stock_entry"
	"gestock/internal/domain/documents/stock_exit"
	"gestock/internal/domain/documents/stock_transfer"
	"gestock/internal/domain/finance/invoice"
	"gestock/internal/domain/finance/transaction"
	"gestock/internal/domain/registers/stock"
	"gestock/internal/domain/reports"
	"gestock/internal/infrastructure/http/v1/handlers"
	"gestock/internal/infrastructure/http/v1/middleware"
	"gestock/internal/infrastructure/storage/postgres"
	"gestock/internal/infrastructure/storage/postgres/auth_repo"
	"gestock/internal/infrastructure/storage/postgres/catalog_repo"
	"gestock/internal/infrastructure/storage/postgres/document_repo"
	"gestock/internal/infrastructure/storage/postgres/finance_repo"
	"gestock/internal/infrastructure/storage/postgres/register_repo"
	"gestock/internal/infrastructure/storage/postgres/report_repo"
	"gestock/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the shared connection pool (health checks).
	Pool *postgres.Pool

	// TxManager routes repository queries through the active transaction.
	TxManager *postgres.TxManager

	// AuditRepo records and serves the audit trail.
	AuditRepo *postgres.AuditRepo

	// Logger for request logging.
	Logger *logger.Logger

	// JWTService issues and validates access tokens.
	JWTService *auth.JWTService

	// AuthConfig tunes login throttling and password rules.
	AuthConfig auth.ServiceConfig
}

// NewRouter creates and configures the Gin router: repositories,
// domain services, handlers and routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories
	sequences := postgres.NewSequenceRepo(cfg.TxManager)
	storeRepo := catalog_repo.NewStoreRepo(cfg.TxManager)
	warehouseRepo := catalog_repo.NewWarehouseRepo(cfg.TxManager)
	supplierRepo := catalog_repo.NewSupplierRepo(cfg.TxManager)
	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	accountRepo := catalog_repo.NewAccountRepo(cfg.TxManager)
	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	entryRepo := document_repo.NewStockEntryRepo(cfg.TxManager)
	exitRepo := document_repo.NewStockExitRepo(cfg.TxManager)
	transferRepo := document_repo.NewStockTransferRepo(cfg.TxManager)
	transactionRepo := finance_repo.NewTransactionRepo(cfg.TxManager)
	invoiceRepo := finance_repo.NewInvoiceRepo(cfg.TxManager)
	userRepo := auth_repo.NewUserRepo(cfg.TxManager)
	reportRepo := report_repo.NewReportRepo(cfg.TxManager)

	// Domain services
	storeSvc := store.NewService(storeRepo)
	warehouseSvc := warehouse.NewService(warehouseRepo)
	supplierSvc := supplier.NewService(supplierRepo)
	customerSvc := customer.NewService(customerRepo)
	productSvc := product.NewService(productRepo)
	accountSvc := account.NewService(accountRepo)
	stockSvc := stock.NewService(stockRepo)
	invoiceSvc := invoice.NewService(invoiceRepo, sequences)
	ledgerSvc := transaction.NewService(transactionRepo, accountRepo, customerRepo, cfg.TxManager, sequences, cfg.AuditRepo)
	entrySvc := stock_entry.NewService(entryRepo, storeRepo, warehouseRepo, supplierRepo, productRepo, accountRepo,
		stockSvc, ledgerSvc, cfg.TxManager, sequences, cfg.AuditRepo)
	exitSvc := stock_exit.NewService(exitRepo, storeRepo, warehouseRepo, customerRepo, productRepo, accountRepo,
		stockSvc, invoiceSvc, ledgerSvc, cfg.TxManager, sequences, cfg.AuditRepo)
	transferSvc := stock_transfer.NewService(transferRepo, storeRepo, warehouseRepo, productRepo,
		stockSvc, cfg.TxManager, sequences, cfg.AuditRepo)
	reportsSvc := reports.NewService(reportRepo, cfg.TxManager)
	authSvc := auth.NewService(userRepo, cfg.TxManager, cfg.JWTService, cfg.AuthConfig)

	// Handlers
	authHandler := handlers.NewAuthHandler(authSvc)
	storeHandler := handlers.NewStoreHandler(storeSvc)
	warehouseHandler := handlers.NewWarehouseHandler(warehouseSvc)
	supplierHandler := handlers.NewSupplierHandler(supplierSvc)
	customerHandler := handlers.NewCustomerHandler(customerSvc, exitSvc, ledgerSvc)
	productHandler := handlers.NewProductHandler(productSvc, stockSvc)
	accountHandler := handlers.NewAccountHandler(accountSvc, ledgerSvc)
	stockHandler := handlers.NewStockHandler(stockSvc, warehouseSvc)
	entryHandler := handlers.NewStockEntryHandler(entrySvc)
	exitHandler := handlers.NewStockExitHandler(exitSvc, invoiceSvc)
	transferHandler := handlers.NewStockTransferHandler(transferSvc)
	transactionHandler := handlers.NewTransactionHandler(ledgerSvc)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceSvc)
	reportsHandler := handlers.NewReportsHandler(reportsSvc)
	auditHandler := handlers.NewAuditHandler(cfg.AuditRepo)

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/auth/login", authHandler.Login)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTService))

		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/change-password", authHandler.ChangePassword)
		protected.POST("/users", authHandler.CreateUser)
		protected.GET("/users", authHandler.ListUsers)

		stores := protected.Group("/stores")
		{
			stores.POST("", storeHandler.Create)
			stores.GET("", storeHandler.List)
			stores.GET("/:id", storeHandler.Get)
			stores.PUT("/:id", storeHandler.Update)
		}

		warehouses := protected.Group("/warehouses")
		{
			warehouses.POST("", warehouseHandler.Create)
			warehouses.GET("", warehouseHandler.List)
			warehouses.GET("/:id", warehouseHandler.Get)
			warehouses.PUT("/:id", warehouseHandler.Update)
			warehouses.GET("/:id/stock", stockHandler.WarehouseLevels)
		}

		suppliers := protected.Group("/suppliers")
		{
			suppliers.POST("", supplierHandler.Create)
			suppliers.GET("", supplierHandler.List)
			suppliers.GET("/:id", supplierHandler.Get)
			suppliers.PUT("/:id", supplierHandler.Update)
		}

		customers := protected.Group("/customers")
		{
			customers.POST("", customerHandler.Create)
			customers.GET("", customerHandler.List)
			customers.GET("/:id", customerHandler.Get)
			customers.PUT("/:id", customerHandler.Update)
			customers.POST("/:id/debt-payments", customerHandler.PayDebt)
			customers.GET("/:id/unpaid-exits", customerHandler.UnpaidExits)
		}

		products := protected.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.GET("/:id/stock", productHandler.Stock)
			products.GET("/:id/movements", productHandler.Movements)
		}

		accounts := protected.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("", accountHandler.List)
			accounts.GET("/:id", accountHandler.Get)
			accounts.PUT("/:id", accountHandler.Update)
			accounts.GET("/:id/transactions", accountHandler.Transactions)
		}

		entries := protected.Group("/stock-entries")
		{
			entries.POST("", entryHandler.Create)
			entries.GET("", entryHandler.List)
			entries.GET("/:id", entryHandler.Get)
			entries.POST("/:id/items", entryHandler.AddItem)
		}

		exits := protected.Group("/stock-exits")
		{
			exits.POST("", exitHandler.Create)
			exits.GET("", exitHandler.List)
			exits.GET("/:id", exitHandler.Get)
			exits.POST("/:id/items", exitHandler.AddItem)
			exits.POST("/:id/payments", exitHandler.AddPayment)
			exits.GET("/:id/invoice", exitHandler.Invoice)
		}

		transfers := protected.Group("/stock-transfers")
		{
			transfers.POST("", transferHandler.Create)
			transfers.GET("", transferHandler.List)
			transfers.GET("/:id", transferHandler.Get)
			transfers.POST("/:id/items", transferHandler.AddItem)
			transfers.POST("/:id/complete", transferHandler.Complete)
			transfers.POST("/:id/cancel", transferHandler.Cancel)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.POST("", transactionHandler.Create)
			transactions.GET("", transactionHandler.List)
			transactions.GET("/:id", transactionHandler.Get)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.GET("", invoiceHandler.List)
			invoices.GET("/:id", invoiceHandler.Get)
		}

		reportRoutes := protected.Group("/reports")
		{
			reportRoutes.GET("/stock", reportsHandler.StockLevels)
			reportRoutes.GET("/low-stock", reportsHandler.LowStock)
			reportRoutes.GET("/customer-debts", reportsHandler.CustomerDebts)
			reportRoutes.GET("/sales-summary", reportsHandler.SalesSummary)
		}

		protected.GET("/audit", auditHandler.List)
	}

	return router
}
