// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"kassa/internal/domain/catalogs/account"
	"kassa/internal/domain/catalogs/category"
	"kassa/internal/domain/catalogs/expensecat"
	"kassa/internal/domain/catalogs/location"
	"kassa/internal/domain/catalogs/paymethod"
	"kassa/internal/domain/catalogs/user"
	"kassa/internal/domain/ledger"
	"kassa/internal/domain/report"
	"kassa/internal/infrastructure/http/v1/handlers"
	"kassa/internal/infrastructure/http/v1/middleware"
	"kassa/internal/infrastructure/storage/postgres"
	"kassa/internal/infrastructure/storage/postgres/catalog_repo"
	"kassa/internal/infrastructure/storage/postgres/ledger_repo"
	"kassa/internal/infrastructure/storage/postgres/report_repo"
	"kassa/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (used by health checks).
	Pool *postgres.Pool

	// TxManager runs repository work inside transactions.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// Archiver stores report snapshots on close. Optional.
	Archiver report.Archiver
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories share the TxManager so service transactions propagate.
	accountRepo := catalog_repo.NewAccountRepo(cfg.TxManager)
	methodRepo := catalog_repo.NewPaymentMethodRepo(cfg.TxManager)
	locationRepo := catalog_repo.NewLocationRepo(cfg.TxManager)
	categoryRepo := catalog_repo.NewCategoryRepo(cfg.TxManager)
	expenseCatRepo := catalog_repo.NewExpenseCategoryRepo(cfg.TxManager)
	userRepo := catalog_repo.NewUserRepo(cfg.TxManager)
	reportRepo := report_repo.NewRepo(cfg.TxManager)
	ledgerRepo := ledger_repo.NewRepo(cfg.TxManager)

	accountService := account.NewService(accountRepo, cfg.TxManager)
	methodService := paymethod.NewService(methodRepo, accountService, cfg.TxManager)
	locationService := location.NewService(locationRepo, cfg.TxManager)
	categoryService := category.NewService(categoryRepo, cfg.TxManager)
	expenseCatService := expensecat.NewService(expenseCatRepo, cfg.TxManager)
	userService := user.NewService(userRepo, cfg.TxManager)
	reportService := report.NewService(reportRepo, locationService, methodService, cfg.Archiver, cfg.TxManager)
	ledgerService := ledger.NewService(ledgerRepo, accountService)

	base := handlers.NewBaseHandler()

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerCatalogRoutes(v1, base, accountService, methodService, locationService,
			categoryService, expenseCatService, userService)
		registerReportRoutes(v1, base, reportService)
		registerLedgerRoutes(v1, base, ledgerService)
	}

	return router
}

func registerCatalogRoutes(
	rg *gin.RouterGroup,
	base *handlers.BaseHandler,
	accounts *account.Service,
	methods *paymethod.Service,
	locations *location.Service,
	categories *category.Service,
	expenseCats *expensecat.Service,
	users *user.Service,
) {
	{
		h := handlers.NewAccountHandler(base, accounts)
		g := rg.Group("/accounts")
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	{
		h := handlers.NewPaymentMethodHandler(base, methods)
		g := rg.Group("/payment-methods")
		g.GET("", h.List)
		g.POST("", h.Create)
		g.POST("/reorder", h.Reorder)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		g.POST("/:id/visibility", h.SetVisibility)
	}

	{
		h := handlers.NewLocationHandler(base, locations)
		g := rg.Group("/locations")
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	{
		h := handlers.NewCategoryHandler(base, categories)
		g := rg.Group("/categories")
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.GET("/:id/subcategories", h.Subcategories)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	{
		h := handlers.NewExpenseCategoryHandler(base, expenseCats)
		g := rg.Group("/expense-categories")
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	{
		h := handlers.NewUserHandler(base, users)
		g := rg.Group("/users")
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/by-telegram/:telegramId", h.GetByTelegram)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, service *report.Service) {
	h := handlers.NewReportHandler(base, service)

	g := rg.Group("/reports")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/by-date", h.GetByDate)
	g.GET("/:id", h.Get)
	g.POST("/:id/close", h.Close)
	g.POST("/:id/verify", h.Verify)
	g.PUT("/:id/cash", h.UpdateCash)
	g.POST("/:id/payments", h.AddPayment)
	g.POST("/:id/incomes", h.AddIncome)
	g.POST("/:id/expenses", h.AddExpense)
}

func registerLedgerRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, service *ledger.Service) {
	h := handlers.NewLedgerHandler(base, service)

	rg.GET("/balances", h.Balances)

	g := rg.Group("/accounts/:id")
	g.GET("/balance", h.AccountBalance)
	g.GET("/history", h.AccountHistory)
}
