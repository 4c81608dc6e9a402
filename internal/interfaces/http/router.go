package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/tienda-admin-api/internal/application/analytics"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	OrderUC     *usecase.OrderUseCase
	CacheUC     *usecase.CacheUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ExportUC    *appanalytics.ExportUseCase
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestID(), RequestLogger(deps.Log))

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Órdenes (sin PUT: no se editan)
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Delete("/:id", orderHandler.Delete)

	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/categories", dashboardHandler.GetCategories)
	dashboard.Get("/monthly", dashboardHandler.GetMonthly)

	export := api.Group("/export")
	exportHandler := NewExportHandler(deps.ExportUC)
	export.Get("/sales.csv", exportHandler.SalesCSV)
	export.Get("/sales.pdf", exportHandler.SalesPDF)

	cacheGroup := api.Group("/cache")
	cacheHandler := NewCacheHandler(deps.CacheUC)
	cacheGroup.Get("/", cacheHandler.Info)
	cacheGroup.Post("/:collection/refresh", cacheHandler.Refresh)
	cacheGroup.Delete("/:collection", cacheHandler.Clear)
}
