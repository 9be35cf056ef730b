package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/asadero-pos/internal/application/catalog"
	"github.com/tu-usuario/asadero-pos/internal/application/checkout"
	"github.com/tu-usuario/asadero-pos/internal/application/metrics"
	"github.com/tu-usuario/asadero-pos/internal/application/production"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions     *checkout.Registry
	Catalog      *catalog.Snapshot
	CheckoutUC   *checkout.UseCase
	MetricsUC    *metrics.UseCase
	ProductionUC *production.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// POS: sesiones de venta (carrito + cobro)
	pos := api.Group("/pos/sessions")
	posHandler := NewPOSHandler(deps.Sessions, deps.Catalog, deps.CheckoutUC)
	pos.Post("/", posHandler.CreateSession)
	pos.Get("/:id", posHandler.GetCart)
	pos.Post("/:id/lines", posHandler.AddLine)
	pos.Put("/:id/lines/:goodId", posHandler.SetQuantity)
	pos.Delete("/:id/lines/:goodId", posHandler.RemoveLine)
	pos.Delete("/:id/lines", posHandler.ClearCart)
	pos.Post("/:id/commit", posHandler.Commit)

	// Catálogo vendible (snapshot en memoria)
	cat := api.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.Catalog)
	cat.Get("/goods", catalogHandler.List)
	cat.Post("/refresh", catalogHandler.Refresh)

	// Libro de producción
	prod := api.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	dashboardHandler := NewDashboardHandler(deps.MetricsUC)
	prod.Post("/entries", productionHandler.Register)
	prod.Get("/daily-stats", productionHandler.DailyStats)
	prod.Get("/efficiency", dashboardHandler.Efficiency)

	// Dashboard (solo lectura)
	dash := api.Group("/dashboard")
	dash.Get("/metrics", dashboardHandler.Metrics)
	dash.Get("/low-stock", dashboardHandler.LowStock)
	dash.Get("/transactions", dashboardHandler.Transactions)
}
