package http

import (
	"github.com/gofiber/fiber/v2"

	appcatalog "github.com/heladeria/balanza-api/internal/application/catalog"
	"github.com/heladeria/balanza-api/internal/application/ledger"
	"github.com/heladeria/balanza-api/internal/application/report"
	"github.com/heladeria/balanza-api/internal/application/stock"
	"github.com/heladeria/balanza-api/internal/domain/scan"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC   *ledger.UseCase
	StockUC    *stock.UseCase
	CatalogUC  *appcatalog.UseCase
	ReportUC   *report.UseCase
	ScanBounds scan.Bounds
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", MetricsHandler())

	api := app.Group("/api")

	// Movimientos (entradas y salidas de baldes)
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC, deps.ScanBounds)
	movements.Post("/", movementHandler.Record)
	movements.Get("/", movementHandler.List)
	movements.Delete("/:id", movementHandler.Void)
	movements.Delete("/flavor/:name", movementHandler.ResetFlavor)

	// Catálogo de gustos
	flavors := api.Group("/flavors")
	flavorHandler := NewFlavorHandler(deps.CatalogUC)
	flavors.Get("/", flavorHandler.List)
	flavors.Post("/", flavorHandler.Upsert)
	flavors.Put("/price", flavorHandler.SetPrice)

	// Stock agregado
	stockHandler := NewStockHandler(deps.StockUC)
	api.Get("/stock", stockHandler.Get)

	// Codec del escáner
	scanGroup := api.Group("/scan")
	scanHandler := NewScanHandler(deps.CatalogUC, deps.ScanBounds)
	scanGroup.Get("/decode", scanHandler.Decode)
	scanGroup.Post("/encode", scanHandler.Encode)

	// Reportes
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/movements", reportHandler.List)
	reports.Get("/movements.csv", reportHandler.CSV)
	reports.Get("/movements.xlsx", reportHandler.XLSX)
	reports.Get("/movements.pdf", reportHandler.PDF)
}
