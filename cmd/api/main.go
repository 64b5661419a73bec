package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appcatalog "github.com/heladeria/balanza-api/internal/application/catalog"
	"github.com/heladeria/balanza-api/internal/application/ledger"
	"github.com/heladeria/balanza-api/internal/application/report"
	"github.com/heladeria/balanza-api/internal/application/stock"
	"github.com/heladeria/balanza-api/internal/domain/scan"
	infraexcel "github.com/heladeria/balanza-api/internal/infrastructure/excel"
	infrapdf "github.com/heladeria/balanza-api/internal/infrastructure/pdf"
	"github.com/heladeria/balanza-api/internal/infrastructure/postgres"
	httpRouter "github.com/heladeria/balanza-api/internal/interfaces/http"
	"github.com/heladeria/balanza-api/pkg/config"
	"github.com/heladeria/balanza-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	flavorRepo := postgres.NewFlavorRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	bounds := scan.Bounds{
		EANMaxKg:    cfg.Scan.EANMaxWeightKg,
		LegacyMaxKg: cfg.Scan.LegacyMaxWeightKg,
	}

	ledgerUC := ledger.New(
		txRunner, movementRepo, flavorRepo,
		time.Duration(cfg.Scan.DuplicateWindowSeconds)*time.Second,
	)
	stockUC := stock.New(movementRepo, flavorRepo, cfg.Scan.AggregationScanLimit)
	catalogUC := appcatalog.New(flavorRepo)
	reportUC := report.New(
		movementRepo,
		infrapdf.NewMarotoReportGenerator(),
		infraexcel.NewReportGenerator(),
	)

	if cfg.Catalog.SeedOnStart {
		if err := catalogUC.Seed(ctx, appcatalog.DefaultCatalog()); err != nil {
			log.Error().Err(err).Msg("siembra del catálogo")
		} else {
			log.Info().Msg("catálogo sembrado/completado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Balanza API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:   ledgerUC,
		StockUC:    stockUC,
		CatalogUC:  catalogUC,
		ReportUC:   reportUC,
		ScanBounds: bounds,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
