package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/asadero-pos/internal/application/catalog"
	"github.com/tu-usuario/asadero-pos/internal/application/checkout"
	"github.com/tu-usuario/asadero-pos/internal/application/metrics"
	"github.com/tu-usuario/asadero-pos/internal/application/production"
	"github.com/tu-usuario/asadero-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/asadero-pos/internal/interfaces/http"
	"github.com/tu-usuario/asadero-pos/pkg/config"
	"github.com/tu-usuario/asadero-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	goodRepo := postgres.NewGoodRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	metricsRepo := postgres.NewMetricsRepository(pool)

	tracked := metrics.TrackedGoods{
		PrimaryGoodID:   cfg.Tracked.PrimaryGoodID,
		SecondaryGoodID: cfg.Tracked.SecondaryGoodID,
	}

	catalogSnapshot := catalog.NewSnapshot(goodRepo)
	if err := catalogSnapshot.Refresh(ctx); err != nil {
		// El POS puede arrancar sin catálogo; se recarga con /api/catalog/refresh.
		log.Warn().Err(err).Msg("carga inicial del catálogo")
	}

	sessions := checkout.NewRegistry()
	checkoutUC := checkout.NewUseCase(orderRepo, log)
	metricsUC := metrics.NewUseCase(metricsRepo, orderRepo, tracked, log)
	productionUC := production.NewUseCase(productionRepo, metricsUC, tracked, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:     sessions,
		Catalog:      catalogSnapshot,
		CheckoutUC:   checkoutUC,
		MetricsUC:    metricsUC,
		ProductionUC: productionUC,
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
