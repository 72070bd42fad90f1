package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/Inventario-admin/docs"
	"github.com/jhoicas/Inventario-admin/internal/application/analytics"
	"github.com/jhoicas/Inventario-admin/internal/application/usecase"
	"github.com/jhoicas/Inventario-admin/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/Inventario-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-admin/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Inventario-admin/internal/interfaces/http"
	"github.com/jhoicas/Inventario-admin/pkg/config"
	"github.com/jhoicas/Inventario-admin/pkg/logger"
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
		Str("backend", cfg.Backend.URL).
		Msg("iniciando aplicación")

	// El backend espera precios como números JSON.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	var sessions storage.Store
	switch cfg.Session.Store {
	case "redis":
		sessions, err = storage.NewRedis(ctx, storage.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Session.TTL())
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
	default:
		sessions = storage.NewMemory(cfg.Session.TTL())
	}
	defer sessions.Close()

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout(), log.Component("backend"))
	authRepo := backend.NewAuthRepository(client)
	productRepo := backend.NewProductRepository(client)
	categoryRepo := backend.NewCategoryRepository(client)
	customerRepo := backend.NewCustomerRepository(client)
	orderRepo := backend.NewOrderRepository(client)
	reportRepo := backend.NewReportRepository(client)

	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)

	// PDF: comprobante de pedidos entregados
	receiptRenderer := infrapdf.NewReceiptRenderer()
	orderUC := usecase.NewOrderUseCase(orderRepo, customerRepo, productRepo, reportRepo, receiptRenderer)

	dashboardUC := analytics.NewDashboardUseCase(productRepo, categoryRepo, customerRepo, reportRepo, cfg.Reports.StockMinimo)
	reportsUC := analytics.NewReportsUseCase(reportRepo, cfg.Reports.StockMinimo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	if cfg.App.Env == "development" {
		app.Use(fiberlogger.New())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Admin",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthRepo: authRepo,
		Sessions: sessions,
		Session: httpRouter.SessionConfig{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL(),
			Secure:     cfg.App.Env == "production",
		},
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		CustomerUC:  customerUC,
		OrderUC:     orderUC,
		DashboardUC: dashboardUC,
		ReportsUC:   reportsUC,
		BackendURL:  cfg.Backend.URL,
		Log:         log.Component("http"),
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
