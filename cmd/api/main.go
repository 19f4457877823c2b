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
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	appfab "github.com/decortina/ventas-api/internal/application/fabrication"
	"github.com/decortina/ventas-api/internal/application/orders"
	"github.com/decortina/ventas-api/internal/application/pipeline"
	"github.com/decortina/ventas-api/internal/application/ports"
	"github.com/decortina/ventas-api/internal/application/quotes"
	"github.com/decortina/ventas-api/internal/infrastructure/memory"
	infrapdf "github.com/decortina/ventas-api/internal/infrastructure/pdf"
	"github.com/decortina/ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/decortina/ventas-api/internal/interfaces/http"
	"github.com/decortina/ventas-api/pkg/config"
	"github.com/decortina/ventas-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

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

	prospectRepo := postgres.NewProspectRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clock := ports.SystemClock{}
	cache := memory.NewProspectCache()

	convertUC := orders.NewConvertQuoteUseCase(txRunner, quoteRepo, orderRepo, clock, orders.ConvertConfig{
		DepositPercentage:   decimal.NewFromFloat(cfg.Ventas.DepositPercentage),
		FabricationLeadDays: cfg.Ventas.FabricationLeadDays,
	})
	prospectUC := pipeline.NewProspectUseCase(prospectRepo, cache, clock)
	transitionUC := pipeline.NewTransitionUseCase(txRunner, prospectRepo, cache, convertUC, clock, log)

	quoteBuilderUC := quotes.NewBuilderUseCase(txRunner, prospectRepo, clock, quotes.BuilderConfig{
		ValidityDays:      cfg.Ventas.QuoteValidityDays,
		DefaultPricePerM2: decimal.NewFromFloat(cfg.Ventas.DefaultPricePerM2),
	})
	quoteStatusUC := quotes.NewStatusUseCase(quoteRepo)

	pdfGenerator := infrapdf.NewMarotoQuoteGenerator(cfg.App.Name)
	quotePDFUC := quotes.NewPDFUseCase(quoteRepo, prospectRepo, pdfGenerator)

	orderUC := orders.NewOrderUseCase(orderRepo)
	progressUC := appfab.NewProgressUseCase(orderRepo, clock)

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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProspectUC:   prospectUC,
		TransitionUC: transitionUC,
		QuoteBuilder: quoteBuilderUC,
		QuoteStatus:  quoteStatusUC,
		QuotePDF:     quotePDFUC,
		OrderUC:      orderUC,
		ConvertUC:    convertUC,
		ProgressUC:   progressUC,
		Clock:        clock,
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
