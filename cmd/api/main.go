package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/retail-pos-api/internal/application/auth"
	"github.com/jhoicas/retail-pos-api/internal/application/cash"
	"github.com/jhoicas/retail-pos-api/internal/application/catalog"
	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/application/sales"
	"github.com/jhoicas/retail-pos-api/internal/application/usecase"
	"github.com/jhoicas/retail-pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/retail-pos-api/internal/interfaces/http"
	"github.com/jhoicas/retail-pos-api/pkg/config"
	"github.com/jhoicas/retail-pos-api/pkg/logger"
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

	// Repositorios de lectura sobre el pool; las mutaciones van por txRunner.
	branchRepo := postgres.NewBranchRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	presentationRepo := postgres.NewPresentationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	sessionRepo := postgres.NewCashSessionRepository(pool)
	cashMovementRepo := postgres.NewCashMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockLedger := ledger.NewStockLedger(txRunner, productRepo, branchRepo)
	transferUC := ledger.NewTransferUseCase(txRunner, productRepo, branchRepo)
	historyUC := ledger.NewHistoryUseCase(movementRepo, stockRepo)

	resolver := catalog.NewResolver(productRepo, presentationRepo)
	productUC := catalog.NewProductUseCase(productRepo, presentationRepo, stockLedger)

	settleUC := sales.NewSettleUseCase(txRunner, resolver, sessionRepo, branchRepo, customerRepo)
	saleQueries := sales.NewQueryUseCase(productRepo, stockRepo, categoryRepo, saleRepo)

	cashUC := cash.NewSessionUseCase(txRunner, sessionRepo, cashMovementRepo, userRepo)

	branchUC := usecase.NewBranchUseCase(branchRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	userUC := usecase.NewUserUseCase(userRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		AuthUC:      authUC,
		ProductUC:   productUC,
		StockLedger: stockLedger,
		TransferUC:  transferUC,
		HistoryUC:   historyUC,
		SettleUC:    settleUC,
		SaleQueries: saleQueries,
		CashUC:      cashUC,
		BranchUC:    branchUC,
		CategoryUC:  categoryUC,
		CustomerUC:  customerUC,
		UserUC:      userUC,
		JWTSecret:   cfg.JWT.Secret,
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
