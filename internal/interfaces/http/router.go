package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-pos-api/internal/application/auth"
	"github.com/jhoicas/retail-pos-api/internal/application/cash"
	"github.com/jhoicas/retail-pos-api/internal/application/catalog"
	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/application/sales"
	"github.com/jhoicas/retail-pos-api/internal/application/usecase"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *catalog.ProductUseCase
	StockLedger *ledger.StockLedger
	TransferUC  *ledger.TransferUseCase
	HistoryUC   *ledger.HistoryUseCase
	SettleUC    *sales.SettleUseCase
	SaleQueries *sales.QueryUseCase
	CashUC      *cash.SessionUseCase
	BranchUC    *usecase.BranchUseCase
	CategoryUC  *usecase.CategoryUseCase
	CustomerUC  *usecase.CustomerUseCase
	UserUC      *usecase.UserUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Sucursales
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", adminOnly, branchHandler.Update)

	// Categorías
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Post("/ensure-default-presentations", adminOnly, productHandler.EnsureDefaultPresentations)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Deactivate)
	products.Post("/:id/presentations", adminOnly, productHandler.AddPresentation)
	products.Get("/:id/presentations", productHandler.ListPresentations)
	products.Delete("/:id/presentations/:presentation_id", adminOnly, productHandler.RemovePresentation)

	// Inventario
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockLedger, deps.TransferUC, deps.HistoryUC)
	inventory.Post("/movements", adminOnly, inventoryHandler.RegisterMovement)
	inventory.Get("/movements", inventoryHandler.ListMovements)
	inventory.Get("/movements/reference/:reference", inventoryHandler.MovementsByReference)
	inventory.Post("/transfers", adminOnly, inventoryHandler.Transfer)
	inventory.Get("/stock/:branch_id", inventoryHandler.StockByBranch)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SettleUC, deps.SaleQueries)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/products", saleHandler.PosProducts)
	salesGroup.Get("/number/:number", saleHandler.GetByNumber)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Caja
	cashGroup := protected.Group("/cash")
	cashHandler := NewCashHandler(deps.CashUC)
	cashGroup.Post("/sessions", cashHandler.Open)
	cashGroup.Get("/sessions/current", cashHandler.Status)
	cashGroup.Get("/sessions/:id", cashHandler.Detail)
	cashGroup.Post("/sessions/:id/close", cashHandler.Close)
	cashGroup.Post("/movements", cashHandler.RecordMovement)
	cashGroup.Get("/movements/recent", cashHandler.RecentMovements)
	cashGroup.Get("/overview", adminOnly, cashHandler.Overview)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Put("/:id", customerHandler.Update)

	// Usuarios (solo ADMINISTRADOR)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)
}
