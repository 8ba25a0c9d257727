package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/application/sales"
	"github.com/jhoicas/retail-pos-api/internal/domain"
)

// SaleHandler maneja la liquidación y consulta de ventas (protegido).
type SaleHandler struct {
	settle  *sales.SettleUseCase
	queries *sales.QueryUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(settle *sales.SettleUseCase, queries *sales.QueryUseCase) *SaleHandler {
	return &SaleHandler{settle: settle, queries: queries}
}

// Create godoc
// @Summary      Liquidar una venta
// @Description  Descuenta el stock renglón por renglón, crea la venta y
//
//	registra el cobro contra la caja abierta del cajero; todo o nada.
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "branch_id, items, payment_method, discount"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      412   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.settle.Settle(c.Context(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
		case errors.Is(err, domain.ErrNoOpenSession):
			return c.Status(fiber.StatusPreconditionFailed).JSON(dto.ErrorResponse{Code: "NO_OPEN_SESSION", Message: "debe abrir caja antes de vender"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return inventoryError(c, err)
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrPresentationNotFound), errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// PosProducts godoc
// @Summary      Catálogo vendible para el POS
// @Description  Productos activos con stock agregado entre sucursales.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "Nombre, código interno o código de barras"
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Success      200  {array}  dto.PosProductResponse
// @Router       /api/sales/products [get]
func (h *SaleHandler) PosProducts(c *fiber.Ctx) error {
	list, err := h.queries.PosProducts(c.Context(), c.Query("search"), c.Query("category_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.queries.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(sale)
}

// GetByNumber godoc
// @Summary      Obtener venta por número
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        number  path  string  true  "Número de venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/number/{number} [get]
func (h *SaleHandler) GetByNumber(c *fiber.Ctx) error {
	sale, err := h.queries.GetSaleByNumber(c.Context(), c.Params("number"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(sale)
}
