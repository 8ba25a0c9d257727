package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// InventoryHandler maneja movimientos de stock, transferencias e historial (protegido).
type InventoryHandler struct {
	stockLedger *ledger.StockLedger
	transfer    *ledger.TransferUseCase
	history     *ledger.HistoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	stockLedger *ledger.StockLedger,
	transfer *ledger.TransferUseCase,
	history *ledger.HistoryUseCase,
) *InventoryHandler {
	return &InventoryHandler{stockLedger: stockLedger, transfer: transfer, history: history}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, branch_id, kind (taxonomía cerrada), quantity (positiva)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.stockLedger.ApplyMovement(c.Context(), ledger.MovementInput{
		ProductID: in.ProductID,
		BranchID:  in.BranchID,
		Kind:      entity.MovementKind(in.Kind),
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Transfer godoc
// @Summary      Transferir stock entre sucursales
// @Description  Debita el origen y acredita el destino en una sola transacción,
//
//	con una referencia compartida que liga las dos patas.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, from_branch_id, to_branch_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.transfer.Transfer(c.Context(), ledger.TransferInput{
		ProductID:    in.ProductID,
		FromBranchID: in.FromBranchID,
		ToBranchID:   in.ToBranchID,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		Reference: result.Reference,
		Debit:     *toMovementResponse(result.Debit),
		Credit:    *toMovementResponse(result.Credit),
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        branch_id   query  string  false  "Filtrar por sucursal"
// @Param        type        query  string  false  "Grupo: ingreso, salida, transferencia, ajuste"
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.MovementHistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	q.DefaultPage()

	filter := repository.MovementFilter{
		ProductID: q.ProductID,
		BranchID:  q.BranchID,
		Kinds:     ledger.KindsForGroup(q.Group),
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	if q.StartDate != "" {
		t, err := time.Parse("2006-01-02", q.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "start_date inválida (YYYY-MM-DD)"})
		}
		filter.From = &t
	}
	if q.EndDate != "" {
		t, err := time.Parse("2006-01-02", q.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "end_date inválida (YYYY-MM-DD)"})
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	list, total, err := h.history.ListMovements(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return c.JSON(fiber.Map{
		"items": items,
		"page":  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	})
}

// MovementsByReference godoc
// @Summary      Movimientos por referencia
// @Description  Patas de una venta o transferencia, para auditoría.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        reference  path  string  true  "Número de venta o referencia de transferencia"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements/reference/{reference} [get]
func (h *InventoryHandler) MovementsByReference(c *fiber.Ctx) error {
	list, err := h.history.MovementsByReference(c.Context(), c.Params("reference"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return c.JSON(items)
}

// StockByBranch godoc
// @Summary      Existencias por sucursal
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch_id  path   string  true   "Sucursal"
// @Param        limit      query  int     false  "Límite"
// @Param        offset     query  int     false  "Offset"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/inventory/stock/{branch_id} [get]
func (h *InventoryHandler) StockByBranch(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.history.StockByBranch(c.Context(), c.Params("branch_id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StockResponse{
			ProductID: s.ProductID,
			BranchID:  s.BranchID,
			Quantity:  s.Quantity,
			Reserved:  s.Reserved,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return c.JSON(items)
}

// inventoryError mapea errores de dominio del libro a códigos HTTP.
func inventoryError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":       "INSUFFICIENT_STOCK",
			"message":    insufficient.Error(),
			"product_id": insufficient.ProductID,
			"branch_id":  insufficient.BranchID,
			"available":  insufficient.Available,
			"requested":  insufficient.Requested,
			"shortfall":  insufficient.Shortfall(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		BranchID:       m.BranchID,
		Kind:           string(m.Kind),
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		Reference:      m.Reference,
		UserID:         m.UserID,
		CreatedAt:      m.CreatedAt,
	}
}
