package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-pos-api/internal/application/cash"
	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/domain"
)

// CashHandler maneja apertura, movimientos y cierre de caja (protegido).
type CashHandler struct {
	uc *cash.SessionUseCase
}

// NewCashHandler construye el handler.
func NewCashHandler(uc *cash.SessionUseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir caja
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "opening_float"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/sessions [post]
func (h *CashHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.Open(c.Context(), GetUserID(c), in)
	if err != nil {
		return cashError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// RecordMovement godoc
// @Summary      Registrar movimiento manual de caja
// @Description  INGRESO_EXTRA, RETIRO o GASTO contra la caja abierta del cajero.
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashMovementRequest  true  "kind, amount, memo"
// @Success      201   {object}  dto.CashMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      412   {object}  dto.ErrorResponse
// @Router       /api/cash/movements [post]
func (h *CashHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.CashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RecordMovement(c.Context(), GetUserID(c), in)
	if err != nil {
		return cashError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// Close godoc
// @Summary      Cerrar caja
// @Description  Replaya los movimientos de la sesión, calcula el saldo
//
//	esperado y la diferencia contra el contado físico declarado.
//
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.CloseSessionRequest  true  "counted_close, notes"
// @Success      200   {object}  dto.CloseSummaryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/sessions/{id}/close [post]
func (h *CashHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	summary, err := h.uc.Close(c.Context(), c.Params("id"), in)
	if err != nil {
		return cashError(c, err)
	}
	return c.JSON(summary)
}

// Status godoc
// @Summary      Estado de la caja del cajero autenticado
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/cash/sessions/current [get]
func (h *CashHandler) Status(c *fiber.Ctx) error {
	open, session, err := h.uc.Status(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"abierta": open, "session": session})
}

// Detail godoc
// @Summary      Detalle de una sesión con sus movimientos
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash/sessions/{id} [get]
func (h *CashHandler) Detail(c *fiber.Ctx) error {
	detail, err := h.uc.Detail(c.Context(), c.Params("id"))
	if err != nil {
		return cashError(c, err)
	}
	return c.JSON(detail)
}

// Overview godoc
// @Summary      Tablero de cajas (solo ADMINISTRADOR)
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashOverviewResponse
// @Router       /api/cash/overview [get]
func (h *CashHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.uc.Overview(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(overview)
}

// RecentMovements godoc
// @Summary      Movimientos de caja del día
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite (default 10)"
// @Success      200  {array}  dto.CashMovementResponse
// @Router       /api/cash/movements/recent [get]
func (h *CashHandler) RecentMovements(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.uc.RecentMovements(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// cashError mapea errores de dominio de caja a códigos HTTP.
func cashError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrSessionAlreadyOpen):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_ALREADY_OPEN", Message: "ya existe una caja abierta"})
	case errors.Is(err, domain.ErrSessionClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_CLOSED", Message: "la caja ya está cerrada"})
	case errors.Is(err, domain.ErrNoOpenSession):
		return c.Status(fiber.StatusPreconditionFailed).JSON(dto.ErrorResponse{Code: "NO_OPEN_SESSION", Message: "no hay una caja abierta"})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUserInactive):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "usuario inactivo"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
