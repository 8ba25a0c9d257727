package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrPresentationNotFound = errors.New("presentación no encontrada")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidQuantity      = errors.New("la cantidad debe ser mayor a 0")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrEmptyCart            = errors.New("el carrito está vacío")
	ErrNoOpenSession        = errors.New("no hay una caja abierta")
	ErrSessionAlreadyOpen   = errors.New("ya existe una caja abierta")
	ErrSessionClosed        = errors.New("la caja ya está cerrada")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrUserInactive         = errors.New("usuario inactivo")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
)

// InsufficientStockError detalla un rechazo por stock insuficiente:
// qué producto, cuánto hay disponible y cuánto falta. Se desenvuelve a
// ErrInsufficientStock para que los llamadores puedan usar errors.Is.
type InsufficientStockError struct {
	ProductID string
	BranchID  string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %d, solicitado %d",
		e.ProductID, e.Available, e.Requested)
}

// Shortfall devuelve cuántas unidades base faltan para cubrir lo solicitado.
func (e *InsufficientStockError) Shortfall() int64 {
	return e.Requested - e.Available
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
