package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "COMPLETADA"
	SaleStatusVoid      = "ANULADA"
)

// Métodos de pago aceptados en el POS.
const (
	PaymentCash       = "EFECTIVO"
	PaymentElectronic = "QR"
)

// ValidPaymentMethod indica si el método de pago es aceptado.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentElectronic
}

// Sale es la cabecera de una venta del POS. Inmutable una vez COMPLETADA,
// salvo la transición de estado a ANULADA.
type Sale struct {
	ID            string
	Number        string // número de venta único (V-<unix>-<seq>)
	BranchID      string
	UserID        string // cajero
	CustomerID    string // opcional
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	Status        string
	Lines         []*SaleLine
	CreatedAt     time.Time
}

// SaleLine es un renglón de venta. Quantity está en unidades de la
// presentación usada; BaseUnits guarda el total de unidades base descontadas
// del inventario (Quantity x BaseUnits de la presentación).
type SaleLine struct {
	ID             string
	SaleID         string
	ProductID      string
	PresentationID string
	Quantity       int64
	BaseUnits      int64
	UnitPrice      decimal.Decimal
	Total          decimal.Decimal
}
