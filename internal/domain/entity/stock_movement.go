package entity

import "time"

// MovementKind clasifica un movimiento de inventario. Taxonomía cerrada:
// el tipo determina el signo, el llamador siempre entrega magnitud positiva.
type MovementKind string

// Tipos de movimiento de inventario (valores tal como se persisten).
const (
	// Entradas (signo positivo)
	MovementPurchaseReceipt    MovementKind = "ENTRADA_COMPRA"
	MovementReturnReceipt      MovementKind = "ENTRADA_DEVOLUCION"
	MovementPositiveAdjustment MovementKind = "ENTRADA_AJUSTE"
	MovementTransferIn         MovementKind = "TRANSFERENCIA_ENTRADA"

	// Salidas (signo negativo)
	MovementSaleIssue          MovementKind = "SALIDA_VENTA"
	MovementShrinkage          MovementKind = "SALIDA_MERMA"
	MovementNegativeAdjustment MovementKind = "SALIDA_AJUSTE"
	MovementTransferOut        MovementKind = "TRANSFERENCIA_SALIDA"
)

// Valid indica si el tipo pertenece a la taxonomía cerrada.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementPurchaseReceipt, MovementReturnReceipt, MovementPositiveAdjustment, MovementTransferIn,
		MovementSaleIssue, MovementShrinkage, MovementNegativeAdjustment, MovementTransferOut:
		return true
	}
	return false
}

// IsOut indica si el tipo descuenta existencias.
func (k MovementKind) IsOut() bool {
	switch k {
	case MovementSaleIssue, MovementShrinkage, MovementNegativeAdjustment, MovementTransferOut:
		return true
	}
	return false
}

// Sign devuelve +1 para entradas y -1 para salidas.
func (k MovementKind) Sign() int64 {
	if k.IsOut() {
		return -1
	}
	return 1
}

// StockMovement es una entrada inmutable del libro de movimientos (append-only).
// Quantity va firmada según el tipo; QuantityBefore/QuantityAfter son los
// snapshots del contador alrededor del movimiento, de modo que
// QuantityAfter = QuantityBefore + Quantity siempre se cumple y el libro
// nunca diverge del contador de Stock.
type StockMovement struct {
	ID             string
	StockID        string
	ProductID      string
	BranchID       string
	Kind           MovementKind
	Quantity       int64 // firmada: positiva entrada, negativa salida
	QuantityBefore int64
	QuantityAfter  int64
	Reason         string
	Reference      string // número de venta, id de transferencia, etc.
	UserID         string
	CreatedAt      time.Time
}
