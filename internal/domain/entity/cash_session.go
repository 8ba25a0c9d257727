package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de caja.
const (
	SessionOpen   = "ABIERTA"
	SessionClosed = "CERRADA"
)

// CashSession es el ciclo apertura-cierre de la caja de un cajero.
// A lo sumo una sesión ABIERTA por cajero. Al cerrar se registran el saldo
// esperado (derivado replays de los movimientos), el contado físico y la
// diferencia entre ambos.
type CashSession struct {
	ID            string
	UserID        string // cajero
	OpeningFloat  decimal.Decimal
	ExpectedClose *decimal.Decimal // calculado al cierre
	CountedClose  *decimal.Decimal // contado físico declarado al cierre
	Variance      *decimal.Decimal // CountedClose - ExpectedClose
	Status        string
	Notes         string
	OpenedAt      time.Time
	ClosedAt      *time.Time
}

// IsOpen indica si la sesión sigue abierta.
func (s *CashSession) IsOpen() bool {
	return s.Status == SessionOpen
}

// Tipos de movimiento de caja.
const (
	CashKindSale        = "VENTA"         // registrado solo por el motor de ventas
	CashKindExtraIncome = "INGRESO_EXTRA" // ingreso manual de efectivo
	CashKindWithdrawal  = "RETIRO"        // retiro de efectivo
	CashKindExpense     = "GASTO"         // gasto pagado desde la caja
)

// ValidManualCashKind indica si el tipo puede registrarse manualmente.
// VENTA queda reservado para el coordinador de ventas.
func ValidManualCashKind(k string) bool {
	return k == CashKindExtraIncome || k == CashKindWithdrawal || k == CashKindExpense
}

// CashMovement es un movimiento inmutable dentro de una sesión de caja.
// El cierre de la sesión es un fold determinista sobre estos movimientos.
type CashMovement struct {
	ID            string
	SessionID     string
	Kind          string
	Amount        decimal.Decimal
	PaymentMethod string // EFECTIVO o QR; solo EFECTIVO afecta el saldo físico
	Memo          string
	Reference     string // número de venta cuando Kind = VENTA
	CreatedAt     time.Time
}
