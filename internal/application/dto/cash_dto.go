package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenSessionRequest body para POST /api/cash/sessions.
type OpenSessionRequest struct {
	OpeningFloat decimal.Decimal `json:"opening_float"`
}

// CashMovementRequest body para registrar un ingreso/retiro/gasto manual.
type CashMovementRequest struct {
	Kind   string          `json:"kind"` // INGRESO_EXTRA, RETIRO, GASTO
	Amount decimal.Decimal `json:"amount"`
	Memo   string          `json:"memo"`
}

// CloseSessionRequest body para cerrar una sesión con el contado físico.
type CloseSessionRequest struct {
	CountedClose decimal.Decimal `json:"counted_close"`
	Notes        string          `json:"notes,omitempty"`
}

// SessionResponse estado de una sesión de caja.
type SessionResponse struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	OpeningFloat  decimal.Decimal  `json:"opening_float"`
	ExpectedClose *decimal.Decimal `json:"expected_close,omitempty"`
	CountedClose  *decimal.Decimal `json:"counted_close,omitempty"`
	Variance      *decimal.Decimal `json:"variance,omitempty"`
	Status        string           `json:"status"`
	Notes         string           `json:"notes,omitempty"`
	OpenedAt      time.Time        `json:"opened_at"`
	ClosedAt      *time.Time       `json:"closed_at,omitempty"`
}

// CloseSummaryResponse resumen del cierre (fold de los movimientos).
type CloseSummaryResponse struct {
	Session         SessionResponse `json:"session"`
	CashSales       decimal.Decimal `json:"cash_sales"`
	ElectronicSales decimal.Decimal `json:"electronic_sales"`
	ExtraIncome     decimal.Decimal `json:"extra_income"`
	Withdrawals     decimal.Decimal `json:"withdrawals"`
	ExpectedClose   decimal.Decimal `json:"expected_close"`
	CountedClose    decimal.Decimal `json:"counted_close"`
	Variance        decimal.Decimal `json:"variance"`
}

// CashMovementResponse un movimiento de caja.
type CashMovementResponse struct {
	ID            string          `json:"id"`
	SessionID     string          `json:"session_id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Memo          string          `json:"memo,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CashOverviewResponse tablero de cajas para administración.
type CashOverviewResponse struct {
	OpenCount    int               `json:"abiertas"`
	ClosedCount  int               `json:"cerradas"`
	OpenSessions []SessionResponse `json:"sesiones_abiertas,omitempty"`
}

// SessionDetailResponse sesión con sus movimientos.
type SessionDetailResponse struct {
	Session   SessionResponse        `json:"session"`
	Movements []CashMovementResponse `json:"movements"`
}
