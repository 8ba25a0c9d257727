package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// El tipo es explícito (taxonomía cerrada); la cantidad siempre positiva.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	BranchID  string `json:"branch_id"`
	Kind      string `json:"kind"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	ProductID    string `json:"product_id"`
	FromBranchID string `json:"from_branch_id"`
	ToBranchID   string `json:"to_branch_id"`
	Quantity     int64  `json:"quantity"`
	Reason       string `json:"reason,omitempty"`
}

// MovementResponse una entrada del libro de movimientos.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	BranchID       string    `json:"branch_id"`
	Kind           string    `json:"kind"`
	Quantity       int64     `json:"quantity"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	Reason         string    `json:"reason,omitempty"`
	Reference      string    `json:"reference,omitempty"`
	UserID         string    `json:"user_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransferResponse las dos patas de una transferencia.
type TransferResponse struct {
	Reference string           `json:"reference"`
	Debit     MovementResponse `json:"debit"`
	Credit    MovementResponse `json:"credit"`
}

// StockResponse existencias de un producto en una sucursal.
type StockResponse struct {
	ProductID string    `json:"product_id"`
	BranchID  string    `json:"branch_id"`
	Quantity  int64     `json:"quantity"`
	Reserved  int64     `json:"reserved"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MovementHistoryQuery filtros de GET /api/inventory/movements.
type MovementHistoryQuery struct {
	ProductID string `query:"product_id"`
	BranchID  string `query:"branch_id"`
	Group     string `query:"type"` // ingreso, salida, transferencia, ajuste
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	PageRequest
}
