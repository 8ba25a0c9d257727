package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest renglón tipado del carrito. PresentationID vacío vende en
// la presentación default (unidad base).
type SaleLineRequest struct {
	ProductID      string `json:"product_id"`
	PresentationID string `json:"presentation_id,omitempty"`
	Quantity       int64  `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	BranchID       string            `json:"branch_id"`
	CustomerID     string            `json:"customer_id,omitempty"`
	PaymentMethod  string            `json:"payment_method"` // EFECTIVO o QR
	Discount       decimal.Decimal   `json:"discount"`
	AmountReceived decimal.Decimal   `json:"amount_received,omitempty"`
	Lines          []SaleLineRequest `json:"items"`
}

// SaleLineResponse renglón de venta persistido.
type SaleLineResponse struct {
	ProductID      string          `json:"product_id"`
	PresentationID string          `json:"presentation_id,omitempty"`
	Quantity       int64           `json:"quantity"`
	BaseUnits      int64           `json:"base_units"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Total          decimal.Decimal `json:"total"`
}

// SaleResponse venta liquidada.
type SaleResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	BranchID      string             `json:"branch_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Change        decimal.Decimal    `json:"change"` // monto recibido - total, si aplica
	Lines         []SaleLineResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

// PosProductResponse producto para la pantalla del POS, con stock agregado.
type PosProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"nombre"`
	InternalCode string          `json:"codigo_interno"`
	Barcode      string          `json:"codigo_barras,omitempty"`
	SalePrice    decimal.Decimal `json:"precio_venta"`
	Stock        int64           `json:"stock"`
	Category     string          `json:"categoria,omitempty"`
}
