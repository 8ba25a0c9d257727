package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name          string          `json:"nombre"`
	InternalCode  string          `json:"codigo_interno"`
	Barcode       string          `json:"codigo_barras,omitempty"`
	CategoryID    string          `json:"categoria_id"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	PurchasePrice decimal.Decimal `json:"precio_compra"`
	MinStock      int64           `json:"stock_minimo,omitempty"`
	UnitMeasure   string          `json:"unidad_medida,omitempty"`
	Brand         string          `json:"marca,omitempty"`
	// InitialStock existencia inicial opcional; se registra como
	// ENTRADA_AJUSTE "Inventario Inicial" en la sucursal indicada.
	InitialStock    int64  `json:"stock_inicial,omitempty"`
	InitialBranchID string `json:"sucursal_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name          *string          `json:"nombre,omitempty"`
	Barcode       *string          `json:"codigo_barras,omitempty"`
	CategoryID    *string          `json:"categoria_id,omitempty"`
	SalePrice     *decimal.Decimal `json:"precio_venta,omitempty"`
	PurchasePrice *decimal.Decimal `json:"precio_compra,omitempty"`
	MinStock      *int64           `json:"stock_minimo,omitempty"`
	Brand         *string          `json:"marca,omitempty"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"nombre"`
	InternalCode  string          `json:"codigo_interno"`
	Barcode       string          `json:"codigo_barras,omitempty"`
	CategoryID    string          `json:"categoria_id"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	PurchasePrice decimal.Decimal `json:"precio_compra"`
	MinStock      int64           `json:"stock_minimo"`
	UnitMeasure   string          `json:"unidad_medida"`
	Brand         string          `json:"marca,omitempty"`
	Active        bool            `json:"activo"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreatePresentationRequest body para POST /api/products/:id/presentations.
type CreatePresentationRequest struct {
	Name      string          `json:"nombre"`
	BaseUnits int64           `json:"cantidad_base"`
	UnitPrice decimal.Decimal `json:"precio_venta"`
}

// PresentationResponse presentación vendible de un producto.
type PresentationResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"producto_id"`
	Name      string          `json:"nombre"`
	BaseUnits int64           `json:"cantidad_base"`
	UnitPrice decimal.Decimal `json:"precio_venta"`
	IsDefault bool            `json:"es_default"`
	Active    bool            `json:"activo"`
}
