package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El precio de venta canónico
// (SalePrice) es el de la presentación default; el stock por sucursal vive en
// Stock y solo lo muta el libro de movimientos.
type Product struct {
	ID            string
	CategoryID    string
	Name          string
	InternalCode  string // código único interno
	Barcode       string
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	MinStock      int64  // umbral de alerta, en unidades base
	UnitMeasure   string // UNIDAD, KG, LITRO...
	Brand         string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
