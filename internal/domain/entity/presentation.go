package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPresentationName nombre de la presentación base ("Unidad", 1 unidad base).
const DefaultPresentationName = "Unidad"

// Presentation es un empaque vendible de un producto expresado como múltiplo
// de unidades base (ej. "Caja x24" con BaseUnits = 24). Cada producto tiene
// exactamente una presentación default con BaseUnits = 1, cuyo precio se
// mantiene sincronizado con el precio de venta canónico del producto.
type Presentation struct {
	ID        string
	ProductID string
	Name      string
	BaseUnits int64 // unidades base por presentación, siempre > 0
	UnitPrice decimal.Decimal
	IsDefault bool
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
