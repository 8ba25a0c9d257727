package repository

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PresentationRepository define el puerto de persistencia para Presentation.
type PresentationRepository interface {
	Create(ctx context.Context, p *entity.Presentation) error
	GetByID(ctx context.Context, id string) (*entity.Presentation, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Presentation, error)
	GetDefaultByProduct(ctx context.Context, productID string) (*entity.Presentation, error)
	Update(ctx context.Context, p *entity.Presentation) error
	// SyncDefaultPrice actualiza el precio de la presentación default cuando
	// cambia el precio de venta canónico del producto.
	SyncDefaultPrice(ctx context.Context, productID string, price decimal.Decimal) error
	Deactivate(ctx context.Context, id string) error
}
