package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	// Create persiste cabecera y renglones. Debe invocarse dentro de la
	// transacción de liquidación.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetByNumber(ctx context.Context, number string) (*entity.Sale, error)
	ListByBranch(ctx context.Context, branchID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
}
