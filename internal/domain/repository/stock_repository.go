package repository

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por producto+sucursal.
// Las mutaciones pasan siempre por el libro de movimientos dentro de una transacción.
type StockRepository interface {
	Get(ctx context.Context, productID, branchID string) (*entity.Stock, error)
	// GetOrCreateForUpdate asegura la fila (creándola con Quantity = 0 si no
	// existe) y la bloquea para update (SELECT FOR UPDATE). Solo tiene sentido
	// dentro de una transacción.
	GetOrCreateForUpdate(ctx context.Context, productID, branchID string) (*entity.Stock, error)
	// UpdateQuantity persiste el nuevo contador de la fila ya bloqueada.
	UpdateQuantity(ctx context.Context, stockID string, quantity int64) error
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Stock, error)
	// TotalByProduct suma el stock del producto en todas las sucursales.
	TotalByProduct(ctx context.Context, productID string) (int64, error)
}
