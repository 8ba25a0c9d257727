package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// MovementFilter filtros para el historial de movimientos. Todos opcionales.
type MovementFilter struct {
	ProductID string
	BranchID  string
	Kinds     []entity.MovementKind // grupo de tipos (ingresos, salidas, etc.)
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos. Las entradas son inmutables: solo Create y lecturas.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, int, error)
	// ListByReference devuelve los movimientos ligados a una referencia
	// (número de venta, id de transferencia) para auditoría.
	ListByReference(ctx context.Context, reference string) ([]*entity.StockMovement, error)
}
