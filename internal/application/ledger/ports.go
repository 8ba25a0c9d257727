package ledger

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de stock:
// contador y movimiento se confirman juntos o se revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stocks repository.StockRepository,
		movements repository.StockMovementRepository,
	) error) error
}
