package sales

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// TxRunner ejecuta la transacción de liquidación de una venta: débitos de
// stock, cabecera+renglones y movimiento de caja confirman juntos o ninguno.
// El repo de sesiones va dentro para revalidar la caja bajo bloqueo.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		stocks repository.StockRepository,
		movements repository.StockMovementRepository,
		sales repository.SaleRepository,
		cashMovements repository.CashMovementRepository,
		sessions repository.CashSessionRepository,
	) error) error
}
