package cash

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// TxRunner ejecuta el cierre de sesión en una transacción: bloqueo de la
// sesión, replay de movimientos y persistencia del resultado son atómicos.
type TxRunner interface {
	RunCash(ctx context.Context, fn func(
		sessions repository.CashSessionRepository,
		movements repository.CashMovementRepository,
	) error) error
}
