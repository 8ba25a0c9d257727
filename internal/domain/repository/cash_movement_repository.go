package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// CashMovementRepository define el puerto de persistencia para movimientos de
// caja. Inmutables: solo Create y lecturas; el cierre de sesión se calcula
// replayando ListBySession, nunca con un acumulador persistido.
type CashMovementRepository interface {
	Create(ctx context.Context, movement *entity.CashMovement) error
	ListBySession(ctx context.Context, sessionID string) ([]*entity.CashMovement, error)
	ListRecent(ctx context.Context, since time.Time, limit int) ([]*entity.CashMovement, error)
}
