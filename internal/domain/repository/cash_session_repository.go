package repository

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// CashSessionRepository define el puerto de persistencia para sesiones de caja.
type CashSessionRepository interface {
	// Create inserta la sesión ABIERTA. La unicidad "una sesión abierta por
	// cajero" la garantiza un índice único parcial; la violación se reporta
	// como domain.ErrSessionAlreadyOpen.
	Create(ctx context.Context, session *entity.CashSession) error
	GetByID(ctx context.Context, id string) (*entity.CashSession, error)
	// GetByIDForUpdate bloquea la fila de la sesión (para el cierre).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.CashSession, error)
	GetOpenByUser(ctx context.Context, userID string) (*entity.CashSession, error)
	GetLatestByUser(ctx context.Context, userID string) (*entity.CashSession, error)
	// Close persiste el resultado del cierre (esperado, contado, diferencia).
	Close(ctx context.Context, session *entity.CashSession) error
	CountByStatus(ctx context.Context, status string) (int, error)
	ListOpen(ctx context.Context) ([]*entity.CashSession, error)
}
