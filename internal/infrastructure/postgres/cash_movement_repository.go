package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

// CashMovementRepo implementación de CashMovementRepository sobre PostgreSQL.
// Tabla append-only: el saldo esperado se recalcula siempre desde aquí.
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

// Create persiste un movimiento de caja.
func (r *CashMovementRepo) Create(ctx context.Context, m *entity.CashMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cash_movements (id, session_id, kind, amount, payment_method, memo, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.SessionID, m.Kind, m.Amount, m.PaymentMethod, m.Memo, m.Reference, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create cash movement: %w", err)
	}
	return nil
}

// ListBySession lista los movimientos de una sesión en orden de inserción.
func (r *CashMovementRepo) ListBySession(ctx context.Context, sessionID string) ([]*entity.CashMovement, error) {
	query := `
		SELECT id, session_id, kind, amount, payment_method, memo, reference, created_at
		FROM cash_movements WHERE session_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Kind, &m.Amount,
			&m.PaymentMethod, &m.Memo, &m.Reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListRecent movimientos desde una fecha, los más nuevos primero.
func (r *CashMovementRepo) ListRecent(ctx context.Context, since time.Time, limit int) ([]*entity.CashMovement, error) {
	query := `
		SELECT id, session_id, kind, amount, payment_method, memo, reference, created_at
		FROM cash_movements WHERE created_at >= $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent cash movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Kind, &m.Amount,
			&m.PaymentMethod, &m.Memo, &m.Reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
