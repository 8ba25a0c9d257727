package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

// CashSessionRepo implementación de CashSessionRepository sobre PostgreSQL.
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

const sessionColumns = `id, user_id, opening_float, expected_close, counted_close,
	variance, status, notes, opened_at, closed_at`

// Create inserta la sesión ABIERTA. El índice único parcial sobre
// (user_id) WHERE status = 'ABIERTA' serializa aperturas concurrentes
// del mismo cajero; la violación se traduce a domain.ErrSessionAlreadyOpen.
func (r *CashSessionRepo) Create(ctx context.Context, s *entity.CashSession) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cash_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.OpeningFloat, s.ExpectedClose, s.CountedClose,
		s.Variance, s.Status, s.Notes, s.OpenedAt, s.ClosedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSessionAlreadyOpen
		}
		return fmt.Errorf("create cash session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID.
func (r *CashSessionRepo) GetByID(ctx context.Context, id string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE id = $1`
	s, err := scanSessionRow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash session: %w", err)
	}
	return s, nil
}

// GetByIDForUpdate obtiene la sesión y bloquea la fila (para el cierre).
func (r *CashSessionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE id = $1 FOR UPDATE`
	s, err := scanSessionRow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash session for update: %w", err)
	}
	return s, nil
}

// GetOpenByUser obtiene la sesión ABIERTA del cajero, o nil si no tiene.
func (r *CashSessionRepo) GetOpenByUser(ctx context.Context, userID string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE user_id = $1 AND status = $2`
	s, err := scanSessionRow(r.q.QueryRow(ctx, query, userID, entity.SessionOpen))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open session: %w", err)
	}
	return s, nil
}

// GetLatestByUser obtiene la sesión más reciente del cajero (abierta o cerrada).
func (r *CashSessionRepo) GetLatestByUser(ctx context.Context, userID string) (*entity.CashSession, error) {
	query := `
		SELECT ` + sessionColumns + ` FROM cash_sessions
		WHERE user_id = $1 ORDER BY opened_at DESC LIMIT 1`
	s, err := scanSessionRow(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest session: %w", err)
	}
	return s, nil
}

// Close persiste el resultado del cierre sobre la fila ya bloqueada.
func (r *CashSessionRepo) Close(ctx context.Context, s *entity.CashSession) error {
	query := `
		UPDATE cash_sessions SET
			expected_close = $2, counted_close = $3, variance = $4,
			status = $5, notes = $6, closed_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.ExpectedClose, s.CountedClose, s.Variance, s.Status, s.Notes, s.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("close cash session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus cuenta sesiones por estado (tablero de cajas).
func (r *CashSessionRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM cash_sessions WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

// ListOpen lista todas las sesiones abiertas.
func (r *CashSessionRepo) ListOpen(ctx context.Context) ([]*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE status = $1 ORDER BY opened_at`
	rows, err := r.q.Query(ctx, query, entity.SessionOpen)
	if err != nil {
		return nil, fmt.Errorf("list open sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashSession
	for rows.Next() {
		s, err := scanSessionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSessionRow(row pgx.Row) (*entity.CashSession, error) {
	var s entity.CashSession
	var notes *string
	err := row.Scan(
		&s.ID, &s.UserID, &s.OpeningFloat, &s.ExpectedClose, &s.CountedClose,
		&s.Variance, &s.Status, &notes, &s.OpenedAt, &s.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		s.Notes = *notes
	}
	return &s, nil
}
