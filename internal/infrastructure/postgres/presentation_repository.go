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
	"github.com/shopspring/decimal"
)

var _ repository.PresentationRepository = (*PresentationRepo)(nil)

// PresentationRepo implementación de PresentationRepository sobre PostgreSQL.
type PresentationRepo struct {
	q Querier
}

// NewPresentationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPresentationRepository(q Querier) *PresentationRepo {
	return &PresentationRepo{q: q}
}

const presentationColumns = `id, product_id, name, base_units, unit_price, is_default, active, created_at, updated_at`

// Create persiste una presentación.
func (r *PresentationRepo) Create(ctx context.Context, p *entity.Presentation) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO presentations (` + presentationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ProductID, p.Name, p.BaseUnits, p.UnitPrice,
		p.IsDefault, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create presentation: %w", err)
	}
	return nil
}

// GetByID obtiene una presentación por ID.
func (r *PresentationRepo) GetByID(ctx context.Context, id string) (*entity.Presentation, error) {
	query := `SELECT ` + presentationColumns + ` FROM presentations WHERE id = $1`
	p, err := scanPresentationRow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get presentation: %w", err)
	}
	return p, nil
}

// ListByProduct lista las presentaciones activas de un producto, default primero.
func (r *PresentationRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Presentation, error) {
	query := `
		SELECT ` + presentationColumns + `
		FROM presentations WHERE product_id = $1 AND active = true
		ORDER BY is_default DESC, base_units`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Presentation
	for rows.Next() {
		p, err := scanPresentationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan presentation: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetDefaultByProduct obtiene la presentación default del producto.
func (r *PresentationRepo) GetDefaultByProduct(ctx context.Context, productID string) (*entity.Presentation, error) {
	query := `
		SELECT ` + presentationColumns + `
		FROM presentations WHERE product_id = $1 AND is_default = true AND active = true`
	p, err := scanPresentationRow(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default presentation: %w", err)
	}
	return p, nil
}

// Update actualiza nombre, factor y precio de una presentación.
func (r *PresentationRepo) Update(ctx context.Context, p *entity.Presentation) error {
	query := `
		UPDATE presentations SET
			name = $2, base_units = $3, unit_price = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Name, p.BaseUnits, p.UnitPrice)
	if err != nil {
		return fmt.Errorf("update presentation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPresentationNotFound
	}
	return nil
}

// SyncDefaultPrice propaga el precio de venta canónico a la presentación default.
func (r *PresentationRepo) SyncDefaultPrice(ctx context.Context, productID string, price decimal.Decimal) error {
	query := `
		UPDATE presentations SET unit_price = $2, updated_at = now()
		WHERE product_id = $1 AND is_default = true`
	if _, err := r.q.Exec(ctx, query, productID, price); err != nil {
		return fmt.Errorf("sync default price: %w", err)
	}
	return nil
}

// Deactivate baja lógica de una presentación no default.
func (r *PresentationRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE presentations SET active = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate presentation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPresentationNotFound
	}
	return nil
}

func scanPresentationRow(row pgx.Row) (*entity.Presentation, error) {
	var p entity.Presentation
	err := row.Scan(
		&p.ID, &p.ProductID, &p.Name, &p.BaseUnits, &p.UnitPrice,
		&p.IsDefault, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
