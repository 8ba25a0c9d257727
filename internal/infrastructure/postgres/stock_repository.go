package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una sucursal. Si la fila no
// existe todavía devuelve un registro sintético en cero (se materializa recién
// con el primer movimiento).
func (r *StockRepo) Get(ctx context.Context, productID, branchID string) (*entity.Stock, error) {
	query := `
		SELECT id, product_id, branch_id, quantity, reserved, updated_at
		FROM stock WHERE product_id = $1 AND branch_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, branchID).Scan(
		&s.ID, &s.ProductID, &s.BranchID, &s.Quantity, &s.Reserved, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, BranchID: branchID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetOrCreateForUpdate asegura la fila (insertándola con quantity = 0 si no
// existe) y la bloquea con SELECT FOR UPDATE. Llamar solo dentro de una
// transacción: el lock se libera al commit/rollback.
func (r *StockRepo) GetOrCreateForUpdate(ctx context.Context, productID, branchID string) (*entity.Stock, error) {
	insert := `
		INSERT INTO stock (id, product_id, branch_id, quantity, reserved, updated_at)
		VALUES ($1, $2, $3, 0, 0, now())
		ON CONFLICT (product_id, branch_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, uuid.New().String(), productID, branchID); err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `
		SELECT id, product_id, branch_id, quantity, reserved, updated_at
		FROM stock WHERE product_id = $1 AND branch_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, branchID).Scan(
		&s.ID, &s.ProductID, &s.BranchID, &s.Quantity, &s.Reserved, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// UpdateQuantity persiste el nuevo contador de una fila ya bloqueada.
// El CHECK (quantity >= 0) del esquema respalda la validación del dominio.
func (r *StockRepo) UpdateQuantity(ctx context.Context, stockID string, quantity int64) error {
	query := `UPDATE stock SET quantity = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, stockID, quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock quantity: fila %s no encontrada", stockID)
	}
	return nil
}

// ListByBranch lista el stock de una sucursal, ordenado por producto.
func (r *StockRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT s.id, s.product_id, s.branch_id, s.quantity, s.reserved, s.updated_at
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.branch_id = $1
		ORDER BY p.name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock by branch: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.ProductID, &s.BranchID, &s.Quantity, &s.Reserved, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// TotalByProduct suma el stock del producto en todas las sucursales.
func (r *StockRepo) TotalByProduct(ctx context.Context, productID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE product_id = $1`
	var total int64
	if err := r.q.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total stock by product: %w", err)
	}
	return total, nil
}
