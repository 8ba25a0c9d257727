package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, number, branch_id, user_id, customer_id, subtotal, discount,
	total, payment_method, status, created_at`

// Create persiste la cabecera y los renglones de la venta. Número duplicado
// (índice único sobre sales.number) se reporta como domain.ErrDuplicate para
// que el coordinador reintente con otro número.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	header := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, header,
		sale.ID, sale.Number, sale.BranchID, sale.UserID, nullIfEmpty(sale.CustomerID),
		sale.Subtotal, sale.Discount, sale.Total, sale.PaymentMethod, sale.Status, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sale: %w", err)
	}

	lineQuery := `
		INSERT INTO sale_lines (id, sale_id, product_id, presentation_id, quantity, base_units, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, line := range sale.Lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.SaleID = sale.ID
		_, err := r.q.Exec(ctx, lineQuery,
			line.ID, line.SaleID, line.ProductID, nullIfEmpty(line.PresentationID),
			line.Quantity, line.BaseUnits, line.UnitPrice, line.Total,
		)
		if err != nil {
			return fmt.Errorf("create sale line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus renglones.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	sale, err := scanSaleRow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadLines(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// GetByNumber obtiene una venta por su número único.
func (r *SaleRepo) GetByNumber(ctx context.Context, number string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE number = $1`
	sale, err := scanSaleRow(r.q.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by number: %w", err)
	}
	if err := r.loadLines(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// ListByBranch lista ventas de una sucursal en un rango de fechas (sin renglones).
func (r *SaleRepo) ListByBranch(ctx context.Context, branchID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE branch_id = $1`
	args := []any{branchID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales by branch: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		sale, err := scanSaleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, sale)
	}
	return list, rows.Err()
}

func (r *SaleRepo) loadLines(ctx context.Context, sale *entity.Sale) error {
	query := `
		SELECT id, sale_id, product_id, presentation_id, quantity, base_units, unit_price, total
		FROM sale_lines WHERE sale_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, sale.ID)
	if err != nil {
		return fmt.Errorf("load sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.SaleLine
		var presentationID *string
		if err := rows.Scan(&line.ID, &line.SaleID, &line.ProductID, &presentationID,
			&line.Quantity, &line.BaseUnits, &line.UnitPrice, &line.Total); err != nil {
			return fmt.Errorf("scan sale line: %w", err)
		}
		if presentationID != nil {
			line.PresentationID = *presentationID
		}
		sale.Lines = append(sale.Lines, &line)
	}
	return rows.Err()
}

func scanSaleRow(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerID *string
	err := row.Scan(
		&s.ID, &s.Number, &s.BranchID, &s.UserID, &customerID,
		&s.Subtotal, &s.Discount, &s.Total, &s.PaymentMethod, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		s.CustomerID = *customerID
	}
	return &s, nil
}
