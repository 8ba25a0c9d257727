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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, category_id, name, internal_code, barcode, sale_price,
	purchase_price, min_stock, unit_measure, brand, active, created_at, updated_at`

// Create persiste un producto. Código interno duplicado se reporta como
// domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, nullIfEmpty(p.CategoryID), p.Name, p.InternalCode, nullIfEmpty(p.Barcode),
		p.SalePrice, p.PurchasePrice, p.MinStock, p.UnitMeasure, p.Brand,
		p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProductRow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByInternalCode obtiene un producto por su código interno único.
func (r *ProductRepo) GetByInternalCode(ctx context.Context, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE internal_code = $1`
	p, err := scanProductRow(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET
			category_id = $2, name = $3, barcode = $4, sale_price = $5,
			purchase_price = $6, min_stock = $7, unit_measure = $8, brand = $9,
			active = $10, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, nullIfEmpty(p.CategoryID), p.Name, nullIfEmpty(p.Barcode),
		p.SalePrice, p.PurchasePrice, p.MinStock, p.UnitMeasure, p.Brand, p.Active,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List busca productos con filtros opcionales (nombre, códigos, categoría).
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	pos := 1
	if f.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR internal_code ILIKE $%d OR barcode ILIKE $%d)", pos, pos, pos)
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	if f.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", pos)
		args = append(args, f.CategoryID)
		pos++
	}
	if f.ActiveOnly {
		query += " AND active = true"
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Deactivate baja lógica del producto.
func (r *ProductRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE products SET active = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProductRow(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID, barcode *string
	err := row.Scan(
		&p.ID, &categoryID, &p.Name, &p.InternalCode, &barcode, &p.SalePrice,
		&p.PurchasePrice, &p.MinStock, &p.UnitMeasure, &p.Brand,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	return &p, nil
}
