package repository

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// ProductFilter filtros de búsqueda de catálogo (POS y administración).
type ProductFilter struct {
	Search     string // nombre, código interno o código de barras
	CategoryID string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByInternalCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Deactivate baja lógica; el producto deja de ser vendible pero su
	// historial de movimientos se conserva.
	Deactivate(ctx context.Context, id string) error
}
