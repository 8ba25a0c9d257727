package catalog

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Resolved resultado de resolver una línea de venta: a cuántas unidades base
// equivale una unidad vendida y a qué precio unitario.
type Resolved struct {
	PresentationID string // vacío si el producto no tiene presentaciones registradas
	BaseUnits      int64
	UnitPrice      decimal.Decimal
}

// Resolver convierte (producto, presentación opcional) a unidades base y
// precio. El requerimiento de stock de una línea es cantidad x BaseUnits; ese
// es el valor que se pasa al libro de stock, nunca la cantidad cruda.
type Resolver struct {
	productRepo      repository.ProductRepository
	presentationRepo repository.PresentationRepository
}

// NewResolver construye el resolutor de presentaciones.
func NewResolver(
	productRepo repository.ProductRepository,
	presentationRepo repository.PresentationRepository,
) *Resolver {
	return &Resolver{productRepo: productRepo, presentationRepo: presentationRepo}
}

// Resolve resuelve producto + presentación opcional (presentationID vacío =
// presentación default). Para productos legados sin filas de presentación se
// sintetiza la default: 1 unidad base al precio de venta canónico, de modo que
// los llamadores que ignoran presentaciones siguen funcionando.
func (r *Resolver) Resolve(ctx context.Context, productID, presentationID string) (*Resolved, error) {
	product, err := r.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrProductNotFound
	}

	if presentationID == "" {
		def, err := r.presentationRepo.GetDefaultByProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		if def == nil {
			return &Resolved{BaseUnits: 1, UnitPrice: product.SalePrice}, nil
		}
		return &Resolved{PresentationID: def.ID, BaseUnits: def.BaseUnits, UnitPrice: def.UnitPrice}, nil
	}

	p, err := r.presentationRepo.GetByID(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ProductID != productID || !p.Active {
		return nil, domain.ErrPresentationNotFound
	}
	return &Resolved{PresentationID: p.ID, BaseUnits: p.BaseUnits, UnitPrice: p.UnitPrice}, nil
}
