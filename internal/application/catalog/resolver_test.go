package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos-api/internal/application/catalog"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

type stubProductRepo struct{ products map[string]*entity.Product }

func (r *stubProductRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (r *stubProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *stubProductRepo) GetByInternalCode(ctx context.Context, code string) (*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Update(ctx context.Context, p *entity.Product) error { return nil }
func (r *stubProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Deactivate(ctx context.Context, id string) error { return nil }

type stubPresentationRepo struct {
	presentations map[string]*entity.Presentation
}

func (r *stubPresentationRepo) Create(ctx context.Context, p *entity.Presentation) error { return nil }
func (r *stubPresentationRepo) GetByID(ctx context.Context, id string) (*entity.Presentation, error) {
	return r.presentations[id], nil
}
func (r *stubPresentationRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Presentation, error) {
	return nil, nil
}
func (r *stubPresentationRepo) GetDefaultByProduct(ctx context.Context, productID string) (*entity.Presentation, error) {
	for _, p := range r.presentations {
		if p.ProductID == productID && p.IsDefault && p.Active {
			return p, nil
		}
	}
	return nil, nil
}
func (r *stubPresentationRepo) Update(ctx context.Context, p *entity.Presentation) error { return nil }
func (r *stubPresentationRepo) SyncDefaultPrice(ctx context.Context, productID string, price decimal.Decimal) error {
	return nil
}
func (r *stubPresentationRepo) Deactivate(ctx context.Context, id string) error { return nil }

func newResolver() (*catalog.Resolver, *stubProductRepo, *stubPresentationRepo) {
	products := &stubProductRepo{products: map[string]*entity.Product{}}
	presentations := &stubPresentationRepo{presentations: map[string]*entity.Presentation{}}
	return catalog.NewResolver(products, presentations), products, presentations
}

func TestResolve_PresentacionExplicita(t *testing.T) {
	resolver, products, presentations := newResolver()
	products.products["p1"] = &entity.Product{ID: "p1", SalePrice: decimal.NewFromInt(3), Active: true}
	presentations.presentations["caja"] = &entity.Presentation{
		ID: "caja", ProductID: "p1", BaseUnits: 6,
		UnitPrice: decimal.NewFromInt(16), Active: true,
	}

	res, err := resolver.Resolve(context.Background(), "p1", "caja")
	require.NoError(t, err)
	assert.Equal(t, "caja", res.PresentationID)
	assert.Equal(t, int64(6), res.BaseUnits)
	assert.True(t, res.UnitPrice.Equal(decimal.NewFromInt(16)))
}

func TestResolve_VacioUsaLaDefault(t *testing.T) {
	resolver, products, presentations := newResolver()
	products.products["p1"] = &entity.Product{ID: "p1", SalePrice: decimal.NewFromInt(3), Active: true}
	presentations.presentations["unidad"] = &entity.Presentation{
		ID: "unidad", ProductID: "p1", BaseUnits: 1,
		UnitPrice: decimal.NewFromInt(3), IsDefault: true, Active: true,
	}

	res, err := resolver.Resolve(context.Background(), "p1", "")
	require.NoError(t, err)
	assert.Equal(t, "unidad", res.PresentationID)
	assert.Equal(t, int64(1), res.BaseUnits)
}

func TestResolve_ProductoLegadoSinPresentaciones(t *testing.T) {
	resolver, products, _ := newResolver()
	products.products["p1"] = &entity.Product{
		ID: "p1", SalePrice: decimal.RequireFromString("4.50"), Active: true,
	}

	// Sin filas de presentación se sintetiza la default: 1 unidad base al
	// precio de venta canónico.
	res, err := resolver.Resolve(context.Background(), "p1", "")
	require.NoError(t, err)
	assert.Empty(t, res.PresentationID)
	assert.Equal(t, int64(1), res.BaseUnits)
	assert.True(t, res.UnitPrice.Equal(decimal.RequireFromString("4.50")))
}

func TestResolve_Rechazos(t *testing.T) {
	resolver, products, presentations := newResolver()
	products.products["activo"] = &entity.Product{ID: "activo", Active: true}
	products.products["inactivo"] = &entity.Product{ID: "inactivo", Active: false}
	presentations.presentations["ajena"] = &entity.Presentation{
		ID: "ajena", ProductID: "otro-producto", BaseUnits: 1, Active: true,
	}
	presentations.presentations["apagada"] = &entity.Presentation{
		ID: "apagada", ProductID: "activo", BaseUnits: 1, Active: false,
	}
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, "no-existe", "")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = resolver.Resolve(ctx, "inactivo", "")
	assert.ErrorIs(t, err, domain.ErrProductNotFound, "producto inactivo ya no es vendible")

	_, err = resolver.Resolve(ctx, "activo", "no-existe")
	assert.ErrorIs(t, err, domain.ErrPresentationNotFound)

	_, err = resolver.Resolve(ctx, "activo", "ajena")
	assert.ErrorIs(t, err, domain.ErrPresentationNotFound, "la presentación debe pertenecer al producto")

	_, err = resolver.Resolve(ctx, "activo", "apagada")
	assert.ErrorIs(t, err, domain.ErrPresentationNotFound)
}
