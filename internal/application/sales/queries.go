package sales

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// QueryUseCase lecturas del POS: catálogo vendible con stock agregado y
// consulta de ventas liquidadas.
type QueryUseCase struct {
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	categoryRepo repository.CategoryRepository
	saleRepo     repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	categoryRepo repository.CategoryRepository,
	saleRepo repository.SaleRepository,
) *QueryUseCase {
	return &QueryUseCase{
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		categoryRepo: categoryRepo,
		saleRepo:     saleRepo,
	}
}

// PosProducts productos activos con stock agregado entre sucursales, para la
// pantalla de venta. Solo devuelve productos con existencia.
func (uc *QueryUseCase) PosProducts(ctx context.Context, search, categoryID string) ([]*dto.PosProductResponse, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{
		Search:     search,
		CategoryID: categoryID,
		ActiveOnly: true,
		Limit:      50,
	})
	if err != nil {
		return nil, err
	}

	categories := map[string]string{}
	if list, err := uc.categoryRepo.List(ctx); err == nil {
		for _, c := range list {
			categories[c.ID] = c.Name
		}
	}

	out := make([]*dto.PosProductResponse, 0, len(products))
	for _, p := range products {
		total, err := uc.stockRepo.TotalByProduct(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if total <= 0 {
			continue
		}
		out = append(out, &dto.PosProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			InternalCode: p.InternalCode,
			Barcode:      p.Barcode,
			SalePrice:    p.SalePrice,
			Stock:        total,
			Category:     categories[p.CategoryID],
		})
	}
	return out, nil
}

// GetSale venta por ID con sus renglones.
func (uc *QueryUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// GetSaleByNumber venta por número (para auditoría cruzada con el libro).
func (uc *QueryUseCase) GetSaleByNumber(ctx context.Context, number string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}
