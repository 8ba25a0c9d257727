package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso de catálogo. El stock nunca se edita aquí:
// la existencia inicial entra como movimiento ENTRADA_AJUSTE por el libro.
type ProductUseCase struct {
	productRepo      repository.ProductRepository
	presentationRepo repository.PresentationRepository
	stockLedger      *ledger.StockLedger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	presentationRepo repository.PresentationRepository,
	stockLedger *ledger.StockLedger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:      productRepo,
		presentationRepo: presentationRepo,
		stockLedger:      stockLedger,
	}
}

// Create crea el producto junto con su presentación default ("Unidad", 1
// unidad base, al precio de venta canónico). Si viene stock inicial se
// registra por el libro contra la sucursal indicada.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.InternalCode == "" || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByInternalCode(ctx, in.InternalCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	if in.UnitMeasure == "" {
		in.UnitMeasure = "UNIDAD"
	}
	product := &entity.Product{
		ID:            uuid.New().String(),
		CategoryID:    in.CategoryID,
		Name:          in.Name,
		InternalCode:  in.InternalCode,
		Barcode:       in.Barcode,
		SalePrice:     in.SalePrice,
		PurchasePrice: in.PurchasePrice,
		MinStock:      in.MinStock,
		UnitMeasure:   in.UnitMeasure,
		Brand:         in.Brand,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	def := &entity.Presentation{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Name:      entity.DefaultPresentationName,
		BaseUnits: 1,
		UnitPrice: product.SalePrice,
		IsDefault: true,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.presentationRepo.Create(ctx, def); err != nil {
		return nil, err
	}

	if in.InitialStock > 0 && in.InitialBranchID != "" {
		_, err := uc.stockLedger.ApplyMovement(ctx, ledger.MovementInput{
			ProductID: product.ID,
			BranchID:  in.InitialBranchID,
			Kind:      entity.MovementPositiveAdjustment,
			Quantity:  in.InitialStock,
			Reason:    "Inventario Inicial",
			UserID:    userID,
		})
		if err != nil {
			return nil, err
		}
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros de búsqueda.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]*dto.ProductResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	products, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update actualiza campos del producto. Si cambia el precio de venta se
// sincroniza el precio de la presentación default en el mismo paso, para que
// precio canónico y presentación base nunca diverjan.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	priceChanged := false
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.SalePrice != nil && !in.SalePrice.Equal(product.SalePrice) {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
		priceChanged = true
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	if priceChanged {
		if err := uc.presentationRepo.SyncDefaultPrice(ctx, product.ID, product.SalePrice); err != nil {
			return nil, err
		}
	}
	return toProductResponse(product), nil
}

// Deactivate baja lógica del producto.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.productRepo.Deactivate(ctx, id)
}

// AddPresentation agrega una presentación no-default (ej. "Caja x24").
func (uc *ProductUseCase) AddPresentation(ctx context.Context, productID string, in dto.CreatePresentationRequest) (*dto.PresentationResponse, error) {
	if in.Name == "" || in.BaseUnits <= 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	now := time.Now()
	p := &entity.Presentation{
		ID:        uuid.New().String(),
		ProductID: productID,
		Name:      in.Name,
		BaseUnits: in.BaseUnits,
		UnitPrice: in.UnitPrice,
		IsDefault: false,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.presentationRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPresentationResponse(p), nil
}

// ListPresentations presentaciones activas e inactivas de un producto.
func (uc *ProductUseCase) ListPresentations(ctx context.Context, productID string) ([]*dto.PresentationResponse, error) {
	list, err := uc.presentationRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PresentationResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPresentationResponse(p))
	}
	return out, nil
}

// RemovePresentation desactiva una presentación. La default no se puede
// desactivar: siempre debe existir la venta por unidad base.
func (uc *ProductUseCase) RemovePresentation(ctx context.Context, productID, presentationID string) error {
	p, err := uc.presentationRepo.GetByID(ctx, presentationID)
	if err != nil {
		return err
	}
	if p == nil || p.ProductID != productID {
		return domain.ErrPresentationNotFound
	}
	if p.IsDefault {
		return domain.ErrInvalidInput
	}
	return uc.presentationRepo.Deactivate(ctx, presentationID)
}

// EnsureDefaultPresentations retro-ajusta productos legados sin presentación:
// crea la default "Unidad" al precio canónico. Devuelve cuántas creó.
func (uc *ProductUseCase) EnsureDefaultPresentations(ctx context.Context) (int, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{ActiveOnly: true, Limit: 10000})
	if err != nil {
		return 0, err
	}
	created := 0
	now := time.Now()
	for _, product := range products {
		def, err := uc.presentationRepo.GetDefaultByProduct(ctx, product.ID)
		if err != nil {
			return created, err
		}
		if def != nil {
			continue
		}
		p := &entity.Presentation{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Name:      entity.DefaultPresentationName,
			BaseUnits: 1,
			UnitPrice: product.SalePrice,
			IsDefault: true,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.presentationRepo.Create(ctx, p); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		InternalCode:  p.InternalCode,
		Barcode:       p.Barcode,
		CategoryID:    p.CategoryID,
		SalePrice:     p.SalePrice,
		PurchasePrice: p.PurchasePrice,
		MinStock:      p.MinStock,
		UnitMeasure:   p.UnitMeasure,
		Brand:         p.Brand,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
	}
}

func toPresentationResponse(p *entity.Presentation) *dto.PresentationResponse {
	return &dto.PresentationResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Name:      p.Name,
		BaseUnits: p.BaseUnits,
		UnitPrice: p.UnitPrice,
		IsDefault: p.IsDefault,
		Active:    p.Active,
	}
}
