package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// StockLedger es el único punto por el que se muta stock. Cada mutación
// bloquea la fila (producto, sucursal) con SELECT FOR UPDATE, actualiza el
// contador y agrega la entrada inmutable del libro dentro de la misma
// transacción, con Commit/Rollback todo-o-nada.
type StockLedger struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
) *StockLedger {
	return &StockLedger{
		txRunner:    txRunner,
		productRepo: productRepo,
		branchRepo:  branchRepo,
	}
}

// MovementInput entrada para registrar un movimiento de inventario.
// Quantity es magnitud positiva en unidades base; el tipo resuelve el signo.
// El ajuste se elige explícitamente con ENTRADA_AJUSTE o SALIDA_AJUSTE:
// nunca se infiere la dirección desde el texto del motivo.
type MovementInput struct {
	ProductID string
	BranchID  string
	Kind      entity.MovementKind
	Quantity  int64
	Reason    string
	Reference string
	UserID    string
}

// ApplyMovement valida la entrada, verifica producto y sucursal, e inicia una
// transacción para aplicar el movimiento. Retorna la entrada del libro creada.
func (l *StockLedger) ApplyMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := l.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	branch, err := l.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}

	var mov *entity.StockMovement
	err = l.txRunner.Run(ctx, func(
		stocks repository.StockRepository,
		movements repository.StockMovementRepository,
	) error {
		mov, err = ApplyMovementInTx(ctx, stocks, movements, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyMovementInTx aplica un movimiento usando repositorios ya atados a la
// transacción del llamador (liquidación de ventas, transferencias). Bloquea la
// fila de stock, verifica que una salida no deje el contador negativo y crea
// la entrada del libro con snapshots antes/después. Si retorna error el
// llamador debe hacer rollback de toda su transacción.
func ApplyMovementInTx(
	ctx context.Context,
	stocks repository.StockRepository,
	movements repository.StockMovementRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	// Bloquea (o crea con cantidad 0) la fila de stock. La creación perezosa
	// con semilla 0 hace que una salida contra un registro inexistente falle
	// determinísticamente en vez de descontar contra un cero implícito.
	stock, err := stocks.GetOrCreateForUpdate(ctx, input.ProductID, input.BranchID)
	if err != nil {
		return nil, err
	}

	signed := input.Quantity * input.Kind.Sign()
	after := stock.Quantity + signed
	if input.Kind.IsOut() && after < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID: input.ProductID,
			BranchID:  input.BranchID,
			Available: stock.Quantity,
			Requested: input.Quantity,
		}
	}

	if err := stocks.UpdateQuantity(ctx, stock.ID, after); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		StockID:        stock.ID,
		ProductID:      input.ProductID,
		BranchID:       input.BranchID,
		Kind:           input.Kind,
		Quantity:       signed,
		QuantityBefore: stock.Quantity,
		QuantityAfter:  after,
		Reason:         input.Reason,
		Reference:      input.Reference,
		UserID:         input.UserID,
		CreatedAt:      now,
	}
	if err := movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
