package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// TransferUseCase mueve stock entre dos sucursales como par débito/crédito
// en una sola transacción: TRANSFERENCIA_SALIDA en origen y
// TRANSFERENCIA_ENTRADA en destino, ligados por una referencia compartida.
type TransferUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		branchRepo:  branchRepo,
	}
}

// TransferInput entrada para transferir stock entre sucursales.
type TransferInput struct {
	ProductID    string
	FromBranchID string
	ToBranchID   string
	Quantity     int64 // unidades base
	Reason       string
	UserID       string
}

// TransferResult las dos patas de la transferencia, debit + credit = 0.
type TransferResult struct {
	Reference string
	Debit     *entity.StockMovement
	Credit    *entity.StockMovement
}

// Transfer debita el origen y acredita el destino en la misma transacción.
// Si el origen no alcanza, se aborta sin tocar el destino. Las dos filas de
// stock se bloquean en orden lexicográfico de sucursal antes de mutar; con un
// orden canónico global las transferencias cruzadas A->B y B->A no pueden
// interbloquearse. El débito se aplica siempre primero.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.FromBranchID == "" || input.ToBranchID == "" || input.FromBranchID == input.ToBranchID {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	for _, branchID := range []string{input.FromBranchID, input.ToBranchID} {
		branch, err := uc.branchRepo.GetByID(ctx, branchID)
		if err != nil {
			return nil, err
		}
		if branch == nil {
			return nil, domain.ErrNotFound
		}
	}

	reference := uuid.New().String()
	reason := input.Reason
	if reason == "" {
		reason = fmt.Sprintf("Transferencia %s -> %s", input.FromBranchID, input.ToBranchID)
	}

	result := &TransferResult{Reference: reference}
	err = uc.txRunner.Run(ctx, func(
		stocks repository.StockRepository,
		movements repository.StockMovementRepository,
	) error {
		first, second := input.FromBranchID, input.ToBranchID
		if second < first {
			first, second = second, first
		}
		for _, branchID := range []string{first, second} {
			if _, err := stocks.GetOrCreateForUpdate(ctx, input.ProductID, branchID); err != nil {
				return err
			}
		}

		now := time.Now()
		debit, err := ApplyMovementInTx(ctx, stocks, movements, MovementInput{
			ProductID: input.ProductID,
			BranchID:  input.FromBranchID,
			Kind:      entity.MovementTransferOut,
			Quantity:  input.Quantity,
			Reason:    reason,
			Reference: reference,
			UserID:    input.UserID,
		}, now)
		if err != nil {
			return err
		}
		credit, err := ApplyMovementInTx(ctx, stocks, movements, MovementInput{
			ProductID: input.ProductID,
			BranchID:  input.ToBranchID,
			Kind:      entity.MovementTransferIn,
			Quantity:  input.Quantity,
			Reason:    reason,
			Reference: reference,
			UserID:    input.UserID,
		}, now)
		if err != nil {
			return err
		}
		result.Debit = debit
		result.Credit = credit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
