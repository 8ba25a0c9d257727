package ledger

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// Grupos de tipos para filtrar el historial desde el frontend.
const (
	GroupIn         = "ingreso"
	GroupOut        = "salida"
	GroupTransfer   = "transferencia"
	GroupAdjustment = "ajuste"
)

// KindsForGroup traduce un grupo a sus tipos concretos. Grupo vacío o
// desconocido no filtra.
func KindsForGroup(group string) []entity.MovementKind {
	switch group {
	case GroupIn:
		return []entity.MovementKind{entity.MovementPurchaseReceipt, entity.MovementReturnReceipt, entity.MovementPositiveAdjustment}
	case GroupOut:
		return []entity.MovementKind{entity.MovementSaleIssue, entity.MovementShrinkage, entity.MovementNegativeAdjustment}
	case GroupTransfer:
		return []entity.MovementKind{entity.MovementTransferIn, entity.MovementTransferOut}
	case GroupAdjustment:
		return []entity.MovementKind{entity.MovementPositiveAdjustment, entity.MovementNegativeAdjustment}
	}
	return nil
}

// HistoryUseCase consultas de solo lectura sobre el libro de movimientos.
// Al ser un log append-only puede escanearse sin bloquear a los escritores.
type HistoryUseCase struct {
	movementRepo repository.StockMovementRepository
	stockRepo    repository.StockRepository
}

// NewHistoryUseCase construye el caso de uso de consulta.
func NewHistoryUseCase(
	movementRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) *HistoryUseCase {
	return &HistoryUseCase{movementRepo: movementRepo, stockRepo: stockRepo}
}

// ListMovements historial filtrable por producto, sucursal, grupo y fechas.
func (uc *HistoryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return uc.movementRepo.List(ctx, filter)
}

// MovementsByReference patas de una venta o transferencia, para auditoría.
func (uc *HistoryUseCase) MovementsByReference(ctx context.Context, reference string) ([]*entity.StockMovement, error) {
	return uc.movementRepo.ListByReference(ctx, reference)
}

// StockByBranch existencias actuales de una sucursal.
func (uc *HistoryUseCase) StockByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Stock, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.stockRepo.ListByBranch(ctx, branchID, limit, offset)
}
