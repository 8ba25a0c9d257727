package sales

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-pos-api/internal/application/catalog"
	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SettleUseCase liquida una venta del POS: valida el carrito, descuenta cada
// renglón por el libro de stock, crea la venta y registra el movimiento de
// caja VENTA contra la sesión abierta del cajero, todo en una transacción.
// La venta existe si y solo si todos los débitos y el movimiento de caja
// tuvieron éxito.
type SettleUseCase struct {
	txRunner     TxRunner
	resolver     *catalog.Resolver
	sessionRepo  repository.CashSessionRepository
	branchRepo   repository.BranchRepository
	customerRepo repository.CustomerRepository
}

// NewSettleUseCase construye el coordinador de liquidación.
func NewSettleUseCase(
	txRunner TxRunner,
	resolver *catalog.Resolver,
	sessionRepo repository.CashSessionRepository,
	branchRepo repository.BranchRepository,
	customerRepo repository.CustomerRepository,
) *SettleUseCase {
	return &SettleUseCase{
		txRunner:     txRunner,
		resolver:     resolver,
		sessionRepo:  sessionRepo,
		branchRepo:   branchRepo,
		customerRepo: customerRepo,
	}
}

// saleSeq desambigua números de venta generados en el mismo segundo.
// El índice único sobre sales.number es el árbitro final.
var saleSeq atomic.Uint32

func nextSaleNumber(now time.Time) string {
	return fmt.Sprintf("V-%d-%04d", now.Unix(), saleSeq.Add(1)%10000)
}

// resolvedLine renglón ya resuelto a unidades base y precio.
type resolvedLine struct {
	req       dto.SaleLineRequest
	presID    string
	baseUnits int64 // total de unidades base a descontar
	unitPrice decimal.Decimal
	total     decimal.Decimal
}

// Settle ejecuta la venta. Precondiciones (antes de cualquier mutación):
// sesión de caja abierta, carrito no vacío, método de pago válido y todos los
// renglones resolubles a presentación. Cualquier falta de stock aborta la
// transacción completa: ni venta parcial, ni débito parcial, ni movimiento de
// caja observable.
func (uc *SettleUseCase) Settle(ctx context.Context, cashierID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	session, err := uc.sessionRepo.GetOpenByUser(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoOpenSession
	}
	branch, err := uc.branchRepo.GetByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Resolver renglones y totales fuera de la transacción (solo lectura).
	var subtotal decimal.Decimal
	resolved := make([]resolvedLine, 0, len(in.Lines))
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		res, err := uc.resolver.Resolve(ctx, line.ProductID, line.PresentationID)
		if err != nil {
			return nil, err
		}
		qty := decimal.NewFromInt(line.Quantity)
		total := res.UnitPrice.Mul(qty)
		subtotal = subtotal.Add(total)
		resolved = append(resolved, resolvedLine{
			req:       line,
			presID:    res.PresentationID,
			baseUnits: line.Quantity * res.BaseUnits,
			unitPrice: res.UnitPrice,
			total:     total,
		})
	}

	// Descuento acotado a [0, subtotal].
	discount := in.Discount
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	total := subtotal.Sub(discount)

	now := time.Now()
	number := nextSaleNumber(now)
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		Number:        number,
		BranchID:      in.BranchID,
		UserID:        cashierID,
		CustomerID:    in.CustomerID,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
		PaymentMethod: in.PaymentMethod,
		Status:        entity.SaleStatusCompleted,
		CreatedAt:     now,
	}
	for _, rl := range resolved {
		sale.Lines = append(sale.Lines, &entity.SaleLine{
			ID:             uuid.New().String(),
			SaleID:         sale.ID,
			ProductID:      rl.req.ProductID,
			PresentationID: rl.presID,
			Quantity:       rl.req.Quantity,
			BaseUnits:      rl.baseUnits,
			UnitPrice:      rl.unitPrice,
			Total:          rl.total,
		})
	}

	err = uc.txRunner.RunSale(ctx, func(
		stocks repository.StockRepository,
		movements repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		cashMovements repository.CashMovementRepository,
		sessions repository.CashSessionRepository,
	) error {
		// Revalidar la sesión bajo bloqueo: un cierre concurrente pudo
		// confirmar entre la precondición y esta transacción, y un VENTA
		// contra una sesión CERRADA quedaría fuera del replay de cierre.
		locked, err := sessions.GetByIDForUpdate(ctx, session.ID)
		if err != nil {
			return err
		}
		if locked == nil || !locked.IsOpen() {
			return domain.ErrNoOpenSession
		}

		// Filas de stock bloqueadas en orden canónico de producto antes de
		// debitar, para que dos carritos con renglones cruzados no se
		// interbloqueen.
		productIDs := make([]string, 0, len(resolved))
		for _, rl := range resolved {
			productIDs = append(productIDs, rl.req.ProductID)
		}
		sort.Strings(productIDs)
		for _, productID := range productIDs {
			if _, err := stocks.GetOrCreateForUpdate(ctx, productID, in.BranchID); err != nil {
				return err
			}
		}

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		// Débito por renglón en unidades base. Si algún renglón no alcanza,
		// el error sube y el runner revierte todo.
		for _, rl := range resolved {
			if _, err := ledger.ApplyMovementInTx(ctx, stocks, movements, ledger.MovementInput{
				ProductID: rl.req.ProductID,
				BranchID:  in.BranchID,
				Kind:      entity.MovementSaleIssue,
				Quantity:  rl.baseUnits,
				Reason:    fmt.Sprintf("Venta #%s", number),
				Reference: number,
				UserID:    cashierID,
			}, now); err != nil {
				return err
			}
		}
		return cashMovements.Create(ctx, &entity.CashMovement{
			ID:            uuid.New().String(),
			SessionID:     session.ID,
			Kind:          entity.CashKindSale,
			Amount:        total,
			PaymentMethod: in.PaymentMethod,
			Memo:          fmt.Sprintf("Venta #%s", number),
			Reference:     number,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := toSaleResponse(sale)
	if in.AmountReceived.GreaterThan(decimal.Zero) {
		resp.Change = in.AmountReceived.Sub(total)
	}
	return resp, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		BranchID:      s.BranchID,
		CustomerID:    s.CustomerID,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		Change:        decimal.Zero,
		CreatedAt:     s.CreatedAt,
	}
	for _, line := range s.Lines {
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ProductID:      line.ProductID,
			PresentationID: line.PresentationID,
			Quantity:       line.Quantity,
			BaseUnits:      line.BaseUnits,
			UnitPrice:      line.UnitPrice,
			Total:          line.Total,
		})
	}
	return resp
}
