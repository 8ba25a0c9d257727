package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/retail-pos-api/internal/application/cash"
	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/application/sales"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// Ensure TxRunner implementa los runners de cada contexto de aplicación.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ cash.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repositorios atados a la tx. Rollback automático si el callback falla.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción del libro de stock: movimientos directos y transferencias.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stocks repository.StockRepository,
	movements repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale transacción de liquidación de venta: stock + libro + venta + caja.
// Incluye el repo de sesiones para revalidar la caja bajo bloqueo de fila.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	stocks repository.StockRepository,
	movements repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	cashMovements repository.CashMovementRepository,
	sessions repository.CashSessionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockRepository(tx),
		NewStockMovementRepository(tx),
		NewSaleRepository(tx),
		NewCashMovementRepository(tx),
		NewCashSessionRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCash transacción de cierre de caja: sesión bloqueada + replay de movimientos.
func (r *TxRunner) RunCash(ctx context.Context, fn func(
	sessions repository.CashSessionRepository,
	movements repository.CashMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCashSessionRepository(tx), NewCashMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
