package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

func newLedger(store *memStore) *ledger.StockLedger {
	return ledger.NewStockLedger(
		&fakeTxRunner{store: store},
		&fakeProductRepo{store: store},
		&fakeBranchRepo{store: store},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaCreaStockPerezoso(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1")
	store.addBranch("b1")
	l := newLedger(store)

	mov, err := l.ApplyMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		BranchID:  "b1",
		Kind:      entity.MovementPurchaseReceipt,
		Quantity:  10,
		Reason:    "Compra proveedor",
		UserID:    "u1",
	})
	require.NoError(t, err)

	// La fila de stock no existía: se crea con semilla 0 y queda en 10.
	assert.Equal(t, int64(0), mov.QuantityBefore)
	assert.Equal(t, int64(10), mov.QuantityAfter)
	assert.Equal(t, int64(10), mov.Quantity, "entrada va con signo positivo")
	assert.Equal(t, int64(10), store.stocks[stockKey("p1", "b1")].Quantity)
	assert.Len(t, store.movements, 1)
}

func TestApplyMovement_SalidaDescuenta(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1")
	store.addBranch("b1")
	l := newLedger(store)
	ctx := context.Background()

	_, err := l.ApplyMovement(ctx, ledger.MovementInput{
		ProductID: "p1", BranchID: "b1", Kind: entity.MovementPurchaseReceipt, Quantity: 10,
	})
	require.NoError(t, err)

	mov, err := l.ApplyMovement(ctx, ledger.MovementInput{
		ProductID: "p1", BranchID: "b1", Kind: entity.MovementShrinkage, Quantity: 3,
		Reason: "Producto vencido",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(-3), mov.Quantity, "salida va con signo negativo")
	assert.Equal(t, int64(10), mov.QuantityBefore)
	assert.Equal(t, int64(7), mov.QuantityAfter)
	assert.Equal(t, int64(7), store.stocks[stockKey("p1", "b1")].Quantity)
}

func TestApplyMovement_StockInsuficienteRechazaSinMutar(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1")
	store.addBranch("b1")
	l := newLedger(store)
	ctx := context.Background()

	_, err := l.ApplyMovement(ctx, ledger.MovementInput{
		ProductID: "p1", BranchID: "b1", Kind: entity.MovementPositiveAdjustment, Quantity: 3,
	})
	require.NoError(t, err)

	_, err = l.ApplyMovement(ctx, ledger.MovementInput{
		ProductID: "p1", BranchID: "b1", Kind: entity.MovementSaleIssue, Quantity: 5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var detail *domain.InsufficientStockError
	require.True(t, errors.As(err, &detail), "el error debe traer el detalle")
	assert.Equal(t, int64(3), detail.Available)
	assert.Equal(t, int64(5), detail.Requested)
	assert.Equal(t, int64(2), detail.Shortfall())

	// Ni el contador ni el libro cambiaron.
	assert.Equal(t, int64(3), store.stocks[stockKey("p1", "b1")].Quantity)
	assert.Len(t, store.movements, 1)
}

func TestApplyMovement_SalidaContraStockInexistente(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1")
	store.addBranch("b1")
	l := newLedger(store)

	// Sin fila de stock: la semilla perezosa es 0, cualquier salida falla.
	_, err := l.ApplyMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1", BranchID: "b1", Kind: entity.MovementSaleIssue, Quantity: 1,
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Empty(t, store.movements)
}

func TestApplyMovement_Validaciones(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1")
	store.addBranch("b1")
	l := newLedger(store)
	ctx := context.Background()

	// Tipo fuera de la taxonomía.
	_, err := l.ApplyMovement(ctx, ledger.MovementInput{
		ProductID: "p1", BranchID: "b1", Kind: "AJUSTE", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad no positiva.
	for _, qty := range []int64{0, -5} {
		_, err = l.ApplyMovement(ctx, ledger.MovementInput{
			ProductID: "p1", BranchID: "b1", Kind: entity.MovementPurchaseReceipt, Quantity: qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}

	// Producto inexistente.
	_, err = l.ApplyMovement(ctx, ledger.MovementInput{
		ProductID: "nope", BranchID: "b1", Kind: entity.MovementPurchaseReceipt, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// Sucursal inexistente.
	_, err = l.ApplyMovement(ctx, ledger.MovementInput{
		ProductID: "p1", BranchID: "nope", Kind: entity.MovementPurchaseReceipt, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, store.movements, "ninguna validación fallida debe tocar el libro")
}

// Dos ventas simultáneas que en conjunto exceden el stock: el runner de
// pruebas serializa los callbacks igual que el bloqueo de fila serializa las
// transacciones, así que exactamente una debe fallar por stock insuficiente y
// la otra debitar sobre el contador ya actualizado.
func TestApplyMovement_VentasConcurrentesSoloUnaGana(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1")
	store.addBranch("b1")
	l := newLedger(store)
	ctx := context.Background()

	_, err := l.ApplyMovement(ctx, ledger.MovementInput{
		ProductID: "p1", BranchID: "b1", Kind: entity.MovementPositiveAdjustment, Quantity: 5,
	})
	require.NoError(t, err)

	quantities := []int64{3, 4}
	errs := make(chan error, len(quantities))
	var wg sync.WaitGroup
	for _, qty := range quantities {
		wg.Add(1)
		go func(qty int64) {
			defer wg.Done()
			_, err := l.ApplyMovement(ctx, ledger.MovementInput{
				ProductID: "p1", BranchID: "b1", Kind: entity.MovementSaleIssue, Quantity: qty,
			})
			errs <- err
		}(qty)
	}
	wg.Wait()
	close(errs)

	var sold int64
	rejected := 0
	for err := range errs {
		if err != nil {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			rejected++
		}
	}
	assert.Equal(t, 1, rejected, "exactamente una venta debe ser rechazada")

	// El libro sólo registra la semilla y la venta ganadora, y el contador
	// cierra con el débito de esa venta.
	require.Len(t, store.movements, 2)
	sold = -store.movements[1].Quantity
	assert.Contains(t, quantities, sold)
	assert.Equal(t, 5-sold, store.stocks[stockKey("p1", "b1")].Quantity)
}

// El contador de stock siempre debe poder reconstruirse replayando el libro:
// replay(movimientos) == quantity final, y cada entrada encadena con la
// anterior (after de una = before de la siguiente).
func TestLibro_ReplayReconstruyeElContador(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1")
	store.addBranch("b1")
	l := newLedger(store)
	ctx := context.Background()

	script := []struct {
		kind entity.MovementKind
		qty  int64
	}{
		{entity.MovementPurchaseReceipt, 50},
		{entity.MovementSaleIssue, 12},
		{entity.MovementReturnReceipt, 2},
		{entity.MovementShrinkage, 1},
		{entity.MovementNegativeAdjustment, 4},
		{entity.MovementPositiveAdjustment, 10},
	}
	for _, step := range script {
		_, err := l.ApplyMovement(ctx, ledger.MovementInput{
			ProductID: "p1", BranchID: "b1", Kind: step.kind, Quantity: step.qty,
		})
		require.NoError(t, err)
	}

	var replay int64
	prev := int64(0)
	for _, m := range store.movements {
		assert.Equal(t, prev, m.QuantityBefore, "cada entrada encadena con la anterior")
		assert.Equal(t, m.QuantityBefore+m.Quantity, m.QuantityAfter)
		replay += m.Quantity
		prev = m.QuantityAfter
	}
	assert.Equal(t, int64(45), replay)
	assert.Equal(t, replay, store.stocks[stockKey("p1", "b1")].Quantity,
		"el contador y el replay del libro nunca divergen")
}
