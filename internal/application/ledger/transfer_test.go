package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

func newTransfer(store *memStore) *ledger.TransferUseCase {
	return ledger.NewTransferUseCase(
		&fakeTxRunner{store: store},
		&fakeProductRepo{store: store},
		&fakeBranchRepo{store: store},
	)
}

func seedStock(t *testing.T, store *memStore, productID, branchID string, qty int64) {
	t.Helper()
	l := newLedger(store)
	_, err := l.ApplyMovement(context.Background(), ledger.MovementInput{
		ProductID: productID, BranchID: branchID,
		Kind: entity.MovementPositiveAdjustment, Quantity: qty,
		Reason: "Inventario Inicial",
	})
	require.NoError(t, err)
}

func TestTransfer_MueveStockEntreSucursales(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1")
	store.addBranch("origen")
	store.addBranch("destino")
	seedStock(t, store, "p1", "origen", 20)

	result, err := newTransfer(store).Transfer(context.Background(), ledger.TransferInput{
		ProductID:    "p1",
		FromBranchID: "origen",
		ToBranchID:   "destino",
		Quantity:     8,
		UserID:       "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12), store.stocks[stockKey("p1", "origen")].Quantity)
	assert.Equal(t, int64(8), store.stocks[stockKey("p1", "destino")].Quantity)

	// Las dos patas comparten referencia y suman cero.
	require.NotNil(t, result.Debit)
	require.NotNil(t, result.Credit)
	assert.NotEmpty(t, result.Reference)
	assert.Equal(t, result.Reference, result.Debit.Reference)
	assert.Equal(t, result.Reference, result.Credit.Reference)
	assert.Equal(t, entity.MovementTransferOut, result.Debit.Kind)
	assert.Equal(t, entity.MovementTransferIn, result.Credit.Kind)
	assert.Equal(t, int64(0), result.Debit.Quantity+result.Credit.Quantity,
		"débito + crédito = 0: la transferencia no crea ni destruye stock")
}

func TestTransfer_OrigenInsuficienteNoTocaDestino(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1")
	store.addBranch("origen")
	store.addBranch("destino")
	seedStock(t, store, "p1", "origen", 5)
	movementsBefore := len(store.movements)

	_, err := newTransfer(store).Transfer(context.Background(), ledger.TransferInput{
		ProductID:    "p1",
		FromBranchID: "origen",
		ToBranchID:   "destino",
		Quantity:     6,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// Rollback completo: origen intacto, destino jamás acreditado.
	assert.Equal(t, int64(5), store.stocks[stockKey("p1", "origen")].Quantity)
	_, destinoExiste := store.stocks[stockKey("p1", "destino")]
	assert.False(t, destinoExiste, "el destino no debe materializarse en un rollback")
	assert.Len(t, store.movements, movementsBefore, "el libro no debe registrar patas sueltas")
}

func TestTransfer_BloqueaSucursalesEnOrdenCanonico(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1")
	store.addBranch("alfa")
	store.addBranch("beta")
	seedStock(t, store, "p1", "beta", 10)
	store.lockLog = nil

	// Transferencia beta -> alfa: aunque el débito va contra beta, el primer
	// bloqueo debe ser alfa. Con el mismo orden canónico en ambas
	// direcciones, alfa->beta y beta->alfa no pueden interbloquearse.
	_, err := newTransfer(store).Transfer(context.Background(), ledger.TransferInput{
		ProductID:    "p1",
		FromBranchID: "beta",
		ToBranchID:   "alfa",
		Quantity:     4,
	})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(store.lockLog), 2)
	assert.Equal(t, []string{stockKey("p1", "alfa"), stockKey("p1", "beta")}, store.lockLog[:2])

	// El orden de mutación sigue siendo débito primero.
	assert.Equal(t, int64(6), store.stocks[stockKey("p1", "beta")].Quantity)
	assert.Equal(t, int64(4), store.stocks[stockKey("p1", "alfa")].Quantity)
}

func TestTransfer_Validaciones(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1")
	store.addBranch("b1")
	store.addBranch("b2")
	uc := newTransfer(store)
	ctx := context.Background()

	// Misma sucursal.
	_, err := uc.Transfer(ctx, ledger.TransferInput{
		ProductID: "p1", FromBranchID: "b1", ToBranchID: "b1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad no positiva.
	_, err = uc.Transfer(ctx, ledger.TransferInput{
		ProductID: "p1", FromBranchID: "b1", ToBranchID: "b2", Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// Producto inexistente.
	_, err = uc.Transfer(ctx, ledger.TransferInput{
		ProductID: "nope", FromBranchID: "b1", ToBranchID: "b2", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// Sucursal destino inexistente.
	_, err = uc.Transfer(ctx, ledger.TransferInput{
		ProductID: "p1", FromBranchID: "b1", ToBranchID: "nope", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKindsForGroup(t *testing.T) {
	assert.Contains(t, ledger.KindsForGroup(ledger.GroupIn), entity.MovementPurchaseReceipt)
	assert.Contains(t, ledger.KindsForGroup(ledger.GroupOut), entity.MovementSaleIssue)
	assert.ElementsMatch(t,
		[]entity.MovementKind{entity.MovementTransferIn, entity.MovementTransferOut},
		ledger.KindsForGroup(ledger.GroupTransfer))
	assert.ElementsMatch(t,
		[]entity.MovementKind{entity.MovementPositiveAdjustment, entity.MovementNegativeAdjustment},
		ledger.KindsForGroup(ledger.GroupAdjustment))
	assert.Nil(t, ledger.KindsForGroup(""), "grupo vacío no filtra")
	assert.Nil(t, ledger.KindsForGroup("otro"))
}
