package ledger_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional (snapshot + rollback)
// ──────────────────────────────────────────────────────────────────────────────

// memStore estado compartido de los fakes. La clave de stock es
// productID|branchID, igual que el constraint UNIQUE de la tabla.
type memStore struct {
	stocks    map[string]*entity.Stock
	movements []*entity.StockMovement
	products  map[string]*entity.Product
	branches  map[string]*entity.Branch
	lockLog   []string // orden de adquisición de bloqueos de stock
	seq       int
}

func newMemStore() *memStore {
	return &memStore{
		stocks:   map[string]*entity.Stock{},
		products: map[string]*entity.Product{},
		branches: map[string]*entity.Branch{},
	}
}

func (s *memStore) addProduct(id string) {
	s.products[id] = &entity.Product{ID: id, Name: "Producto " + id, Active: true}
}

func (s *memStore) addBranch(id string) {
	s.branches[id] = &entity.Branch{ID: id, Name: "Sucursal " + id, Active: true}
}

func stockKey(productID, branchID string) string {
	return productID + "|" + branchID
}

// snapshot copia profunda del estado mutable, para simular rollback.
func (s *memStore) snapshot() (map[string]*entity.Stock, []*entity.StockMovement) {
	stocks := make(map[string]*entity.Stock, len(s.stocks))
	for k, v := range s.stocks {
		cp := *v
		stocks[k] = &cp
	}
	movements := make([]*entity.StockMovement, len(s.movements))
	copy(movements, s.movements)
	return stocks, movements
}

func (s *memStore) restore(stocks map[string]*entity.Stock, movements []*entity.StockMovement) {
	s.stocks = stocks
	s.movements = movements
}

// fakeStockRepo implementación en memoria de repository.StockRepository.
type fakeStockRepo struct{ store *memStore }

func (r *fakeStockRepo) Get(_ context.Context, productID, branchID string) (*entity.Stock, error) {
	if s, ok := r.store.stocks[stockKey(productID, branchID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, BranchID: branchID}, nil
}

func (r *fakeStockRepo) GetOrCreateForUpdate(_ context.Context, productID, branchID string) (*entity.Stock, error) {
	key := stockKey(productID, branchID)
	r.store.lockLog = append(r.store.lockLog, key)
	if s, ok := r.store.stocks[key]; ok {
		cp := *s
		return &cp, nil
	}
	r.store.seq++
	s := &entity.Stock{
		ID:        fmt.Sprintf("stock-%d", r.store.seq),
		ProductID: productID,
		BranchID:  branchID,
		Quantity:  0,
		UpdatedAt: time.Now(),
	}
	r.store.stocks[key] = s
	cp := *s
	return &cp, nil
}

func (r *fakeStockRepo) UpdateQuantity(_ context.Context, stockID string, quantity int64) error {
	for _, s := range r.store.stocks {
		if s.ID == stockID {
			s.Quantity = quantity
			s.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("stock %s no encontrado", stockID)
}

func (r *fakeStockRepo) ListByBranch(_ context.Context, branchID string, _, _ int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.store.stocks {
		if s.BranchID == branchID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) TotalByProduct(_ context.Context, productID string) (int64, error) {
	var total int64
	for _, s := range r.store.stocks {
		if s.ProductID == productID {
			total += s.Quantity
		}
	}
	return total, nil
}

// fakeMovementRepo implementación en memoria del libro de movimientos.
type fakeMovementRepo struct{ store *memStore }

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	for _, m := range r.store.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.BranchID != "" && m.BranchID != f.BranchID {
			continue
		}
		if len(f.Kinds) > 0 {
			found := false
			for _, k := range f.Kinds {
				if m.Kind == k {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeMovementRepo) ListByReference(_ context.Context, reference string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.Reference == reference {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeProductRepo solo implementa lo que el libro consulta.
type fakeProductRepo struct{ store *memStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.store.products[id], nil
}

func (r *fakeProductRepo) GetByInternalCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.InternalCode == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id string) error {
	if p, ok := r.store.products[id]; ok {
		p.Active = false
	}
	return nil
}

// fakeBranchRepo sucursales en memoria.
type fakeBranchRepo struct{ store *memStore }

func (r *fakeBranchRepo) Create(_ context.Context, b *entity.Branch) error {
	r.store.branches[b.ID] = b
	return nil
}

func (r *fakeBranchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	return r.store.branches[id], nil
}

func (r *fakeBranchRepo) List(_ context.Context) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, b := range r.store.branches {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBranchRepo) Update(_ context.Context, b *entity.Branch) error {
	r.store.branches[b.ID] = b
	return nil
}

// fakeTxRunner corre el callback contra el store y, si falla, restaura el
// snapshot previo: misma semántica todo-o-nada que la transacción real. El
// mutex serializa los callbacks igual que el bloqueo de fila serializa las
// transacciones concurrentes sobre el mismo stock.
type fakeTxRunner struct {
	store *memStore
	mu    sync.Mutex
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	stocks repository.StockRepository,
	movements repository.StockMovementRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stocks, movements := r.store.snapshot()
	if err := fn(&fakeStockRepo{store: r.store}, &fakeMovementRepo{store: r.store}); err != nil {
		r.store.restore(stocks, movements)
		return err
	}
	return nil
}
