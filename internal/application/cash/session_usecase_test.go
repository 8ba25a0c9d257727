package cash_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos-api/internal/application/cash"
	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────────────────────────────────────

type cashStore struct {
	users     map[string]*entity.User
	sessions  map[string]*entity.CashSession
	movements []*entity.CashMovement
	lastSince time.Time // corte recibido por ListRecent
}

func newCashStore() *cashStore {
	return &cashStore{
		users:    make(map[string]*entity.User),
		sessions: make(map[string]*entity.CashSession),
	}
}

func (s *cashStore) addCashier(id string, active bool) {
	s.users[id] = &entity.User{ID: id, Username: id, Role: entity.RoleCashier, Active: active}
}

func (s *cashStore) addMovement(sessionID, kind, payment string, amount decimal.Decimal) {
	s.movements = append(s.movements, &entity.CashMovement{
		ID:            kind + "-" + amount.String(),
		SessionID:     sessionID,
		Kind:          kind,
		Amount:        amount,
		PaymentMethod: payment,
		CreatedAt:     time.Now(),
	})
}

type fakeUserRepo struct{ store *cashStore }

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.store.users[id], nil
}
func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }
func (r *fakeUserRepo) List(ctx context.Context, activeOnly bool) ([]*entity.User, error) {
	return nil, nil
}

type fakeSessionRepo struct{ store *cashStore }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.CashSession) error {
	// Emula el índice único parcial sobre (user_id, status ABIERTA).
	for _, s := range r.store.sessions {
		if s.UserID == session.UserID && s.IsOpen() {
			return domain.ErrSessionAlreadyOpen
		}
	}
	cp := *session
	r.store.sessions[session.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id string) (*entity.CashSession, error) {
	s, ok := r.store.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.CashSession, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSessionRepo) GetOpenByUser(ctx context.Context, userID string) (*entity.CashSession, error) {
	for _, s := range r.store.sessions {
		if s.UserID == userID && s.IsOpen() {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) GetLatestByUser(ctx context.Context, userID string) (*entity.CashSession, error) {
	var latest *entity.CashSession
	for _, s := range r.store.sessions {
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.OpenedAt.After(latest.OpenedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeSessionRepo) Close(ctx context.Context, session *entity.CashSession) error {
	cp := *session
	r.store.sessions[session.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	count := 0
	for _, s := range r.store.sessions {
		if s.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeSessionRepo) ListOpen(ctx context.Context) ([]*entity.CashSession, error) {
	var out []*entity.CashSession
	for _, s := range r.store.sessions {
		if s.IsOpen() {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCashMovementRepo struct{ store *cashStore }

func (r *fakeCashMovementRepo) Create(ctx context.Context, m *entity.CashMovement) error {
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *fakeCashMovementRepo) ListBySession(ctx context.Context, sessionID string) ([]*entity.CashMovement, error) {
	var out []*entity.CashMovement
	for _, m := range r.store.movements {
		if m.SessionID == sessionID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCashMovementRepo) ListRecent(ctx context.Context, since time.Time, limit int) ([]*entity.CashMovement, error) {
	r.store.lastSince = since
	var out []*entity.CashMovement
	for i := len(r.store.movements) - 1; i >= 0 && len(out) < limit; i-- {
		m := r.store.movements[i]
		if m.CreatedAt.Before(since) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

type fakeCashTxRunner struct{ store *cashStore }

func (r *fakeCashTxRunner) RunCash(ctx context.Context, fn func(
	sessions repository.CashSessionRepository,
	movements repository.CashMovementRepository,
) error) error {
	return fn(&fakeSessionRepo{store: r.store}, &fakeCashMovementRepo{store: r.store})
}

func newSessionUseCase(store *cashStore) *cash.SessionUseCase {
	return cash.NewSessionUseCase(
		&fakeCashTxRunner{store: store},
		&fakeSessionRepo{store: store},
		&fakeCashMovementRepo{store: store},
		&fakeUserRepo{store: store},
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ─────────────────────────────────────────────────────────────────────────────
// Summarize: el fold puro de cierre
// ─────────────────────────────────────────────────────────────────────────────

func TestSummarize_SeparaEfectivoDeElectronico(t *testing.T) {
	session := "s1"
	store := newCashStore()
	store.addMovement(session, entity.CashKindSale, entity.PaymentCash, dec("50"))
	store.addMovement(session, entity.CashKindSale, entity.PaymentElectronic, dec("30"))
	store.addMovement(session, entity.CashKindExtraIncome, entity.PaymentCash, dec("15"))
	store.addMovement(session, entity.CashKindWithdrawal, entity.PaymentCash, dec("20"))
	store.addMovement(session, entity.CashKindExpense, entity.PaymentCash, dec("10"))

	totals := cash.Summarize(dec("100"), store.movements)

	assert.True(t, totals.CashSales.Equal(dec("50")))
	assert.True(t, totals.ElectronicSales.Equal(dec("30")),
		"las ventas QR se reportan aparte y no entran al saldo físico")
	assert.True(t, totals.ExtraIncome.Equal(dec("15")))
	assert.True(t, totals.Withdrawals.Equal(dec("30")), "retiros y gastos se suman juntos")
	// 100 + 50 + 15 - 30 = 135
	assert.True(t, totals.ExpectedClose.Equal(dec("135")))
}

func TestSummarize_SinMovimientos(t *testing.T) {
	totals := cash.Summarize(dec("80"), nil)
	assert.True(t, totals.ExpectedClose.Equal(dec("80")))
	assert.True(t, totals.CashSales.IsZero())
}

// ─────────────────────────────────────────────────────────────────────────────
// Ciclo de vida de la sesión
// ─────────────────────────────────────────────────────────────────────────────

func TestOpen_CreaSesionAbierta(t *testing.T) {
	store := newCashStore()
	store.addCashier("c1", true)

	resp, err := newSessionUseCase(store).Open(context.Background(), "c1", dto.OpenSessionRequest{
		OpeningFloat: dec("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionOpen, resp.Status)
	assert.True(t, resp.OpeningFloat.Equal(dec("100")))
	assert.Equal(t, "c1", resp.UserID)
	assert.Nil(t, resp.ClosedAt)
}

func TestOpen_RechazaSegundaSesionAbierta(t *testing.T) {
	store := newCashStore()
	store.addCashier("c1", true)
	uc := newSessionUseCase(store)
	ctx := context.Background()

	_, err := uc.Open(ctx, "c1", dto.OpenSessionRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)

	_, err = uc.Open(ctx, "c1", dto.OpenSessionRequest{OpeningFloat: dec("50")})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyOpen)
}

func TestOpen_Validaciones(t *testing.T) {
	store := newCashStore()
	store.addCashier("activo", true)
	store.addCashier("inactivo", false)
	uc := newSessionUseCase(store)
	ctx := context.Background()

	_, err := uc.Open(ctx, "activo", dto.OpenSessionRequest{OpeningFloat: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Open(ctx, "inactivo", dto.OpenSessionRequest{OpeningFloat: dec("100")})
	assert.ErrorIs(t, err, domain.ErrUserInactive)

	_, err = uc.Open(ctx, "fantasma", dto.OpenSessionRequest{OpeningFloat: dec("100")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRecordMovement_RegistraContraSesionAbierta(t *testing.T) {
	store := newCashStore()
	store.addCashier("c1", true)
	uc := newSessionUseCase(store)
	ctx := context.Background()

	_, err := uc.Open(ctx, "c1", dto.OpenSessionRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)

	resp, err := uc.RecordMovement(ctx, "c1", dto.CashMovementRequest{
		Kind:   entity.CashKindWithdrawal,
		Amount: dec("25"),
		Memo:   "cambio para la otra caja",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CashKindWithdrawal, resp.Kind)
	assert.Equal(t, entity.PaymentCash, resp.PaymentMethod, "los movimientos manuales son siempre en efectivo")
}

func TestRecordMovement_Validaciones(t *testing.T) {
	store := newCashStore()
	store.addCashier("c1", true)
	uc := newSessionUseCase(store)
	ctx := context.Background()

	// VENTA no es registrable a mano.
	_, err := uc.RecordMovement(ctx, "c1", dto.CashMovementRequest{
		Kind: entity.CashKindSale, Amount: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Monto no positivo.
	_, err = uc.RecordMovement(ctx, "c1", dto.CashMovementRequest{
		Kind: entity.CashKindExpense, Amount: dec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin sesión abierta.
	_, err = uc.RecordMovement(ctx, "c1", dto.CashMovementRequest{
		Kind: entity.CashKindExpense, Amount: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrNoOpenSession)
}

func TestClose_CalculaEsperadoYDiferencia(t *testing.T) {
	store := newCashStore()
	store.addCashier("c1", true)
	uc := newSessionUseCase(store)
	ctx := context.Background()

	opened, err := uc.Open(ctx, "c1", dto.OpenSessionRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)

	store.addMovement(opened.ID, entity.CashKindSale, entity.PaymentCash, dec("50"))
	store.addMovement(opened.ID, entity.CashKindSale, entity.PaymentElectronic, dec("30"))
	store.addMovement(opened.ID, entity.CashKindWithdrawal, entity.PaymentCash, dec("20"))

	// Esperado 100 + 50 - 20 = 130; contado 128 deja diferencia -2.
	summary, err := uc.Close(ctx, opened.ID, dto.CloseSessionRequest{
		CountedClose: dec("128"),
		Notes:        "faltan 2 en monedas",
	})
	require.NoError(t, err)
	assert.True(t, summary.ExpectedClose.Equal(dec("130")))
	assert.True(t, summary.Variance.Equal(dec("-2")))
	assert.True(t, summary.ElectronicSales.Equal(dec("30")))
	assert.Equal(t, entity.SessionClosed, summary.Session.Status)
	require.NotNil(t, summary.Session.ClosedAt)

	// La sesión queda CERRADA y el cajero puede abrir de nuevo.
	open, _, err := uc.Status(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, open)
}

func TestClose_SesionYaCerrada(t *testing.T) {
	store := newCashStore()
	store.addCashier("c1", true)
	uc := newSessionUseCase(store)
	ctx := context.Background()

	opened, err := uc.Open(ctx, "c1", dto.OpenSessionRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)
	_, err = uc.Close(ctx, opened.ID, dto.CloseSessionRequest{CountedClose: dec("100")})
	require.NoError(t, err)

	_, err = uc.Close(ctx, opened.ID, dto.CloseSessionRequest{CountedClose: dec("100")})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)

	_, err = uc.Close(ctx, "no-existe", dto.CloseSessionRequest{CountedClose: dec("0")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOverview_CuentaSesionesPorEstado(t *testing.T) {
	store := newCashStore()
	store.addCashier("c1", true)
	store.addCashier("c2", true)
	uc := newSessionUseCase(store)
	ctx := context.Background()

	s1, err := uc.Open(ctx, "c1", dto.OpenSessionRequest{OpeningFloat: dec("100")})
	require.NoError(t, err)
	_, err = uc.Open(ctx, "c2", dto.OpenSessionRequest{OpeningFloat: dec("50")})
	require.NoError(t, err)
	_, err = uc.Close(ctx, s1.ID, dto.CloseSessionRequest{CountedClose: dec("100")})
	require.NoError(t, err)

	overview, err := uc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.OpenCount)
	assert.Equal(t, 1, overview.ClosedCount)
	require.Len(t, overview.OpenSessions, 1)
	assert.Equal(t, "c2", overview.OpenSessions[0].UserID)
}

func TestRecentMovements_CortaEnMedianocheLocal(t *testing.T) {
	store := newCashStore()
	uc := newSessionUseCase(store)

	_, err := uc.RecentMovements(context.Background(), 10)
	require.NoError(t, err)

	// El corte es la medianoche del día calendario local. Truncar a 24h
	// daría medianoche UTC, que en una zona con offset cae en otra hora.
	since := store.lastSince
	now := time.Now()
	assert.Equal(t, now.Location(), since.Location())
	assert.Equal(t, 0, since.Hour())
	assert.Equal(t, 0, since.Minute())
	assert.Equal(t, 0, since.Second())
	y, m, d := now.Date()
	sy, sm, sd := since.Date()
	assert.Equal(t, y, sy)
	assert.Equal(t, m, sm)
	assert.Equal(t, d, sd)
}
