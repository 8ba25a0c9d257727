package cash

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SessionUseCase maneja el ciclo de vida de la caja por cajero:
// CERRADA --abrir(montoInicial)--> ABIERTA --cerrar(contado)--> CERRADA.
type SessionUseCase struct {
	txRunner     TxRunner
	sessionRepo  repository.CashSessionRepository
	movementRepo repository.CashMovementRepository
	userRepo     repository.UserRepository
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(
	txRunner TxRunner,
	sessionRepo repository.CashSessionRepository,
	movementRepo repository.CashMovementRepository,
	userRepo repository.UserRepository,
) *SessionUseCase {
	return &SessionUseCase{
		txRunner:     txRunner,
		sessionRepo:  sessionRepo,
		movementRepo: movementRepo,
		userRepo:     userRepo,
	}
}

// Open abre la caja del cajero con el fondo inicial. Falla si el usuario está
// inactivo o si ya tiene una sesión ABIERTA; el índice único parcial sobre
// (user_id, status ABIERTA) serializa aperturas concurrentes.
func (uc *SessionUseCase) Open(ctx context.Context, cashierID string, in dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	if in.OpeningFloat.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.Active {
		return nil, domain.ErrUserInactive
	}
	existing, err := uc.sessionRepo.GetOpenByUser(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrSessionAlreadyOpen
	}

	session := &entity.CashSession{
		ID:           uuid.New().String(),
		UserID:       cashierID,
		OpeningFloat: in.OpeningFloat,
		Status:       entity.SessionOpen,
		OpenedAt:     time.Now(),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// RecordMovement registra un movimiento manual (INGRESO_EXTRA, RETIRO, GASTO)
// contra la sesión abierta del cajero. Los movimientos manuales son siempre
// en EFECTIVO; VENTA lo registra únicamente el coordinador de ventas.
func (uc *SessionUseCase) RecordMovement(ctx context.Context, cashierID string, in dto.CashMovementRequest) (*dto.CashMovementResponse, error) {
	if !entity.ValidManualCashKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	session, err := uc.sessionRepo.GetOpenByUser(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoOpenSession
	}
	mov := &entity.CashMovement{
		ID:            uuid.New().String(),
		SessionID:     session.ID,
		Kind:          in.Kind,
		Amount:        in.Amount,
		PaymentMethod: entity.PaymentCash,
		Memo:          in.Memo,
		CreatedAt:     time.Now(),
	}
	if err := uc.movementRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return toCashMovementResponse(mov), nil
}

// CloseTotals resultado del fold de cierre sobre los movimientos de la sesión.
type CloseTotals struct {
	CashSales       decimal.Decimal
	ElectronicSales decimal.Decimal
	ExtraIncome     decimal.Decimal
	Withdrawals     decimal.Decimal
	ExpectedClose   decimal.Decimal
}

// Summarize replaya los movimientos de una sesión y calcula el saldo esperado:
// fondo inicial + ventas en efectivo + ingresos extra - (retiros + gastos).
// Es un fold determinista y puro: puede recomputarse para auditoría sin
// depender de ningún acumulador persistido.
func Summarize(openingFloat decimal.Decimal, movements []*entity.CashMovement) CloseTotals {
	t := CloseTotals{
		CashSales:       decimal.Zero,
		ElectronicSales: decimal.Zero,
		ExtraIncome:     decimal.Zero,
		Withdrawals:     decimal.Zero,
	}
	for _, m := range movements {
		switch m.Kind {
		case entity.CashKindSale:
			if m.PaymentMethod == entity.PaymentCash {
				t.CashSales = t.CashSales.Add(m.Amount)
			} else {
				t.ElectronicSales = t.ElectronicSales.Add(m.Amount)
			}
		case entity.CashKindExtraIncome:
			t.ExtraIncome = t.ExtraIncome.Add(m.Amount)
		case entity.CashKindWithdrawal, entity.CashKindExpense:
			t.Withdrawals = t.Withdrawals.Add(m.Amount)
		}
	}
	t.ExpectedClose = openingFloat.Add(t.CashSales).Add(t.ExtraIncome).Sub(t.Withdrawals)
	return t
}

// Close cierra la sesión: bloquea la fila, replaya los movimientos, calcula
// esperado y diferencia contra el contado físico y persiste el resultado.
func (uc *SessionUseCase) Close(ctx context.Context, sessionID string, in dto.CloseSessionRequest) (*dto.CloseSummaryResponse, error) {
	var resp *dto.CloseSummaryResponse
	err := uc.txRunner.RunCash(ctx, func(
		sessions repository.CashSessionRepository,
		movements repository.CashMovementRepository,
	) error {
		session, err := sessions.GetByIDForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrNotFound
		}
		if !session.IsOpen() {
			return domain.ErrSessionClosed
		}
		list, err := movements.ListBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		totals := Summarize(session.OpeningFloat, list)
		variance := in.CountedClose.Sub(totals.ExpectedClose)
		now := time.Now()

		session.Status = entity.SessionClosed
		session.ExpectedClose = &totals.ExpectedClose
		session.CountedClose = &in.CountedClose
		session.Variance = &variance
		session.Notes = in.Notes
		session.ClosedAt = &now
		if err := sessions.Close(ctx, session); err != nil {
			return err
		}

		resp = &dto.CloseSummaryResponse{
			Session:         *toSessionResponse(session),
			CashSales:       totals.CashSales,
			ElectronicSales: totals.ElectronicSales,
			ExtraIncome:     totals.ExtraIncome,
			Withdrawals:     totals.Withdrawals,
			ExpectedClose:   totals.ExpectedClose,
			CountedClose:    in.CountedClose,
			Variance:        variance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Status indica si el cajero tiene caja abierta.
func (uc *SessionUseCase) Status(ctx context.Context, cashierID string) (bool, *dto.SessionResponse, error) {
	session, err := uc.sessionRepo.GetOpenByUser(ctx, cashierID)
	if err != nil {
		return false, nil, err
	}
	if session == nil {
		return false, nil, nil
	}
	return true, toSessionResponse(session), nil
}

// Detail sesión con sus movimientos (historial de conciliación).
func (uc *SessionUseCase) Detail(ctx context.Context, sessionID string) (*dto.SessionDetailResponse, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movementRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := &dto.SessionDetailResponse{Session: *toSessionResponse(session)}
	for _, m := range list {
		resp.Movements = append(resp.Movements, *toCashMovementResponse(m))
	}
	return resp, nil
}

// Overview tablero de cajas: cuántas sesiones abiertas/cerradas hay y
// cuáles siguen abiertas.
func (uc *SessionUseCase) Overview(ctx context.Context) (*dto.CashOverviewResponse, error) {
	open, err := uc.sessionRepo.CountByStatus(ctx, entity.SessionOpen)
	if err != nil {
		return nil, err
	}
	closed, err := uc.sessionRepo.CountByStatus(ctx, entity.SessionClosed)
	if err != nil {
		return nil, err
	}
	sessions, err := uc.sessionRepo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.CashOverviewResponse{OpenCount: open, ClosedCount: closed}
	for _, s := range sessions {
		resp.OpenSessions = append(resp.OpenSessions, *toSessionResponse(s))
	}
	return resp, nil
}

// RecentMovements movimientos de caja del día, para el tablero de cajas.
func (uc *SessionUseCase) RecentMovements(ctx context.Context, limit int) ([]*dto.CashMovementResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	// Medianoche en la zona horaria local, no en UTC: el "día" del tablero
	// es el día calendario del negocio.
	now := time.Now()
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	list, err := uc.movementRepo.ListRecent(ctx, startOfDay, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CashMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toCashMovementResponse(m))
	}
	return out, nil
}

func toSessionResponse(s *entity.CashSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		OpeningFloat:  s.OpeningFloat,
		ExpectedClose: s.ExpectedClose,
		CountedClose:  s.CountedClose,
		Variance:      s.Variance,
		Status:        s.Status,
		Notes:         s.Notes,
		OpenedAt:      s.OpenedAt,
		ClosedAt:      s.ClosedAt,
	}
}

func toCashMovementResponse(m *entity.CashMovement) *dto.CashMovementResponse {
	return &dto.CashMovementResponse{
		ID:            m.ID,
		SessionID:     m.SessionID,
		Kind:          m.Kind,
		Amount:        m.Amount,
		PaymentMethod: m.PaymentMethod,
		Memo:          m.Memo,
		Reference:     m.Reference,
		CreatedAt:     m.CreatedAt,
	}
}
