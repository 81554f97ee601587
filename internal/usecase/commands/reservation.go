package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"madebuy/internal/domain/reservation"
	"madebuy/internal/infra"
	"madebuy/internal/pkg/clock"
	"madebuy/internal/pkg/errs"
	"madebuy/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput            = errs.New("invalid input")
	ErrTenantNotFound          = errs.New("tenant not found")
	ErrPieceNotFound           = errs.New("piece not found")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrInsufficientStock       = errs.New("insufficient stock")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const MaxLinesPerReserve = 100

type LineRequest struct {
	PieceID   uuid.UUID
	VariantID *uuid.UUID
	Quantity  int32
}

type ReservedLine struct {
	PieceID   uuid.UUID
	VariantID *uuid.UUID
	Quantity  int32
	// ReservationID is nil for unlimited pools: nothing to arbitrate, so no
	// counted hold is created.
	ReservationID *uuid.UUID
	Unlimited     bool
	ExpiresAt     *time.Time
}

type ReserveResult struct {
	Lines []ReservedLine
}

type LineFailure struct {
	PieceID   uuid.UUID
	VariantID *uuid.UUID
	Requested int32
	Available int64
}

// InsufficientStockError carries per-line detail so the storefront can tell
// the shopper exactly which item is the problem.
type InsufficientStockError struct {
	Lines []LineFailure
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %d line(s)", len(e.Lines))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

type ReservationCommands interface {
	// Reserve holds stock for the session's checkout window. All-or-nothing:
	// if any line cannot be satisfied, nothing is reserved and the returned
	// error is an *InsufficientStockError with per-line detail.
	Reserve(ctx context.Context, tenantID uuid.UUID, sessionID string, lines []LineRequest) (*ReserveResult, error)

	// Consume marks a hold as converted into a finalized order. Idempotent on
	// terminal reservations.
	Consume(ctx context.Context, tenantID, reservationID uuid.UUID) error

	// Release reclaims a hold early (checkout cancel). Idempotent on terminal
	// reservations.
	Release(ctx context.Context, tenantID, reservationID uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow             shared.UnitOfWork
	tenants         shared.TenantReadStore
	reservationRepo shared.ReservationRepository
	clock           clock.Clock
	holdTTL         time.Duration
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	tenants shared.TenantReadStore,
	reservationRepo shared.ReservationRepository,
	clk clock.Clock,
	holdTTL time.Duration,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:             uow,
		tenants:         tenants,
		reservationRepo: reservationRepo,
		clock:           clk,
		holdTTL:         holdTTL,
	}
}

type reserveLine struct {
	index    int
	line     reservation.Line
	quantity reservation.Quantity
}

func (c *reservationCommandsImpl) Reserve(ctx context.Context, tenantID uuid.UUID, sessionID string, lines []LineRequest) (*ReserveResult, error) {
	session, staged, err := c.validateReserveInput(tenantID, sessionID, lines)
	if err != nil {
		return nil, err
	}

	exists, err := c.tenants.Exists(ctx, tenantID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, ErrTenantNotFound
	}

	// Deterministic lock order across multi-line carts prevents two carts
	// holding row locks in opposite order from deadlocking.
	sort.Slice(staged, func(i, j int) bool {
		return staged[i].line.Key() < staged[j].line.Key()
	})

	result := &ReserveResult{Lines: make([]ReservedLine, len(lines))}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Reservations()
		now := c.clock.Now()

		var failures []LineFailure
		var pending []struct {
			index int
			res   *reservation.Reservation
		}

		for _, sl := range staged {
			stockRow, lockErr := repo.LockStock(ctx, tenantID, sl.line)
			if lockErr != nil {
				if infra.IsKind(lockErr, infra.KindNotFound) {
					return errs.Mark(lockErr, ErrPieceNotFound)
				}
				return errs.Mark(lockErr, ErrDatabaseOperationFailed)
			}

			if stockRow.Stock == nil {
				// Unlimited pool: always succeeds, no counted hold.
				result.Lines[sl.index] = ReservedLine{
					PieceID:   sl.line.PieceID,
					VariantID: sl.line.VariantID,
					Quantity:  sl.quantity.Value(),
					Unlimited: true,
				}
				continue
			}

			// Re-reserving from the same session replaces the prior hold
			// rather than stacking on top of it. Rolled back with the rest
			// of the transaction if any line fails.
			if _, relErr := repo.ReleaseSessionLine(ctx, tenantID, sl.line, session.String()); relErr != nil {
				return errs.Mark(relErr, ErrDatabaseOperationFailed)
			}

			reserved, sumErr := repo.ActiveQuantity(ctx, tenantID, sl.line, now, session.String())
			if sumErr != nil {
				return errs.Mark(sumErr, ErrDatabaseOperationFailed)
			}

			available := int64(*stockRow.Stock) - reserved
			if available < 0 {
				available = 0
			}

			if available < int64(sl.quantity.Value()) {
				failures = append(failures, LineFailure{
					PieceID:   sl.line.PieceID,
					VariantID: sl.line.VariantID,
					Requested: sl.quantity.Value(),
					Available: available,
				})
				continue
			}

			res, newErr := reservation.NewReservation(tenantID, sl.line, sl.quantity, session, now, c.holdTTL)
			if newErr != nil {
				return errs.Mark(newErr, ErrInvalidInput)
			}
			pending = append(pending, struct {
				index int
				res   *reservation.Reservation
			}{index: sl.index, res: res})
		}

		if len(failures) > 0 {
			// Returning the error rolls back the released prior holds too,
			// so a failed retry leaves the original reservation intact.
			return &InsufficientStockError{Lines: failures}
		}

		for _, p := range pending {
			if createErr := repo.Create(ctx, p.res); createErr != nil {
				return errs.Mark(createErr, ErrDatabaseOperationFailed)
			}
			id := p.res.ID()
			expiresAt := p.res.ExpiresAt()
			result.Lines[p.index] = ReservedLine{
				PieceID:       p.res.Line().PieceID,
				VariantID:     p.res.Line().VariantID,
				Quantity:      p.res.Quantity().Value(),
				ReservationID: &id,
				ExpiresAt:     &expiresAt,
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *reservationCommandsImpl) validateReserveInput(tenantID uuid.UUID, sessionID string, lines []LineRequest) (reservation.SessionID, []reserveLine, error) {
	if tenantID == uuid.Nil {
		return reservation.SessionID{}, nil, errs.Mark(errs.New("tenant id is required"), ErrInvalidInput)
	}
	if len(lines) == 0 {
		return reservation.SessionID{}, nil, errs.Mark(errs.New("at least one line is required"), ErrInvalidInput)
	}
	if len(lines) > MaxLinesPerReserve {
		return reservation.SessionID{}, nil, errs.Mark(errs.New("too many lines"), ErrInvalidInput)
	}

	session, err := reservation.NewSessionID(sessionID)
	if err != nil {
		return reservation.SessionID{}, nil, errs.Mark(err, ErrInvalidInput)
	}

	staged := make([]reserveLine, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		if l.PieceID == uuid.Nil {
			return reservation.SessionID{}, nil, errs.Mark(errs.New("piece id is required"), ErrInvalidInput)
		}
		qty, qtyErr := reservation.NewQuantity(l.Quantity)
		if qtyErr != nil {
			return reservation.SessionID{}, nil, errs.Mark(qtyErr, ErrInvalidInput)
		}
		line := reservation.Line{PieceID: l.PieceID, VariantID: l.VariantID}
		if _, dup := seen[line.Key()]; dup {
			return reservation.SessionID{}, nil, errs.Mark(errs.New("duplicate cart line"), ErrInvalidInput)
		}
		seen[line.Key()] = struct{}{}
		staged = append(staged, reserveLine{index: i, line: line, quantity: qty})
	}

	return session, staged, nil
}

func (c *reservationCommandsImpl) Consume(ctx context.Context, tenantID, reservationID uuid.UUID) error {
	return c.terminalTransition(ctx, tenantID, reservationID, reservation.StatusConsumed)
}

func (c *reservationCommandsImpl) Release(ctx context.Context, tenantID, reservationID uuid.UUID) error {
	return c.terminalTransition(ctx, tenantID, reservationID, reservation.StatusReleased)
}

func (c *reservationCommandsImpl) terminalTransition(ctx context.Context, tenantID, reservationID uuid.UUID, target reservation.Status) error {
	if tenantID == uuid.Nil || reservationID == uuid.Nil {
		return errs.Mark(errs.New("tenant id and reservation id are required"), ErrInvalidInput)
	}

	ok, err := c.reservationRepo.MarkIfActive(ctx, tenantID, reservationID, target)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if ok {
		return nil
	}

	// No active row matched: either the reservation is already terminal
	// (idempotent no-op, payment callbacks are redelivered) or it never
	// existed for this tenant.
	res, err := c.reservationRepo.Get(ctx, tenantID, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrReservationNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if res.Status().IsTerminal() {
		return nil
	}

	return errs.Mark(errs.New("reservation changed concurrently"), ErrDatabaseOperationFailed)
}
