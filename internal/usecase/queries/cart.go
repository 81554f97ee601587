package queries

import (
	"context"
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
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// UnlimitedAvailable is the sentinel reported for pools without an
// authoritative stock figure.
const UnlimitedAvailable int64 = -1

const MaxLinesPerValidate = 100

// AvailabilityRow is one pool's stock figure and unexpired reserved sum,
// read in a single statement. Nil Stock means unlimited.
type AvailabilityRow struct {
	Stock    *int32
	Reserved int64
}

type StockReadStore interface {
	LineAvailability(ctx context.Context, tenantID uuid.UUID, line reservation.Line, now time.Time, excludeSessionID string) (*AvailabilityRow, error)
}

type CartLine struct {
	PieceID   uuid.UUID
	VariantID *uuid.UUID
	Quantity  int32
}

type CartLineResult struct {
	PieceID   uuid.UUID
	VariantID *uuid.UUID
	Requested int32
	Available int64
	Valid     bool
}

type CartValidationResult struct {
	Valid bool
	Lines []CartLineResult
}

type CartQueries interface {
	// ValidateCart recomputes availability for each line without creating,
	// modifying or deleting anything. Advisory only: the reserve path is the
	// authoritative gate and re-checks under a row lock. A non-empty
	// sessionID excludes that session's own holds, so a shopper is not
	// counted against themselves on re-validation.
	ValidateCart(ctx context.Context, tenantID uuid.UUID, sessionID string, lines []CartLine) (*CartValidationResult, error)
}

type cartQueriesImpl struct {
	stockStore StockReadStore
	tenants    shared.TenantReadStore
	clock      clock.Clock
}

func NewCartQueries(stockStore StockReadStore, tenants shared.TenantReadStore, clk clock.Clock) CartQueries {
	return &cartQueriesImpl{
		stockStore: stockStore,
		tenants:    tenants,
		clock:      clk,
	}
}

func (q *cartQueriesImpl) ValidateCart(ctx context.Context, tenantID uuid.UUID, sessionID string, lines []CartLine) (*CartValidationResult, error) {
	if tenantID == uuid.Nil {
		return nil, errs.Mark(errs.New("tenant id is required"), ErrInvalidInput)
	}
	if len(lines) == 0 {
		return nil, errs.Mark(errs.New("at least one line is required"), ErrInvalidInput)
	}
	if len(lines) > MaxLinesPerValidate {
		return nil, errs.Mark(errs.New("too many lines"), ErrInvalidInput)
	}
	for _, l := range lines {
		if l.PieceID == uuid.Nil || l.Quantity < 1 {
			return nil, errs.Mark(errs.New("each line needs a piece id and a positive quantity"), ErrInvalidInput)
		}
	}

	exists, err := q.tenants.Exists(ctx, tenantID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, ErrTenantNotFound
	}

	now := q.clock.Now()
	result := &CartValidationResult{Valid: true, Lines: make([]CartLineResult, len(lines))}

	for i, l := range lines {
		line := reservation.Line{PieceID: l.PieceID, VariantID: l.VariantID}

		row, availErr := q.stockStore.LineAvailability(ctx, tenantID, line, now, sessionID)
		if availErr != nil {
			if infra.IsKind(availErr, infra.KindNotFound) {
				// Removed or never-existed listing: report the line honestly
				// instead of failing the whole cart.
				result.Lines[i] = CartLineResult{
					PieceID:   l.PieceID,
					VariantID: l.VariantID,
					Requested: l.Quantity,
					Available: 0,
					Valid:     false,
				}
				result.Valid = false
				continue
			}
			return nil, errs.Mark(availErr, ErrDatabaseOperationFailed)
		}

		lineResult := CartLineResult{
			PieceID:   l.PieceID,
			VariantID: l.VariantID,
			Requested: l.Quantity,
		}

		if row.Stock == nil {
			lineResult.Available = UnlimitedAvailable
			lineResult.Valid = true
		} else {
			available := int64(*row.Stock) - row.Reserved
			if available < 0 {
				available = 0
			}
			lineResult.Available = available
			lineResult.Valid = available >= int64(l.Quantity)
		}

		if !lineResult.Valid {
			result.Valid = false
		}
		result.Lines[i] = lineResult
	}

	return result, nil
}
