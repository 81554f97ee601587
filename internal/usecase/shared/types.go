package shared

import (
	"context"
	"time"

	"madebuy/internal/domain/reservation"

	"github.com/google/uuid"
)

// StockRow is the authoritative stock figure for one pool, read under a row
// lock by the reserve path. A nil Stock means unlimited.
type StockRow struct {
	Stock *int32
}

// ReservationRepository is the single write gate for stock reservations.
// Implementations are bound to a DBTX at construction, so the same interface
// serves both pool-backed single statements and transactional work.
type ReservationRepository interface {
	// LockStock locks the piece or variant stock row for the rest of the
	// transaction, serializing concurrent reserve attempts on the same pool.
	LockStock(ctx context.Context, tenantID uuid.UUID, line reservation.Line) (*StockRow, error)

	// ActiveQuantity sums unexpired active holds for the pool, excluding the
	// given session's own holds when excludeSessionID is non-empty.
	ActiveQuantity(ctx context.Context, tenantID uuid.UUID, line reservation.Line, now time.Time, excludeSessionID string) (int64, error)

	// ReleaseSessionLine releases the session's prior active holds on the
	// pool, supporting idempotent re-reservation on checkout retry.
	ReleaseSessionLine(ctx context.Context, tenantID uuid.UUID, line reservation.Line, sessionID string) (int64, error)

	Create(ctx context.Context, res *reservation.Reservation) error

	// MarkIfActive transitions a reservation out of active, returning false
	// when no active row matched (already terminal, or unknown id).
	MarkIfActive(ctx context.Context, tenantID, id uuid.UUID, status reservation.Status) (bool, error)

	// Get rehydrates one reservation row into its domain entity.
	Get(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error)

	// ReleaseExpired transitions all active holds past their expiry, across
	// all tenants. Safe to run concurrently with itself.
	ReleaseExpired(ctx context.Context, now time.Time) (int64, error)
}

type TenantReadStore interface {
	Exists(ctx context.Context, tenantID uuid.UUID) (bool, error)
}
