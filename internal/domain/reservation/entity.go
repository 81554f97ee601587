package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTenant      = errors.New("invalid tenant id")
	ErrInvalidTTL         = errors.New("hold ttl must be positive")
	ErrNotActive          = errors.New("reservation is not active")
	ErrInvalidStatusValue = errors.New("invalid reservation status")
)

// Reservation is a temporary, expiring hold on stock quantity tied to an
// in-progress checkout session. The quantity is immutable after creation;
// a changed quantity is modeled as release + new reservation. The hold never
// decrements the authoritative stock column, it only subtracts from the
// available figure until it is released or consumed.
type Reservation struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	line      Line
	quantity  Quantity
	sessionID SessionID
	status    Status
	createdAt time.Time
	expiresAt time.Time
}

// NewReservation creates an active hold expiring at now+ttl. Expiry is fixed
// here; there is no sliding-window renewal.
func NewReservation(
	tenantID uuid.UUID,
	line Line,
	quantity Quantity,
	sessionID SessionID,
	now time.Time,
	ttl time.Duration,
) (*Reservation, error) {
	if tenantID == uuid.Nil {
		return nil, ErrInvalidTenant
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	return &Reservation{
		id:        uuid.New(),
		tenantID:  tenantID,
		line:      line,
		quantity:  quantity,
		sessionID: sessionID,
		status:    StatusActive,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}, nil
}

func ReconstructReservation(
	id, tenantID uuid.UUID,
	line Line,
	quantity Quantity,
	sessionID SessionID,
	status Status,
	createdAt, expiresAt time.Time,
) (*Reservation, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatusValue
	}
	return &Reservation{
		id:        id,
		tenantID:  tenantID,
		line:      line,
		quantity:  quantity,
		sessionID: sessionID,
		status:    status,
		createdAt: createdAt,
		expiresAt: expiresAt,
	}, nil
}

// Release reclaims the hold (expiry or explicit cancellation). Releasing a
// terminal reservation is a no-op so retried payment callbacks cannot fail.
func (r *Reservation) Release() error {
	if r.status.IsTerminal() {
		return nil
	}
	if r.status != StatusActive {
		return ErrNotActive
	}
	r.status = StatusReleased
	return nil
}

// Consume converts the hold into a finalized order on payment confirmation.
// Terminal states no-op: upstream payment providers redeliver callbacks, and
// a retried confirmation must not fail.
func (r *Reservation) Consume() error {
	if r.status.IsTerminal() {
		return nil
	}
	if r.status != StatusActive {
		return ErrNotActive
	}
	r.status = StatusConsumed
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

func (r *Reservation) IsExpired(now time.Time) bool {
	return now.After(r.expiresAt)
}

// CountsAgainstStock reports whether this hold subtracts from availability.
func (r *Reservation) CountsAgainstStock(now time.Time) bool {
	return r.status == StatusActive && !r.IsExpired(now)
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) TenantID() uuid.UUID  { return r.tenantID }
func (r *Reservation) Line() Line           { return r.line }
func (r *Reservation) Quantity() Quantity   { return r.quantity }
func (r *Reservation) SessionID() SessionID { return r.sessionID }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) ExpiresAt() time.Time { return r.expiresAt }
