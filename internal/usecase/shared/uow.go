package shared

import (
	"context"
)

// UnitOfWork scopes repository work to a transaction. The reserve path needs
// one: the row lock, the reserved-sum read and the inserts must commit or
// roll back together.
type UnitOfWork interface {
	// Within: ReadCommitted transaction with retry on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
}
