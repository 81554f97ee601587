package commands

import (
	"context"
	"log/slog"

	"madebuy/internal/pkg/clock"
	"madebuy/internal/pkg/errs"
	"madebuy/internal/usecase/shared"
)

type SweepCommands interface {
	// SweepExpired releases all active holds past their expiry and returns
	// the number cleaned. Idempotent: an immediately repeated run cleans
	// zero. Errors are operational; the external scheduler simply retries on
	// its next tick.
	SweepExpired(ctx context.Context) (int64, error)
}

type sweepCommandsImpl struct {
	reservationRepo shared.ReservationRepository
	clock           clock.Clock
}

func NewSweepCommands(reservationRepo shared.ReservationRepository, clk clock.Clock) SweepCommands {
	return &sweepCommandsImpl{
		reservationRepo: reservationRepo,
		clock:           clk,
	}
}

func (c *sweepCommandsImpl) SweepExpired(ctx context.Context) (int64, error) {
	count, err := c.reservationRepo.ReleaseExpired(ctx, c.clock.Now())
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if count > 0 {
		slog.Info("released expired stock reservations", "count", count)
	}

	return count, nil
}
