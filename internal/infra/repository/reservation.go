package repository

import (
	"context"
	"errors"
	"time"

	"madebuy/internal/domain/reservation"
	"madebuy/internal/infra"
	"madebuy/internal/infra/db"
	"madebuy/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

var _ shared.ReservationRepository = (*ReservationRepository)(nil)

const lockPieceStockQuery = `
SELECT stock FROM pieces
WHERE id = $1 AND tenant_id = $2
FOR UPDATE`

const lockVariantStockQuery = `
SELECT stock FROM piece_variants
WHERE id = $1 AND piece_id = $2 AND tenant_id = $3
FOR UPDATE`

func (r *ReservationRepository) LockStock(ctx context.Context, tenantID uuid.UUID, line reservation.Line) (*shared.StockRow, error) {
	var stock *int32
	var err error

	if line.VariantID == nil {
		err = r.db.QueryRow(ctx, lockPieceStockQuery, line.PieceID, tenantID).Scan(&stock)
	} else {
		err = r.db.QueryRow(ctx, lockVariantStockQuery, *line.VariantID, line.PieceID, tenantID).Scan(&stock)
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("stock pool not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock stock row", err)
	}

	return &shared.StockRow{Stock: stock}, nil
}

const activeQuantityQuery = `
SELECT COALESCE(SUM(quantity), 0) FROM stock_reservations
WHERE tenant_id = $1
  AND piece_id = $2
  AND variant_id IS NOT DISTINCT FROM $3
  AND status = 'active'
  AND expires_at > $4
  AND ($5 = '' OR session_id <> $5)`

func (r *ReservationRepository) ActiveQuantity(ctx context.Context, tenantID uuid.UUID, line reservation.Line, now time.Time, excludeSessionID string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, activeQuantityQuery, tenantID, line.PieceID, line.VariantID, now, excludeSessionID).Scan(&total)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum active reservations", err)
	}
	return total, nil
}

const releaseSessionLineQuery = `
UPDATE stock_reservations
SET status = 'released'
WHERE tenant_id = $1
  AND piece_id = $2
  AND variant_id IS NOT DISTINCT FROM $3
  AND session_id = $4
  AND status = 'active'`

func (r *ReservationRepository) ReleaseSessionLine(ctx context.Context, tenantID uuid.UUID, line reservation.Line, sessionID string) (int64, error) {
	tag, err := r.db.Exec(ctx, releaseSessionLineQuery, tenantID, line.PieceID, line.VariantID, sessionID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release session holds", err)
	}
	return tag.RowsAffected(), nil
}

const createReservationQuery = `
INSERT INTO stock_reservations (id, tenant_id, piece_id, variant_id, quantity, session_id, status, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	line := res.Line()
	_, err := r.db.Exec(ctx, createReservationQuery,
		res.ID(),
		res.TenantID(),
		line.PieceID,
		line.VariantID,
		res.Quantity().Value(),
		res.SessionID().String(),
		res.Status().String(),
		res.CreatedAt(),
		res.ExpiresAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return infra.WrapRepoErr("reservation already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

const markIfActiveQuery = `
UPDATE stock_reservations
SET status = $1
WHERE id = $2 AND tenant_id = $3 AND status = 'active'`

func (r *ReservationRepository) MarkIfActive(ctx context.Context, tenantID, id uuid.UUID, status reservation.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, markIfActiveQuery, status.String(), id, tenantID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition reservation", err)
	}
	return tag.RowsAffected() == 1, nil
}

const getReservationQuery = `
SELECT id, piece_id, variant_id, quantity, session_id, status, created_at, expires_at
FROM stock_reservations
WHERE id = $1 AND tenant_id = $2`

func (r *ReservationRepository) Get(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		rowID     uuid.UUID
		pieceID   uuid.UUID
		variantID *uuid.UUID
		rawQty    int32
		rawSess   string
		rawStatus string
		createdAt time.Time
		expiresAt time.Time
	)
	err := r.db.QueryRow(ctx, getReservationQuery, id, tenantID).Scan(
		&rowID, &pieceID, &variantID, &rawQty, &rawSess, &rawStatus, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get reservation", err)
	}

	quantity, err := reservation.NewQuantity(rawQty)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt reservation row", err)
	}
	session, err := reservation.NewSessionID(rawSess)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt reservation row", err)
	}
	res, err := reservation.ReconstructReservation(
		rowID, tenantID,
		reservation.Line{PieceID: pieceID, VariantID: variantID},
		quantity, session,
		reservation.Status(rawStatus),
		createdAt, expiresAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt reservation row", err)
	}
	return res, nil
}

// Releasing expired holds is one conditional UPDATE, so overlapping sweep
// runs cannot double-release: the second run simply matches zero rows.
const releaseExpiredQuery = `
UPDATE stock_reservations
SET status = 'released'
WHERE status = 'active' AND expires_at <= $1`

func (r *ReservationRepository) ReleaseExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, releaseExpiredQuery, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release expired reservations", err)
	}
	return tag.RowsAffected(), nil
}
