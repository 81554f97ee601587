package readstore

import (
	"context"
	"errors"
	"time"

	"madebuy/internal/domain/reservation"
	"madebuy/internal/infra"
	"madebuy/internal/infra/db"
	"madebuy/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type StockReadStore struct {
	db db.DBTX
}

func NewStockReadStore(dbtx db.DBTX) *StockReadStore {
	return &StockReadStore{db: dbtx}
}

var _ queries.StockReadStore = (*StockReadStore)(nil)

// Stock figure and reserved sum come back from one statement, so each line is
// internally consistent. The validator is advisory; the reserve path re-checks
// under a row lock.
const pieceAvailabilityQuery = `
SELECT p.stock,
       COALESCE((
           SELECT SUM(r.quantity) FROM stock_reservations r
           WHERE r.tenant_id = p.tenant_id
             AND r.piece_id = p.id
             AND r.variant_id IS NULL
             AND r.status = 'active'
             AND r.expires_at > $3
             AND ($4 = '' OR r.session_id <> $4)
       ), 0)
FROM pieces p
WHERE p.id = $1 AND p.tenant_id = $2`

const variantAvailabilityQuery = `
SELECT v.stock,
       COALESCE((
           SELECT SUM(r.quantity) FROM stock_reservations r
           WHERE r.tenant_id = v.tenant_id
             AND r.piece_id = v.piece_id
             AND r.variant_id = v.id
             AND r.status = 'active'
             AND r.expires_at > $4
             AND ($5 = '' OR r.session_id <> $5)
       ), 0)
FROM piece_variants v
WHERE v.id = $1 AND v.piece_id = $2 AND v.tenant_id = $3`

func (s *StockReadStore) LineAvailability(ctx context.Context, tenantID uuid.UUID, line reservation.Line, now time.Time, excludeSessionID string) (*queries.AvailabilityRow, error) {
	var stock *int32
	var reserved int64
	var err error

	if line.VariantID == nil {
		err = s.db.QueryRow(ctx, pieceAvailabilityQuery, line.PieceID, tenantID, now, excludeSessionID).Scan(&stock, &reserved)
	} else {
		err = s.db.QueryRow(ctx, variantAvailabilityQuery, *line.VariantID, line.PieceID, tenantID, now, excludeSessionID).Scan(&stock, &reserved)
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("stock pool not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read line availability", err)
	}

	return &queries.AvailabilityRow{Stock: stock, Reserved: reserved}, nil
}
