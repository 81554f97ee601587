package readstore

import (
	"context"

	"madebuy/internal/infra"
	"madebuy/internal/infra/db"
	"madebuy/internal/usecase/shared"

	"github.com/google/uuid"
)

type TenantReadStore struct {
	db db.DBTX
}

func NewTenantReadStore(dbtx db.DBTX) *TenantReadStore {
	return &TenantReadStore{db: dbtx}
}

var _ shared.TenantReadStore = (*TenantReadStore)(nil)

const tenantExistsQuery = `SELECT EXISTS (SELECT 1 FROM tenants WHERE id = $1)`

func (s *TenantReadStore) Exists(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, tenantExistsQuery, tenantID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check tenant", err)
	}
	return exists, nil
}
