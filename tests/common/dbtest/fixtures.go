//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestTenant(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	tenantID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO tenants (id, name) VALUES ($1, $2)", tenantID, name)
	require.NoError(t, err)

	return tenantID
}

// CreateTestPiece inserts a piece; pass nil stock for an unlimited pool.
func CreateTestPiece(t *testing.T, db DBLike, tenantID uuid.UUID, title string, stock *int32) uuid.UUID {
	t.Helper()

	pieceID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO pieces (id, tenant_id, title, price_cents, stock) VALUES ($1, $2, $3, $4, $5)",
		pieceID, tenantID, title, 4500, stock)
	require.NoError(t, err)

	return pieceID
}

func CreateTestVariant(t *testing.T, db DBLike, tenantID, pieceID uuid.UUID, sku string, stock *int32) uuid.UUID {
	t.Helper()

	variantID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO piece_variants (id, tenant_id, piece_id, sku, price_cents, stock) VALUES ($1, $2, $3, $4, $5, $6)",
		variantID, tenantID, pieceID, sku, 4500, stock)
	require.NoError(t, err)

	return variantID
}

func StockOf(n int32) *int32 {
	return &n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO tenants (id, name) VALUES
		    (gen_random_uuid(), 'Default Tenant')
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
