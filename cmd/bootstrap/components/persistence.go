package components

import (
	"madebuy/internal/infra/db"
	"madebuy/internal/infra/readstore"
	"madebuy/internal/infra/repository"
	"madebuy/internal/infra/uow"
	"madebuy/internal/usecase/queries"
	"madebuy/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Stock availability (validator read path)
		fx.Annotate(
			readstore.NewStockReadStore,
			fx.As(new(queries.StockReadStore)),
		),
		// Tenant
		fx.Annotate(
			readstore.NewTenantReadStore,
			fx.As(new(shared.TenantReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Reservation (pool-bound; transactional writes go through the UoW)
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(shared.ReservationRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
