package components

import (
	"madebuy/internal/pkg/clock"
	"madebuy/internal/pkg/config"
	"madebuy/internal/usecase/commands"
	"madebuy/internal/usecase/queries"
	"madebuy/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(
			uow shared.UnitOfWork,
			tenants shared.TenantReadStore,
			reservationRepo shared.ReservationRepository,
			clk clock.Clock,
			cfg config.Config,
		) commands.ReservationCommands {
			return commands.NewReservationCommands(uow, tenants, reservationRepo, clk, cfg.Reservation.TTL)
		},
		commands.NewSweepCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCartQueries,
	),
)
