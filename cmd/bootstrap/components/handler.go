package components

import (
	"madebuy/internal/handler"
	"madebuy/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCartHandler,
		api.NewReservationHandler,
		api.NewSweepHandler,
	),
	fx.Invoke(handler.NewRouter),
)
