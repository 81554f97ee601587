package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"madebuy/internal/handler/api"
	"madebuy/internal/handler/middleware"
	"madebuy/internal/pkg/config"
	"madebuy/internal/pkg/jwt"
	"madebuy/internal/pkg/ratelimit"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	cartHandler *api.CartHandler,
	reservationHandler *api.ReservationHandler,
	sweepHandler *api.SweepHandler,
	jwtService *jwt.Service,
	limiter *ratelimit.Limiter,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, cartHandler, reservationHandler, sweepHandler, jwtService, limiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	cartHandler *api.CartHandler,
	reservationHandler *api.ReservationHandler,
	sweepHandler *api.SweepHandler,
	jwtService *jwt.Service,
	limiter *ratelimit.Limiter,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		storefront := apiGroup.Group("/storefront")
		storefront.Use(middleware.RateLimitMiddleware(limiter, cfg.RateLimit))
		{
			addRoutes(storefront, []route{
				{Method: http.MethodPost, Path: "/cart/validate", Handler: cartHandler.ValidateCart},
			})
		}

		internal := apiGroup.Group("/internal")
		{
			reservations := internal.Group("/reservations")
			reservations.Use(middleware.RequireScope(jwtService, jwt.ScopeCheckout))
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
			})

			finalize := internal.Group("/reservations")
			finalize.Use(middleware.RequireScope(jwtService, jwt.ScopeOrders))
			addRoutes(finalize, []route{
				{Method: http.MethodPost, Path: "/:id/consume", Handler: reservationHandler.ConsumeReservation},
				{Method: http.MethodPost, Path: "/:id/release", Handler: reservationHandler.ReleaseReservation},
			})
		}

		jobs := apiGroup.Group("/jobs")
		jobs.Use(middleware.RequireSweepSecret(cfg.Sweep.Secret))
		{
			addRoutes(jobs, []route{
				{Method: http.MethodPost, Path: "/reservations/sweep", Handler: sweepHandler.SweepExpired},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
