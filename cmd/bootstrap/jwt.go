package bootstrap

import (
	"time"

	"madebuy/internal/pkg/config"
	"madebuy/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	tokenDuration, err := time.ParseDuration(cfg.Auth.ServiceTokenDuration)
	if err != nil {
		panic("invalid SERVICE_TOKEN_DURATION: " + err.Error())
	}

	return jwt.NewService(cfg.Auth.ServiceTokenSecret, tokenDuration)
}
