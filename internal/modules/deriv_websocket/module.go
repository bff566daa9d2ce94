package deriv_websocket

import (
	"deriv_bot/internal/modules/deriv_websocket/service"
	healthsvc "deriv_bot/internal/modules/health/service"

	"go.uber.org/fx"
)

// Module отдаёт стример котировок Deriv; сам поток запускает раннер на старте.
func Module() fx.Option {
	return fx.Module("deriv_websocket",
		fx.Provide(
			func(s *healthsvc.State) service.HealthState { return s },
			service.NewClient,
		),
	)
}
