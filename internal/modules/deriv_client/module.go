package deriv_client

import (
	"deriv_bot/internal/modules/deriv_client/service"

	"go.uber.org/fx"
)

// Module отдаёт брокерский клиент; соединение открывает раннер при старте сессии.
func Module() fx.Option {
	return fx.Module("deriv_client",
		fx.Provide(service.NewClient),
	)
}
