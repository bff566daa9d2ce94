package config

import (
	"deriv_bot/pkg/tracing"

	"go.uber.org/fx"
)

// Module отдаёт *Config и производные настройки остальным модулям.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			NewConfig,
			func(c *Config) tracing.Config {
				return tracing.Config{Host: c.Tracing.Host, Port: c.Tracing.Port}
			},
		),
	)
}
