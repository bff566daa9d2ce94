package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"deriv_bot/internal/modules/config"
	derivclient "deriv_bot/internal/modules/deriv_client"
	derivws "deriv_bot/internal/modules/deriv_websocket"
	"deriv_bot/internal/modules/health"
	telegram "deriv_bot/internal/modules/telegram_bot"
	"deriv_bot/internal/runner"
	"deriv_bot/pkg/logger"
	"deriv_bot/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	// до чтения конфига: ошибки старта тоже должны попасть в лог
	_ = logger.Init(os.Getenv("LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return ctx
			},
		),
		config.Module(),
		fx.Module("observability", fx.Invoke(setupObservability)),
		health.Module(),
		telegram.Module(),
		derivws.Module(),
		derivclient.Module(),
		runner.Module(),
	)
	if err := app.Start(context.Background()); err != nil {
		logger.Fatal("start: %v", err)
	}

	// сессия сама зовёт Shutdown; сигнал отменяет ctx и сессия завершается как cancelled
	var sig fx.ShutdownSignal
	select {
	case sig = <-app.Wait():
	case <-ctx.Done():
		sig = fx.ShutdownSignal{Signal: syscall.SIGTERM}
	}

	if err := app.Stop(context.Background()); err != nil {
		logger.Error("stop: %v", err)
	}
	if sig.ExitCode != 0 {
		logger.Fatal("session failed, exit code %d", sig.ExitCode)
	}
	logger.Sync()
	os.Exit(0)
}

func setupObservability(lc fx.Lifecycle, cfg *config.Config, tc tracing.Config) error {
	logger.SetServiceName(cfg.Service.Name)
	tracing.SetServiceName(cfg.Service.Name)
	if err := logger.Init(cfg.Service.LogLevel); err != nil {
		return err
	}
	if !tc.Enabled() {
		return nil
	}
	_, closeTracer, err := tracing.InitTracer(tc)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			return nil
		},
	})
	return nil
}
