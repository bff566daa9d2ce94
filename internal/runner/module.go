package runner

import (
	"context"

	"deriv_bot/internal/models"
	"deriv_bot/internal/modules/config"
	deriv "deriv_bot/internal/modules/deriv_client/service"
	ticks "deriv_bot/internal/modules/deriv_websocket/service"
	healthsvc "deriv_bot/internal/modules/health/service"
	"deriv_bot/internal/notify"
	"deriv_bot/internal/report"
	"deriv_bot/internal/strategy"
	"deriv_bot/pkg/logger"

	"go.uber.org/fx"
)

func newEngine(cfg *config.Config) strategy.Engine {
	return strategy.NewEvenOdd(cfg.Trading.RSIPeriod)
}

func newBuffer(cfg *config.Config) *strategy.TickBuffer {
	return strategy.NewTickBuffer(cfg.Trading.RSIPeriod)
}

func newReporter(cfg *config.Config, n notify.Notifier) report.Reporter {
	return report.Multi{
		report.NewYAMLFile(cfg.Report.Path),
		report.NewText(n),
	}
}

func newController(
	cfg *config.Config,
	broker *deriv.Client,
	engine strategy.Engine,
	buffer *strategy.TickBuffer,
	summary *report.RunSummary,
	reporter report.Reporter,
	n notify.Notifier,
	state *healthsvc.State,
) *RoundController {
	return NewRoundController(SettingsFromConfig(cfg), Deps{
		Broker:   broker,
		Engine:   engine,
		Buffer:   buffer,
		Summary:  summary,
		Reporter: reporter,
		Notifier: n,
		Health:   state,
	})
}

func newRunner(cfg *config.Config, source *ticks.Client, ctrl *RoundController, buffer *strategy.TickBuffer, summary *report.RunSummary) *Runner {
	return New(source, ctrl, buffer, summary, cfg.Deriv.Symbol)
}

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			newEngine,
			newBuffer,
			report.NewRunSummary,
			newReporter,
			newController,
			newRunner,
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			r *Runner,
			sd fx.Shutdowner,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					r.Start(ctx, func(res models.SessionResult, err error) {
						code := 0
						if err != nil {
							logger.Error("[RUNNER] session failed: %v", err)
							code = 1
						} else {
							logger.Info("[RUNNER] session finished: %s", res.Terminal)
						}
						if err := sd.Shutdown(fx.ExitCode(code)); err != nil {
							logger.Error("[RUNNER] shutdown: %v", err)
						}
					})
					return nil
				},
				OnStop: func(stopCtx context.Context) error {
					return r.Stop(stopCtx)
				},
			})
		}),
	)
}
