package telegram

import (
	"context"
	"fmt"
	"time"

	"deriv_bot/internal/modules/config"
	healthsvc "deriv_bot/internal/modules/health/service"
	"deriv_bot/internal/notify"
	"deriv_bot/pkg/logger"

	"go.uber.org/fx"
)

// newTelegram — без токена или chat_id бот не поднимается, уведомления идут в лог.
func newTelegram(cfg *config.Config) (*notify.Telegram, error) {
	if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
		logger.Info("[TG] token or chat_id not set, notifications go to log")
		return nil, nil
	}
	return notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
}

func newNotifier(tg *notify.Telegram) notify.Notifier {
	if tg == nil {
		return notify.NewStdout()
	}
	return tg
}

// StatusText — ответ на /status.
func StatusText(cfg *config.Config, s *healthsvc.State) string {
	last := "—"
	if t := s.LastTick(); !t.IsZero() {
		last = fmt.Sprintf("%s назад", time.Since(t).Truncate(time.Second))
	}
	terminal := s.Terminal()
	if terminal == "" {
		terminal = "running"
	}
	return fmt.Sprintf(
		"📊 %s\nРаунд: %d/%d\nБаланс: %.2f %s\nПоток: %v, последний тик: %s\nСостояние: %s",
		cfg.Deriv.Symbol,
		s.Round(), cfg.Trading.TotalRounds,
		s.Balance(), cfg.Trading.Currency,
		s.WSConnected(), last,
		terminal,
	)
}

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			newTelegram,
			newNotifier,
		),
		fx.Invoke(
			func(lc fx.Lifecycle, cfg *config.Config, tg *notify.Telegram, state *healthsvc.State) {
				if tg == nil {
					return
				}
				tg.Handle("status", func(context.Context) string { return StatusText(cfg, state) })
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						// ctx хука живёт только на время старта
						return tg.Start(context.WithoutCancel(ctx))
					},
					OnStop: func(ctx context.Context) error {
						tg.Stop()
						return nil
					},
				})
			},
		),
	)
}
