package runner

import (
	"context"

	"deriv_bot/internal/metrics"
	"deriv_bot/internal/models"
	"deriv_bot/internal/report"
	"deriv_bot/internal/strategy"
	"deriv_bot/pkg/logger"
)

// Ingest перекладывает котировки из потока в окно и журнал прогона.
// Выходит, когда поток закрыт или ctx отменён.
func Ingest(ctx context.Context, quotes <-chan models.Quote, buf *strategy.TickBuffer, summary *report.RunSummary, symbol string) {
	ticks := metrics.TicksTotal.WithLabelValues(symbol)
	for {
		select {
		case <-ctx.Done():
			return
		case q, ok := <-quotes:
			if !ok {
				logger.Warn("[INGEST] tick stream closed, rounds continue on the last window")
				return
			}
			buf.Record(q.Price)
			summary.AddTick(q.Price)
			ticks.Inc()
			logger.Debug("[TICK] %s %.4f", symbol, q.Price)
		}
	}
}
