package strategy

import (
	"deriv_bot/internal/helper"
)

// RSI считает индекс относительной силы по первым period котировкам серии.
// ok=false, если котировок меньше period ("ещё прогрев", не ошибка).
//
// Средние берутся по массивам длины period, где нулевой слот всегда 0:
// реальных дельт period-1, делим на period. Так считает исходная стратегия,
// на этом завязаны пороги — не «чинить».
func RSI(series []float64, period int) (float64, bool) {
	if period < 1 || len(series) < period {
		return 0, false
	}

	gains := make([]float64, period)
	losses := make([]float64, period)
	for i := 1; i < period; i++ {
		change := series[i] - series[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := mean(gains)
	avgLoss := mean(losses)
	if avgLoss == 0 {
		return 100, true
	}

	rs := avgGain / avgLoss
	rsi := 100 - (100 / (1 + rs))
	return helper.RoundPlaces(rsi, 1), true
}

func mean(xs []float64) float64 {
	var sum float64
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}
