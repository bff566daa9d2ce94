package strategy

import (
	"fmt"
	"math"

	"deriv_bot/internal/models"
)

// Interpret переводит RSI в сигнал по чётности.
// Модуль берётся от дробного значения как есть: 50.0 -> EVEN, 51.0 -> ODD, 50.4 -> ODD.
func Interpret(rsi float64, ok bool) models.TradeSignal {
	if !ok {
		return models.SignalNone
	}
	if math.Mod(rsi, 2) == 0 {
		return models.SignalEven
	}
	return models.SignalOdd
}

// Evaluation — что стратегия увидела на текущем окне.
type Evaluation struct {
	RSI    float64
	HasRSI bool
	Signal models.TradeSignal
}

func (e Evaluation) String() string {
	if !e.HasRSI {
		return "RSI: warmup"
	}
	return fmt.Sprintf("RSI=%.1f signal=%s", e.RSI, e.Signal)
}

// Engine — то, что дергает раннер раунда.
type Engine interface {
	Evaluate(series []float64) Evaluation
	Period() int
}

// EvenOdd — RSI + чётность, единственная стратегия бота.
type EvenOdd struct {
	period int
}

func NewEvenOdd(period int) *EvenOdd {
	if period < 1 {
		period = 14
	}
	return &EvenOdd{period: period}
}

func (s *EvenOdd) Period() int { return s.period }

func (s *EvenOdd) Evaluate(series []float64) Evaluation {
	v, ok := RSI(series, s.period)
	return Evaluation{RSI: v, HasRSI: ok, Signal: Interpret(v, ok)}
}
