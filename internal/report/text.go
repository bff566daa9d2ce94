package report

import (
	"context"
	"fmt"
	"strings"

	"deriv_bot/internal/models"
	"deriv_bot/internal/notify"

	"github.com/shopspring/decimal"
)

var terminalText = map[models.Terminal]string{
	models.TerminalTakeProfitHit:   "🎯 Take profit",
	models.TerminalStopLossHit:     "🛑 Stop loss",
	models.TerminalRoundsExhausted: "🏁 Раунды закончились",
	models.TerminalCancelled:       "⛔️ Остановлено",
	models.TerminalStartupFailed:   "❗️ Сессия не стартовала",
}

// Text отправляет короткую сводку в нотифайер.
type Text struct {
	n notify.Notifier
}

func NewText(n notify.Notifier) *Text {
	return &Text{n: n}
}

func (t *Text) Report(_ context.Context, summary *RunSummary, result models.SessionResult) error {
	if t.n == nil {
		return nil
	}
	t.n.Send(FormatSummary(summary, result))
	return nil
}

// FormatSummary — текст итога прогона.
func FormatSummary(summary *RunSummary, result models.SessionResult) string {
	var b strings.Builder

	title, ok := terminalText[result.Terminal]
	if !ok {
		title = "Сессия завершена"
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	profit := decimal.NewFromFloat(result.FinalBalance).Sub(decimal.NewFromFloat(result.InitialBalance))
	sign := ""
	if profit.IsPositive() {
		sign = "+"
	}
	fmt.Fprintf(&b, "Раундов: %d (W %d / L %d)\n", result.Rounds, result.Wins, result.Losses)
	fmt.Fprintf(&b, "Баланс: %s -> %s (%s%s)\n",
		decimal.NewFromFloat(result.InitialBalance).StringFixed(2),
		decimal.NewFromFloat(result.FinalBalance).StringFixed(2),
		sign, profit.StringFixed(2))

	if summary == nil {
		return b.String()
	}
	st := summary.Stats()
	fmt.Fprintf(&b, "Тиков: %d, сделок: %d\n", st.Ticks, st.Trades)
	for _, tr := range summary.Trades() {
		fmt.Fprintf(&b, "#%d %s %s @ %v -> %s\n",
			tr.Round, tr.ContractType.Label(), tr.ContractType, tr.Tick,
			decimal.NewFromFloat(tr.SellPrice).StringFixed(2))
	}
	return b.String()
}
