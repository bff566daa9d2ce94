package runner

import (
	"context"
	"time"

	"deriv_bot/internal/helper"
	"deriv_bot/internal/metrics"
	"deriv_bot/internal/models"
	"deriv_bot/internal/modules/config"
	deriv "deriv_bot/internal/modules/deriv_client/service"
	"deriv_bot/internal/notify"
	"deriv_bot/internal/report"
	"deriv_bot/internal/strategy"
	"deriv_bot/pkg/logger"
	"deriv_bot/pkg/tracing"

	"github.com/pkg/errors"
)

// Settings — параметры сессии, фиксируются на старте.
type Settings struct {
	Token        string
	Symbol       string
	Currency     string
	BetAmount    float64
	TotalRounds  int
	TakeProfit   float64
	StopLoss     float64
	PollInterval time.Duration
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Token:        cfg.Deriv.Token,
		Symbol:       cfg.Deriv.Symbol,
		Currency:     cfg.Trading.Currency,
		BetAmount:    cfg.Trading.BetAmount,
		TotalRounds:  cfg.Trading.TotalRounds,
		TakeProfit:   cfg.Trading.TakeProfit,
		StopLoss:     cfg.Trading.StopLoss,
		PollInterval: cfg.Trading.PollInterval,
	}
}

// RoundController ведёт сессию раунд за раундом. Состояние сессии меняет только он.
type RoundController struct {
	set      Settings
	broker   Broker
	engine   strategy.Engine
	buffer   *strategy.TickBuffer
	summary  *report.RunSummary
	reporter report.Reporter
	notifier notify.Notifier
	health   HealthState

	session models.SessionState
}

type Deps struct {
	Broker   Broker
	Engine   strategy.Engine
	Buffer   *strategy.TickBuffer
	Summary  *report.RunSummary
	Reporter report.Reporter
	Notifier notify.Notifier
	Health   HealthState
}

func NewRoundController(set Settings, d Deps) *RoundController {
	c := &RoundController{
		set:      set,
		broker:   d.Broker,
		engine:   d.Engine,
		buffer:   d.Buffer,
		summary:  d.Summary,
		reporter: d.Reporter,
		notifier: d.Notifier,
		health:   d.Health,
		session: models.SessionState{
			TakeProfit: set.TakeProfit,
			StopLoss:   set.StopLoss,
		},
	}
	if c.health == nil {
		c.health = nopHealth{}
	}
	if c.notifier == nil {
		c.notifier = notify.NewStdout()
	}
	return c
}

// Session — копия счётчиков (для тестов и /status).
func (c *RoundController) Session() models.SessionState { return c.session }

// Run: подключение, авторизация, стартовый баланс, раунды до терминала.
// Ошибка возвращается только если сессия не стартовала.
func (c *RoundController) Run(ctx context.Context) (models.SessionResult, error) {
	if err := c.broker.Connect(ctx); err != nil {
		c.health.SetTerminal(string(models.TerminalStartupFailed))
		return models.SessionResult{Terminal: models.TerminalStartupFailed}, &StartupError{Step: "connect", Err: err}
	}

	result := models.SessionResult{}
	defer func() {
		c.finish(context.WithoutCancel(ctx), result)
	}()

	if _, err := c.broker.Authorize(ctx, c.set.Token); err != nil {
		result.Terminal = models.TerminalStartupFailed
		return result, &StartupError{Step: "authorize", Err: err}
	}
	balance, err := c.broker.Balance(ctx)
	if err != nil {
		result.Terminal = models.TerminalStartupFailed
		return result, &StartupError{Step: "balance", Err: err}
	}

	c.session.InitialBalance = balance
	c.session.CurrentBalance = balance
	result.InitialBalance = balance
	result.FinalBalance = balance
	c.health.SetBalance(balance)
	c.health.SetReady(true)
	metrics.SessionBalance.Set(balance)

	logger.Info("[SESSION] start balance=%.2f rounds=%d bet=%.2f tp=%.2f sl=%.2f",
		balance, c.set.TotalRounds, c.set.BetAmount, c.set.TakeProfit, c.set.StopLoss)
	c.notifier.Sendf("▶️ Сессия %s: баланс %.2f %s, раундов %d", c.set.Symbol, balance, c.set.Currency, c.set.TotalRounds)

	terminal := models.TerminalNone
	rounds := 0
	for n := 1; n <= c.set.TotalRounds; n++ {
		round := c.RunRound(ctx, n)
		if round.Reason == reasonCancelled {
			terminal = models.TerminalCancelled
			break
		}
		rounds = n
		if round.Terminal != models.TerminalNone {
			terminal = round.Terminal
			break
		}
		if ctx.Err() != nil {
			terminal = models.TerminalCancelled
			break
		}
	}
	if terminal == models.TerminalNone {
		terminal = models.TerminalRoundsExhausted
	}

	result = c.result(terminal, rounds)
	logger.Info("[SESSION] %s after %d rounds: balance %.2f -> %.2f (W %d / L %d)",
		terminal, rounds, result.InitialBalance, result.FinalBalance, result.Wins, result.Losses)
	return result, nil
}

func (c *RoundController) result(terminal models.Terminal, rounds int) models.SessionResult {
	return models.SessionResult{
		Terminal:       terminal,
		Rounds:         rounds,
		Wins:           c.session.Wins,
		Losses:         c.session.Losses,
		InitialBalance: c.session.InitialBalance,
		FinalBalance:   c.session.CurrentBalance,
	}
}

// finish: отключение, потом отчёт. Ошибки только логируются.
func (c *RoundController) finish(ctx context.Context, result models.SessionResult) {
	c.health.SetReady(false)
	c.health.SetTerminal(string(result.Terminal))

	if err := c.broker.Disconnect(ctx); err != nil {
		logger.Error("[SESSION] disconnect: %v", err)
	}
	if c.reporter == nil {
		return
	}
	if err := c.reporter.Report(ctx, c.summary, result); err != nil {
		logger.Error("[SESSION] report: %v", err)
	}
}

const (
	reasonCancelled        = "cancelled"
	reasonInsufficientData = "insufficient data"
	reasonNoSignal         = "no signal"
)

// RunRound — один раунд: пауза, сигнал, предложение, покупка, исход, баланс, стоп-условия.
func (c *RoundController) RunRound(ctx context.Context, n int) (round models.Round) {
	span, ctx := tracing.StartSpan(ctx, "round")
	span.SetTag("round", n)
	defer func() {
		span.SetTag("outcome", string(round.Outcome))
		tracing.Finish(span, round.Err)
		if round.Reason != reasonCancelled {
			metrics.ObserveRound(round)
		}
	}()

	round = models.Round{Number: n, State: models.StateAwaitingData}
	c.health.SetRound(n)

	if err := sleepCtx(ctx, c.set.PollInterval); err != nil {
		return skip(round, reasonCancelled)
	}

	series := c.buffer.Snapshot()
	if len(series) < c.engine.Period() {
		logger.Info("[ROUND %d] skipped: %d/%d ticks", n, len(series), c.engine.Period())
		return skip(round, reasonInsufficientData)
	}

	eval := c.engine.Evaluate(series)
	round.State = models.StateSignalComputed
	round.RSI, round.HasRSI, round.Signal = eval.RSI, eval.HasRSI, eval.Signal
	logger.Info("[ROUND %d] %s", n, eval)

	ct, ok := models.ContractFor(eval.Signal)
	if !ok {
		return skip(round, reasonNoSignal)
	}
	round.ContractType = ct

	// предложение
	round.State = models.StateProposalRequested
	prop, err := c.broker.Proposal(ctx, deriv.ProposalParams{
		Amount:       c.set.BetAmount,
		Barrier:      "0",
		Basis:        "payout",
		ContractType: string(ct),
		Currency:     c.set.Currency,
		Duration:     1,
		DurationUnit: "t",
		Symbol:       c.set.Symbol,
	})
	if err == nil && prop.ID == "" {
		err = errEmptyProposal
	}
	if err != nil {
		if ctx.Err() != nil {
			return skip(round, reasonCancelled)
		}
		return c.fail(round, "proposal", &ProposalError{Err: err})
	}
	round.ProposalID = prop.ID

	// покупка
	contract, err := c.broker.Buy(ctx, prop.ID, c.set.BetAmount)
	if err == nil && contract.ContractID == 0 {
		err = errEmptyContract
	}
	if err != nil {
		if ctx.Err() != nil {
			return skip(round, reasonCancelled)
		}
		return c.fail(round, "buy", &BuyError{Err: err})
	}
	round.ContractID = contract.ContractID
	round.State = models.StateContractBought
	logger.Info("[ROUND %d] bought %s contract=%d", n, ct, contract.ContractID)

	// контракт куплен: исход и баланс дочитываем и при отмене сессии
	resolveCtx := context.WithoutCancel(ctx)

	// исход по последней строке profit table
	txs, err := c.broker.ProfitTable(resolveCtx, 1)
	if err == nil && len(txs) == 0 {
		err = errEmptyTable
	}
	if err != nil {
		return c.fail(round, "profit_table", &ProfitQueryError{Err: err})
	}
	round.SellPrice = txs[0].SellPrice
	round.State = models.StateOutcomeEvaluated

	if models.IsWin(round.SellPrice) {
		round.Outcome = models.OutcomeWin
		c.session.Wins++
		c.session.CurrentBalance += helper.Diff(round.SellPrice, c.set.BetAmount)
	} else {
		round.Outcome = models.OutcomeLoss
		c.session.Losses++
	}

	// баланс брокера важнее расчётного
	checkStops := true
	if balance, err := c.broker.Balance(resolveCtx); err != nil {
		round.Err = &BalanceError{Err: err}
		round.Reason = round.Err.Error()
		metrics.BrokerErrorsTotal.WithLabelValues("balance").Inc()
		logger.Error("[ROUND %d] %v", n, round.Err)
		checkStops = false
	} else {
		c.session.CurrentBalance = balance
	}
	round.Balance = c.session.CurrentBalance
	c.health.SetBalance(round.Balance)
	metrics.SessionBalance.Set(round.Balance)

	last, _ := c.buffer.Last()
	c.summary.AddTrade(models.TradeRecord{
		Round:        n,
		Tick:         last,
		ContractType: ct,
		SellPrice:    round.SellPrice,
		Balance:      round.Balance,
	})
	logger.Info("[ROUND %d] %s sell=%.2f balance=%.2f", n, round.Outcome, round.SellPrice, round.Balance)

	if checkStops {
		round.Terminal = c.checkStops()
	}
	round.State = models.StateRoundComplete
	return round
}

// checkStops: сначала take profit, потом stop loss.
func (c *RoundController) checkStops() models.Terminal {
	profit := c.session.Profit()
	switch {
	case profit >= c.session.TakeProfit:
		return models.TerminalTakeProfitHit
	case -profit >= c.session.StopLoss:
		return models.TerminalStopLossHit
	}
	return models.TerminalNone
}

func (c *RoundController) fail(round models.Round, step string, err error) models.Round {
	round.Outcome = models.OutcomeFailed
	round.Err = err
	round.Reason = err.Error()
	round.State = models.StateRoundComplete
	metrics.BrokerErrorsTotal.WithLabelValues(step).Inc()
	logger.Error("[ROUND %d] %v", round.Number, err)
	return round
}

func skip(round models.Round, reason string) models.Round {
	round.Outcome = models.OutcomeSkipped
	round.Reason = reason
	round.State = models.StateRoundComplete
	return round
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsRoundError — ошибка шага раунда, после которой сессия продолжается.
func IsRoundError(err error) bool {
	var (
		pe *ProposalError
		be *BuyError
		qe *ProfitQueryError
		le *BalanceError
	)
	return errors.As(err, &pe) || errors.As(err, &be) || errors.As(err, &qe) || errors.As(err, &le)
}
