package models

import "deriv_bot/internal/helper"

// Outcome — чем закончился раунд.
type Outcome string

const (
	OutcomeWin     Outcome = "WIN"
	OutcomeLoss    Outcome = "LOSS"
	OutcomeSkipped Outcome = "SKIPPED"
	OutcomeFailed  Outcome = "FAILED"
)

// RoundState — шаги раунда в порядке прохождения.
type RoundState string

const (
	StateAwaitingData      RoundState = "awaiting_data"
	StateSignalComputed    RoundState = "signal_computed"
	StateProposalRequested RoundState = "proposal_requested"
	StateContractBought    RoundState = "contract_bought"
	StateOutcomeEvaluated  RoundState = "outcome_evaluated"
	StateRoundComplete     RoundState = "round_complete"
)

// Terminal — почему закончилась сессия.
type Terminal string

const (
	TerminalNone            Terminal = ""
	TerminalTakeProfitHit   Terminal = "take_profit_hit"
	TerminalStopLossHit     Terminal = "stop_loss_hit"
	TerminalRoundsExhausted Terminal = "rounds_exhausted"
	TerminalCancelled       Terminal = "cancelled"
	TerminalStartupFailed   Terminal = "startup_failed"
)

// Round — одна итерация контроллера. ProposalID/ContractID живут только в пределах раунда.
type Round struct {
	Number       int
	State        RoundState
	RSI          float64
	HasRSI       bool
	Signal       TradeSignal
	ContractType ContractType
	ProposalID   string
	ContractID   int64
	Outcome      Outcome
	SellPrice    float64
	Balance      float64
	Reason       string
	Err          error
	Terminal     Terminal
}

// SessionState — счётчики и лимиты сессии, меняет только контроллер раундов.
type SessionState struct {
	InitialBalance float64
	CurrentBalance float64
	Wins           int
	Losses         int
	TakeProfit     float64
	StopLoss       float64
}

// Profit — текущий результат сессии (отрицательный при убытке).
func (s *SessionState) Profit() float64 {
	return helper.Diff(s.CurrentBalance, s.InitialBalance)
}

// SessionResult — итог прогона для отчёта.
type SessionResult struct {
	Terminal       Terminal
	Rounds         int
	Wins           int
	Losses         int
	InitialBalance float64
	FinalBalance   float64
}
