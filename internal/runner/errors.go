package runner

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	errEmptyProposal = errors.New("empty proposal id")
	errEmptyContract = errors.New("empty contract id")
	errEmptyTable    = errors.New("empty profit table")
)

// ProposalError — брокер не дал предложение.
type ProposalError struct{ Err error }

func (e *ProposalError) Error() string { return fmt.Sprintf("proposal: %v", e.Err) }
func (e *ProposalError) Unwrap() error { return e.Err }

// BuyError — покупка контракта не прошла.
type BuyError struct{ Err error }

func (e *BuyError) Error() string { return fmt.Sprintf("buy: %v", e.Err) }
func (e *BuyError) Unwrap() error { return e.Err }

// ProfitQueryError — исход сделки неизвестен, стоп-условия не проверяются.
type ProfitQueryError struct{ Err error }

func (e *ProfitQueryError) Error() string { return fmt.Sprintf("profit table: %v", e.Err) }
func (e *ProfitQueryError) Unwrap() error { return e.Err }

// BalanceError — баланс не обновился, остаётся расчётный.
type BalanceError struct{ Err error }

func (e *BalanceError) Error() string { return fmt.Sprintf("balance refresh: %v", e.Err) }
func (e *BalanceError) Unwrap() error { return e.Err }

// StartupError — сессия не стартовала (подключение, авторизация, стартовый баланс).
type StartupError struct {
	Step string
	Err  error
}

func (e *StartupError) Error() string { return fmt.Sprintf("startup %s: %v", e.Step, e.Err) }
func (e *StartupError) Unwrap() error { return e.Err }
