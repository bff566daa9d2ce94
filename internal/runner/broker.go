package runner

import (
	"context"

	deriv "deriv_bot/internal/modules/deriv_client/service"
)

// Broker — брокерские вызовы, которые нужны сессии.
type Broker interface {
	Connect(ctx context.Context) error
	Authorize(ctx context.Context, token string) (deriv.Authorization, error)
	Balance(ctx context.Context) (float64, error)
	Proposal(ctx context.Context, p deriv.ProposalParams) (deriv.Proposal, error)
	Buy(ctx context.Context, proposalID string, price float64) (deriv.Contract, error)
	ProfitTable(ctx context.Context, limit int) ([]deriv.Transaction, error)
	Disconnect(ctx context.Context) error
}

// HealthState — что сессия отмечает для health-сервера.
type HealthState interface {
	SetReady(v bool)
	SetRound(n int)
	SetBalance(v float64)
	SetTerminal(v string)
}

type nopHealth struct{}

func (nopHealth) SetReady(bool)      {}
func (nopHealth) SetRound(int)       {}
func (nopHealth) SetBalance(float64) {}
func (nopHealth) SetTerminal(string) {}
