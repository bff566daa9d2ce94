package service

import (
	"context"

	"deriv_bot/pkg/tracing"

	"github.com/pkg/errors"
)

// Proposal запрашивает котировку контракта. id пустой — значит предложения нет.
func (c *Client) Proposal(ctx context.Context, p ProposalParams) (prop Proposal, err error) {
	span, ctx := tracing.StartSpan(ctx, "deriv.proposal")
	span.SetTag("contract_type", p.ContractType)
	defer func() { tracing.Finish(span, err) }()

	resp, err := c.call(ctx, p.request())
	if err != nil {
		return Proposal{}, errors.Wrap(err, "proposal")
	}
	if resp.Proposal == nil {
		return Proposal{}, nil
	}
	return *resp.Proposal, nil
}

// Buy покупает контракт по id предложения с ценой не выше price.
func (c *Client) Buy(ctx context.Context, proposalID string, price float64) (contract Contract, err error) {
	span, ctx := tracing.StartSpan(ctx, "deriv.buy")
	span.SetTag("proposal_id", proposalID)
	defer func() { tracing.Finish(span, err) }()

	resp, err := c.call(ctx, map[string]any{"buy": proposalID, "price": price})
	if err != nil {
		return Contract{}, errors.Wrap(err, "buy")
	}
	if resp.Buy == nil {
		return Contract{}, nil
	}
	return *resp.Buy, nil
}

// ProfitTable — последние закрытые контракты, свежие первыми.
func (c *Client) ProfitTable(ctx context.Context, limit int) (txs []Transaction, err error) {
	span, ctx := tracing.StartSpan(ctx, "deriv.profit_table")
	defer func() { tracing.Finish(span, err) }()

	if limit < 1 {
		limit = 1
	}
	resp, err := c.call(ctx, map[string]any{
		"profit_table": 1,
		"description":  1,
		"limit":        limit,
		"sort":         "DESC",
	})
	if err != nil {
		return nil, errors.Wrap(err, "profit_table")
	}
	if resp.ProfitTable == nil {
		return nil, nil
	}
	return resp.ProfitTable.Transactions, nil
}
