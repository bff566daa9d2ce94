package service

import (
	"context"

	"deriv_bot/pkg/tracing"

	"github.com/pkg/errors"
)

// Authorize авторизует соединение токеном счёта.
func (c *Client) Authorize(ctx context.Context, token string) (auth Authorization, err error) {
	span, ctx := tracing.StartSpan(ctx, "deriv.authorize")
	defer func() { tracing.Finish(span, err) }()

	if token == "" {
		return Authorization{}, errors.New("Authorize: empty token")
	}
	resp, err := c.call(ctx, map[string]any{"authorize": token})
	if err != nil {
		return Authorization{}, errors.Wrap(err, "authorize")
	}
	if resp.Authorize == nil {
		return Authorization{}, errors.New("authorize: empty response")
	}
	return *resp.Authorize, nil
}

// Balance — текущий баланс счёта.
func (c *Client) Balance(ctx context.Context) (balance float64, err error) {
	span, ctx := tracing.StartSpan(ctx, "deriv.balance")
	defer func() { tracing.Finish(span, err) }()

	resp, err := c.call(ctx, map[string]any{"balance": 1})
	if err != nil {
		return 0, errors.Wrap(err, "balance")
	}
	if resp.Balance == nil {
		return 0, errors.New("balance: empty response")
	}
	return resp.Balance.Balance, nil
}
