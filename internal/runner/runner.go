package runner

import (
	"context"
	"sync"

	"deriv_bot/internal/models"
	"deriv_bot/internal/report"
	"deriv_bot/internal/strategy"
)

// TickSource — поток котировок (deriv_websocket).
type TickSource interface {
	StreamTicks(ctx context.Context) <-chan models.Quote
}

// Runner — две горутины сессии: ингест тиков и цикл раундов.
type Runner struct {
	source  TickSource
	ctrl    *RoundController
	buffer  *strategy.TickBuffer
	summary *report.RunSummary
	symbol  string

	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	result models.SessionResult
	err    error
}

func New(source TickSource, ctrl *RoundController, buffer *strategy.TickBuffer, summary *report.RunSummary, symbol string) *Runner {
	return &Runner{
		source:  source,
		ctrl:    ctrl,
		buffer:  buffer,
		summary: summary,
		symbol:  symbol,
		done:    make(chan struct{}),
	}
}

// Start запускает поток и сессию; onDone вызывается один раз по её окончании.
func (r *Runner) Start(parent context.Context, onDone func(models.SessionResult, error)) {
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel

	quotes := r.source.StreamTicks(ctx)
	ingestDone := make(chan struct{})
	go func() {
		defer close(ingestDone)
		Ingest(ctx, quotes, r.buffer, r.summary, r.symbol)
	}()

	go func() {
		res, err := r.ctrl.Run(ctx)
		cancel()
		<-ingestDone

		r.mu.Lock()
		r.result, r.err = res, err
		r.mu.Unlock()
		close(r.done)

		if onDone != nil {
			onDone(res, err)
		}
	}()
}

// Stop отменяет сессию и ждёт отчёта; ctx ограничивает ожидание.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel == nil {
		return nil
	}
	r.cancel()
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait блокируется до конца сессии.
func (r *Runner) Wait() (models.SessionResult, error) {
	<-r.done
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.err
}
