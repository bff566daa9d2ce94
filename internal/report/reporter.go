package report

import (
	"context"

	"deriv_bot/internal/models"

	"github.com/pkg/errors"
)

// Reporter получает итог прогона после отключения от брокера.
type Reporter interface {
	Report(ctx context.Context, summary *RunSummary, result models.SessionResult) error
}

// Multi раздаёт отчёт всем; ошибка одного не мешает остальным.
type Multi []Reporter

func (m Multi) Report(ctx context.Context, summary *RunSummary, result models.SessionResult) error {
	var first error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Report(ctx, summary, result); err != nil && first == nil {
			first = errors.Wrapf(err, "reporter %T", r)
		}
	}
	return first
}
