package service

import (
	"fmt"
	"time"

	"deriv_bot/internal/helper"
	"deriv_bot/internal/models"
)

// ticksHistoryRequest — подписка: count последних тиков и дальше поток.
func ticksHistoryRequest(symbol string, count int) map[string]any {
	return map[string]any{
		"ticks_history":     symbol,
		"adjust_start_time": 1,
		"count":             count,
		"end":               "latest",
		"start":             1,
		"style":             "ticks",
		"subscribe":         1,
	}
}

type frameError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type streamFrame struct {
	MsgType string      `json:"msg_type"`
	Error   *frameError `json:"error"`
	History *struct {
		Prices []any   `json:"prices"`
		Times  []int64 `json:"times"`
	} `json:"history"`
	Tick *struct {
		Quote  any    `json:"quote"`
		Epoch  int64  `json:"epoch"`
		Symbol string `json:"symbol"`
	} `json:"tick"`
}

// quotes разбирает кадр в котировки в порядке прихода.
// Ошибка — кадр битый или пришёл error: поток надо закрывать.
func (f *streamFrame) quotes() ([]models.Quote, error) {
	if f.Error != nil {
		return nil, fmt.Errorf("deriv stream error: code=%s msg=%s", f.Error.Code, f.Error.Message)
	}

	switch f.MsgType {
	case "history":
		if f.History == nil {
			return nil, fmt.Errorf("history frame without history")
		}
		out := make([]models.Quote, 0, len(f.History.Prices))
		for i, raw := range f.History.Prices {
			px, err := helper.ParseQuote(raw)
			if err != nil {
				return nil, err
			}
			q := models.Quote{Price: px}
			if i < len(f.History.Times) {
				q.Epoch = time.Unix(f.History.Times[i], 0)
			}
			out = append(out, q)
		}
		return out, nil

	case "tick":
		if f.Tick == nil {
			return nil, fmt.Errorf("tick frame without tick")
		}
		px, err := helper.ParseQuote(f.Tick.Quote)
		if err != nil {
			return nil, err
		}
		return []models.Quote{{Price: px, Epoch: time.Unix(f.Tick.Epoch, 0)}}, nil

	default:
		// ping/pong и прочие служебные ответы
		return nil, nil
	}
}
