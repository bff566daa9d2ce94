package service

import (
	"context"
	"time"

	"deriv_bot/internal/models"
	"deriv_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// StreamTicks — один WebSocket: история (count тиков) и дальше живые котировки.
// Без переподключения: любая ошибка потока (error-кадр, битый кадр, обрыв) закрывает канал.
func (c *Client) StreamTicks(ctx context.Context) <-chan models.Quote {
	ch := make(chan models.Quote, 256)

	go func() {
		defer close(ch)

		logger.Info("[WS] connect %s symbol=%s count=%d", c.url, c.symbol, c.count)
		conn, _, err := c.wsDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			logger.Error("[WS] dial error: %v", err)
			return
		}
		c.setConnected(true)
		defer c.setConnected(false)

		payload, _ := sonic.Marshal(ticksHistoryRequest(c.symbol, c.count))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Error("[WS] subscribe error: %v", err)
			_ = conn.Close()
			return
		}

		// keepalive ping; он же закрывает соединение по отмене контекста
		stopPing := make(chan struct{})
		defer close(stopPing)
		go func() {
			t := time.NewTicker(c.pingEvery)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					_ = conn.Close()
					return
				case <-stopPing:
					_ = conn.Close()
					return
				case <-t.C:
					ping, _ := sonic.Marshal(map[string]int{"ping": 1})
					_ = conn.WriteMessage(websocket.TextMessage, ping)
				}
			}
		}()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					logger.Error("[WS] read error: %v", err)
				}
				return
			}

			var frame streamFrame
			if err := sonic.Unmarshal(msg, &frame); err != nil {
				logger.Error("[WS] malformed frame: %v", err)
				return
			}
			quotes, err := frame.quotes()
			if err != nil {
				logger.Error("[WS] %v", err)
				return
			}

			for _, q := range quotes {
				c.touch(time.Now())
				select {
				case ch <- q:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch
}
