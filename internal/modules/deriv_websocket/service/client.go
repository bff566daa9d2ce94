package service

import (
	"time"

	"deriv_bot/internal/modules/config"

	"github.com/gorilla/websocket"
)

// HealthState — то, что стример отмечает для /healthz.
type HealthState interface {
	SetWSConnected(v bool)
	TouchTick(t time.Time)
}

// Client — источник котировок Deriv: история на подписке + живые тики.
type Client struct {
	url      string
	symbol   string
	count    int
	wsDialer *websocket.Dialer
	state    HealthState

	pingEvery time.Duration
}

func NewClient(cfg *config.Config, state HealthState) *Client {
	return &Client{
		url:       cfg.StreamURL(),
		symbol:    cfg.Deriv.Symbol,
		count:     cfg.Trading.RSIPeriod,
		wsDialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		state:     state,
		pingEvery: 20 * time.Second,
	}
}

// NewClientWithURL — для тестов и ручных прогонов против другого endpoint.
func NewClientWithURL(url, symbol string, count int, state HealthState) *Client {
	return &Client{
		url:       url,
		symbol:    symbol,
		count:     count,
		wsDialer:  &websocket.Dialer{},
		state:     state,
		pingEvery: 20 * time.Second,
	}
}

func (c *Client) setConnected(v bool) {
	if c.state != nil {
		c.state.SetWSConnected(v)
	}
}

func (c *Client) touch(t time.Time) {
	if c.state != nil {
		c.state.TouchTick(t)
	}
}
