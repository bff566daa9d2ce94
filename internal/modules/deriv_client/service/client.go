package service

import (
	"context"
	"sync"
	"time"

	"deriv_bot/internal/modules/config"
	"deriv_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// Client — брокерский клиент Deriv поверх одного WebSocket.
// Запросы нумеруются req_id, reader раскладывает ответы ждущим вызовам.
type Client struct {
	url      string
	wsDialer *websocket.Dialer

	writeMu sync.Mutex
	conn    *websocket.Conn

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan response
	closed  bool
	done    chan struct{}

	pingEvery time.Duration
}

func NewClient(cfg *config.Config) *Client {
	return NewClientWithURL(cfg.StreamURL())
}

func NewClientWithURL(url string) *Client {
	return &Client{
		url:       url,
		wsDialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		pending:   make(map[int64]chan response),
		pingEvery: 20 * time.Second,
	}
}

// Connect открывает соединение и запускает reader + keepalive.
func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := c.wsDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return errors.Wrap(err, "dial deriv api")
	}

	c.writeMu.Lock()
	c.conn = conn
	c.writeMu.Unlock()

	c.mu.Lock()
	c.conn = conn
	c.closed = false
	c.done = make(chan struct{})
	c.mu.Unlock()

	go c.readLoop(conn)
	go c.pingLoop()
	return nil
}

func (c *Client) readLoop(conn *websocket.Conn) {
	defer c.failPending()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if !closed {
				logger.Error("[DERIV] read error: %v", err)
			}
			return
		}

		var resp response
		if err := sonic.Unmarshal(msg, &resp); err != nil {
			logger.Error("[DERIV] malformed frame: %v", err)
			continue
		}
		if resp.Error != nil {
			resp.Error.MsgType = resp.MsgType
		}
		if resp.ReqID == 0 {
			// ping и прочее без req_id
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[resp.ReqID]
		delete(c.pending, resp.ReqID)
		c.mu.Unlock()
		if ok {
			ch <- resp
		}
	}
}

func (c *Client) pingLoop() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	t := time.NewTicker(c.pingEvery)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			if err := c.write(map[string]any{"ping": 1}); err != nil {
				return
			}
		}
	}
}

// failPending — соединение умерло: будим всех ждущих.
func (c *Client) failPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	if !c.closed {
		c.closed = true
		close(c.done)
	}
}

func (c *Client) write(req map[string]any) error {
	payload, err := sonic.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.conn == nil {
		return ErrClosed
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// call отправляет запрос и ждёт ответ с тем же req_id. Таймаута нет — только ctx.
func (c *Client) call(ctx context.Context, req map[string]any) (response, error) {
	c.mu.Lock()
	if c.conn == nil || c.closed {
		c.mu.Unlock()
		return response{}, ErrClosed
	}
	c.nextID++
	id := c.nextID
	ch := make(chan response, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	req["req_id"] = id
	if err := c.write(req); err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return response{}, errors.Wrap(err, "write request")
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return response{}, ErrClosed
		}
		if resp.Error != nil {
			return resp, resp.Error
		}
		return resp, nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return response{}, ctx.Err()
	}
}

// Disconnect закрывает соединение; повторный вызов безопасен.
func (c *Client) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	if c.conn == nil || c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	conn := c.conn
	c.mu.Unlock()

	c.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return conn.Close()
}
