package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"deriv_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeState struct {
	connected atomic.Bool
	touched   atomic.Int64
}

func (s *fakeState) SetWSConnected(v bool) { s.connected.Store(v) }
func (s *fakeState) TouchTick(time.Time)   { s.touched.Add(1) }

// tickServer проверяет подписку и отдаёт кадры frames; потом держит соединение до закрытия клиентом.
func tickServer(t *testing.T, frames []string, gotReq chan<- map[string]any) string {
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req map[string]any
		_ = sonic.Unmarshal(msg, &req)
		if gotReq != nil {
			gotReq <- req
		}

		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func collect(t *testing.T, ch <-chan models.Quote, n int) []models.Quote {
	var out []models.Quote
	timeout := time.After(2 * time.Second)
	for len(out) < n {
		select {
		case q, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, q)
		case <-timeout:
			t.Fatalf("timeout: got %d of %d quotes", len(out), n)
		}
	}
	return out
}

func TestStreamTicks_HistoryThenTick(t *testing.T) {
	gotReq := make(chan map[string]any, 1)
	url := tickServer(t, []string{
		`{"msg_type":"history","history":{"prices":[100.1,"100.2",100.3],"times":[1,2,3]}}`,
		`{"msg_type":"ping","ping":"pong"}`,
		`{"msg_type":"tick","tick":{"quote":"100.4","epoch":4,"symbol":"R_100"}}`,
	}, gotReq)

	state := &fakeState{}
	c := NewClientWithURL(url, "R_100", 3, state)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quotes := collect(t, c.StreamTicks(ctx), 4)
	require.Len(t, quotes, 4)

	prices := make([]float64, 0, len(quotes))
	for _, q := range quotes {
		prices = append(prices, q.Price)
	}
	assert.Equal(t, []float64{100.1, 100.2, 100.3, 100.4}, prices)
	assert.Equal(t, int64(4), quotes[3].Epoch.Unix())

	req := <-gotReq
	assert.Equal(t, "R_100", req["ticks_history"])
	assert.EqualValues(t, 3, req["count"])
	assert.EqualValues(t, 1, req["subscribe"])
	assert.Equal(t, "ticks", req["style"])

	assert.True(t, state.connected.Load())
	assert.EqualValues(t, 4, state.touched.Load())
}

func TestStreamTicks_ErrorFrameClosesChannel(t *testing.T) {
	url := tickServer(t, []string{
		`{"msg_type":"tick","tick":{"quote":1.5,"epoch":1}}`,
		`{"msg_type":"ticks_history","error":{"code":"InvalidSymbol","message":"Symbol X is invalid"}}`,
		`{"msg_type":"tick","tick":{"quote":2.5,"epoch":2}}`,
	}, nil)

	state := &fakeState{}
	c := NewClientWithURL(url, "X", 3, state)
	ch := c.StreamTicks(context.Background())

	quotes := collect(t, ch, 5)
	require.Len(t, quotes, 1)
	assert.Equal(t, 1.5, quotes[0].Price)

	_, ok := <-ch
	assert.False(t, ok)
	assert.Eventually(t, func() bool { return !state.connected.Load() }, time.Second, 10*time.Millisecond)
}

func TestStreamTicks_MalformedFrameClosesChannel(t *testing.T) {
	url := tickServer(t, []string{`{not json`}, nil)

	c := NewClientWithURL(url, "R_100", 3, nil)
	quotes := collect(t, c.StreamTicks(context.Background()), 1)
	assert.Empty(t, quotes)
}

func TestStreamTicks_DialErrorClosesChannel(t *testing.T) {
	c := NewClientWithURL("ws://127.0.0.1:1", "R_100", 3, nil)
	quotes := collect(t, c.StreamTicks(context.Background()), 1)
	assert.Empty(t, quotes)
}

func TestStreamTicks_CancelClosesChannel(t *testing.T) {
	url := tickServer(t, nil, nil)

	c := NewClientWithURL(url, "R_100", 3, nil)
	ctx, cancel := context.WithCancel(context.Background())
	ch := c.StreamTicks(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("stream not closed after cancel")
	}
}

func TestFrameQuotes(t *testing.T) {
	var f streamFrame
	require.NoError(t, sonic.Unmarshal([]byte(`{"msg_type":"history","history":{"prices":["bad"]}}`), &f))
	_, err := f.quotes()
	assert.Error(t, err)

	f = streamFrame{}
	require.NoError(t, sonic.Unmarshal([]byte(`{"msg_type":"proposal_open_contract"}`), &f))
	qs, err := f.quotes()
	assert.NoError(t, err)
	assert.Nil(t, qs)
}
