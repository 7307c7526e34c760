package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transferMessage = `{
	"stream": "transfers",
	"data": {
		"e": "outboundTransferInfo",
		"E": 12893,
		"H": "0434786487A1F4AE35D49FAE2CFE1C3B7F4D1C38FF8DC88A0DD2B8B0A29F6D6A",
		"M": "OUT:3E6E5E5B4F2B4E6C1A2C3D4E5F6A7B8C9D0E1F2A3B4C5D6E7F8A9B0C1D2E3F4A",
		"f": "bnb1z220ps26qlwfgz5dew9hdxe8m5malre3qy6zr9",
		"t": [{"o": "bnb1xngdalruw8g23eqvpx9klmtttwvnlk2x4lfccu", "c": [{"a": "BNB", "A": "0.00100000"}]}]
	}
}`

func newStreamServer(t *testing.T, frames int, subscribed chan<- subscribeRequest, messages ...string) string {
	t.Helper()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		for i := 0; i < frames; i++ {
			var req subscribeRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			subscribed <- req
		}

		for _, m := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
				return
			}
		}
		// hold the connection until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSubscriberDeliversTransfers(t *testing.T) {
	addresses := []string{
		"bnb1z220ps26qlwfgz5dew9hdxe8m5malre3qy6zr9",
		"bnb1xngdalruw8g23eqvpx9klmtttwvnlk2x4lfccu",
	}
	subscribed := make(chan subscribeRequest, len(addresses))
	url := newStreamServer(t, len(addresses), subscribed,
		`{"stream":"transfers","data":null}`,
		`{"stream":"accounts","data":{"H":"IGNORED"}}`,
		transferMessage,
	)

	received := make(chan Transfer, 4)
	sub := NewSubscriber(Config{
		URL:        url,
		Addresses:  addresses,
		RetryDelay: 10 * time.Millisecond,
	}, func(ctx context.Context, tr Transfer) error {
		received <- tr
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- sub.Run(ctx) }()

	for _, addr := range addresses {
		select {
		case req := <-subscribed:
			assert.Equal(t, "subscribe", req.Method)
			assert.Equal(t, "transfers", req.Topic)
			assert.Equal(t, addr, req.Address)
		case <-time.After(5 * time.Second):
			t.Fatalf("no subscription received for %s", addr)
		}
	}

	select {
	case tr := <-received:
		assert.Equal(t, "0434786487A1F4AE35D49FAE2CFE1C3B7F4D1C38FF8DC88A0DD2B8B0A29F6D6A", tr.Hash)
		assert.Equal(t, "3E6E5E5B4F2B4E6C1A2C3D4E5F6A7B8C9D0E1F2A3B4C5D6E7F8A9B0C1D2E3F4A", tr.MemoTxHash)
		require.NotNil(t, tr.Event.Data)
		require.Len(t, tr.Event.Data.To, 1)
		assert.Equal(t, "0.001", tr.Event.Data.To[0].Coins[0].Amount.String())
	case <-time.After(5 * time.Second):
		t.Fatal("no transfer received")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber did not stop")
	}
	assert.Empty(t, received)
}

func TestSubscribeFrameShape(t *testing.T) {
	raw, err := json.Marshal(subscribeRequest{
		Method:  "subscribe",
		Topic:   "transfers",
		Address: "bnb1z220ps26qlwfgz5dew9hdxe8m5malre3qy6zr9",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"method":"subscribe","topic":"transfers","address":"bnb1z220ps26qlwfgz5dew9hdxe8m5malre3qy6zr9"}`, string(raw))
}

func TestSubscriberRequiresAddresses(t *testing.T) {
	sub := NewSubscriber(Config{URL: "ws://localhost:0"}, func(context.Context, Transfer) error { return nil })
	require.Error(t, sub.Run(context.Background()))
}

func TestDispatchSkipsMalformed(t *testing.T) {
	called := false
	sub := NewSubscriber(Config{}, func(context.Context, Transfer) error {
		called = true
		return nil
	})

	require.Error(t, sub.dispatch(context.Background(), []byte("not json")))
	require.NoError(t, sub.dispatch(context.Background(), []byte(`{"stream":"transfers"}`)))
	assert.False(t, called)
}
