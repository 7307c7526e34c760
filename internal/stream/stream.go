package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fystack/bnbchain-adapter/pkg/binance"
	"github.com/fystack/bnbchain-adapter/pkg/common/constant"
	"github.com/fystack/bnbchain-adapter/pkg/common/logger"
	"github.com/fystack/bnbchain-adapter/pkg/retry"
)

const (
	defaultPingInterval = 30 * time.Second
	writeWait           = 10 * time.Second
)

// Transfer is one transfer event with its hashes resolved.
type Transfer struct {
	Hash string
	// MemoTxHash is the hash referenced by the memo, e.g. the inbound tx of an OUT:<hash> refund.
	MemoTxHash string
	Event      *binance.TransferEvent
}

type Handler func(ctx context.Context, t Transfer) error

type Config struct {
	URL          string
	Addresses    []string
	PingInterval time.Duration
	RetryDelay   time.Duration
	MaxRetryWait time.Duration
}

// Subscriber follows the transfers stream of a set of addresses over one websocket.
type Subscriber struct {
	cfg     Config
	handler Handler
	dialer  *websocket.Dialer
	logger  *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

type subscribeRequest struct {
	Method  string `json:"method"`
	Topic   string `json:"topic"`
	Address string `json:"address"`
}

func NewSubscriber(cfg Config, handler Handler) *Subscriber {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = retry.DefaultInterval
	}
	if cfg.MaxRetryWait <= 0 {
		cfg.MaxRetryWait = time.Minute
	}
	return &Subscriber{
		cfg:     cfg,
		handler: handler,
		dialer:  websocket.DefaultDialer,
		logger:  logger.With("component", "transfer_stream"),
	}
}

// Run keeps the subscription alive, reconnecting with backoff, until ctx is done.
func (s *Subscriber) Run(ctx context.Context) error {
	if len(s.cfg.Addresses) == 0 {
		return errors.New("no addresses to subscribe")
	}

	err := retry.Exponential(ctx, func() error {
		err := s.runOnce(ctx)
		if ctx.Err() != nil {
			return retry.Permanent(ctx.Err())
		}
		s.logger.Warn("Transfer stream disconnected", "err", err)
		return err
	}, retry.ExponentialConfig{
		InitialInterval: s.cfg.RetryDelay,
		MaxInterval:     s.cfg.MaxRetryWait,
		MaxElapsedTime:  -1,
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Close drops the current connection. Run reconnects unless its context is done.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *Subscriber) runOnce(ctx context.Context) error {
	conn, _, err := s.dialer.DialContext(ctx, s.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.cfg.URL, err)
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	defer conn.Close()

	// the server takes one address per subscribe frame
	for _, addr := range s.cfg.Addresses {
		if err := conn.WriteJSON(subscribeRequest{
			Method:  "subscribe",
			Topic:   constant.TransferStream,
			Address: addr,
		}); err != nil {
			return fmt.Errorf("subscribe %s: %w", addr, err)
		}
	}
	s.logger.Info("Subscribed to transfers", "url", s.cfg.URL, "addresses", len(s.cfg.Addresses))

	done := make(chan struct{})
	defer close(done)
	go s.keepAlive(ctx, conn, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if err := s.dispatch(ctx, data); err != nil {
			s.logger.Error("Handle transfer failed", "err", err)
		}
	}
}

// keepAlive pings the server and unblocks the reader once ctx ends.
func (s *Subscriber) keepAlive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait),
			)
			_ = conn.Close()
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.logger.Debug("Ping failed", "err", err)
				return
			}
		}
	}
}

func (s *Subscriber) dispatch(ctx context.Context, data []byte) error {
	var ev binance.TransferEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if ev.Stream != "" && !strings.EqualFold(ev.Stream, constant.TransferStream) {
		return nil
	}

	hash, ok := binance.ExtractTransferHash(&ev)
	if !ok {
		// subscription acks and keepalive replies carry no data
		return nil
	}
	memoHash, _ := binance.ExtractMemoTxHash(&ev)

	return s.handler(ctx, Transfer{
		Hash:       hash,
		MemoTxHash: memoHash,
		Event:      &ev,
	})
}
