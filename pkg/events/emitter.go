package events

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fystack/bnbchain-adapter/pkg/common/types"
	"github.com/nats-io/nats.go"
)

const (
	EventTypeTransaction = "transaction"
	EventTypeError       = "error"
)

type AdapterEvent struct {
	Type      string `json:"type"`
	Chain     string `json:"chain"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

type Emitter interface {
	EmitTransaction(tx *types.Tx) error
	EmitError(err error) error
	Close()
}

// Publisher is the part of *nats.Conn the emitter needs.
type Publisher interface {
	PublishMsg(msg *nats.Msg) error
	Drain() error
}

type natsEmitter struct {
	pub     Publisher
	subject string
	chain   string
}

func NewNATSEmitter(pub Publisher, subject string) Emitter {
	return &natsEmitter{
		pub:     pub,
		subject: subject,
		chain:   string(types.ChainBinance),
	}
}

// EmitTransaction publishes the tx with its idempotency key as the JetStream
// message id, so a redelivered tx is deduplicated by the stream as well.
func (e *natsEmitter) EmitTransaction(tx *types.Tx) error {
	data, err := json.Marshal(newEvent(EventTypeTransaction, e.chain, tx))
	if err != nil {
		return err
	}
	msg := nats.NewMsg(e.subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, tx.IdempotencyKey())
	if err := e.pub.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish tx %s: %w", tx.Hash, err)
	}
	return nil
}

func (e *natsEmitter) EmitError(err error) error {
	data, mErr := json.Marshal(newEvent(EventTypeError, e.chain, errorPayload(err)))
	if mErr != nil {
		return mErr
	}
	msg := nats.NewMsg(e.subject + ".error")
	msg.Data = data
	return e.pub.PublishMsg(msg)
}

func (e *natsEmitter) Close() {
	if e.pub != nil {
		_ = e.pub.Drain()
	}
}

type writerEmitter struct {
	mu    sync.Mutex
	enc   *json.Encoder
	chain string
}

// NewWriterEmitter writes one JSON event per line; used when no NATS url is configured.
func NewWriterEmitter(w io.Writer) Emitter {
	return &writerEmitter{enc: json.NewEncoder(w), chain: string(types.ChainBinance)}
}

func (e *writerEmitter) EmitTransaction(tx *types.Tx) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enc.Encode(newEvent(EventTypeTransaction, e.chain, tx))
}

func (e *writerEmitter) EmitError(err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enc.Encode(newEvent(EventTypeError, e.chain, errorPayload(err)))
}

func (e *writerEmitter) Close() {}

func newEvent(eventType, chain string, data any) AdapterEvent {
	return AdapterEvent{
		Type:      eventType,
		Chain:     chain,
		Data:      data,
		Timestamp: time.Now().UTC().Unix(),
	}
}

func errorPayload(err error) map[string]string {
	payload := map[string]string{}
	if err != nil {
		payload["message"] = err.Error()
	}
	return payload
}
