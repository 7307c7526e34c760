package infra

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyEmpty    = errors.New("key is empty")
)

type KVPair struct {
	Key   string
	Value []byte
}

// KVStore is the persistence contract shared by the badger and in-memory stores.
type KVStore interface {
	GetName() string
	Set(k string, v string) error
	// SetWithTTL stores v and lets the store drop it after ttl.
	SetWithTTL(k string, v string, ttl time.Duration) error
	Get(k string) (v string, err error)
	Has(k string) (bool, error)
	// This method if you want to set v as struct or map
	SetAny(k string, v any) error
	GetAny(k string, v any) (found bool, err error)

	List(prefix string) ([]*KVPair, error)
	Delete(k string) error
	Close() error
}

// Codec encodes/decodes Go values to/from slices of bytes.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON is the codec used for every structured value this service persists.
var JSON = JSONcodec{}

type JSONcodec struct{}

func (c JSONcodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c JSONcodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
