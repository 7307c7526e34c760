package txstore

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fystack/bnbchain-adapter/pkg/common/constant"
	"github.com/fystack/bnbchain-adapter/pkg/infra"
)

const (
	TxStates = "tx_states"
	// SeenTTL bounds how long a published tx key is remembered.
	SeenTTL = 7 * 24 * time.Hour
)

func seenKey(key string) string {
	return fmt.Sprintf("%s/%s/%s", TxStates, constant.KVPrefixSeenTx, key)
}

func cursorKey(address string) string {
	return fmt.Sprintf("%s/%s/%s", TxStates, constant.KVPrefixCursor, address)
}

// Store remembers which normalized txs were already emitted and how far each
// watched address has been read.
type Store interface {
	Seen(key string) (bool, error)
	MarkSeen(key string) error

	GetCursor(address string) (time.Time, error)
	SaveCursor(address string, at time.Time) error
	ResetCursor(address string) error

	Close() error
}

type txStore struct {
	store infra.KVStore
}

func New(store infra.KVStore) Store {
	return &txStore{store: store}
}

func (s *txStore) Seen(key string) (bool, error) {
	if key == "" {
		return false, errors.New("tx key is required")
	}
	return s.store.Has(seenKey(key))
}

func (s *txStore) MarkSeen(key string) error {
	if key == "" {
		return errors.New("tx key is required")
	}
	return s.store.SetWithTTL(seenKey(key), "1", SeenTTL)
}

// GetCursor returns the zero time when the address has never been read.
func (s *txStore) GetCursor(address string) (time.Time, error) {
	raw, err := s.store.Get(cursorKey(address))
	if err != nil {
		if errors.Is(err, infra.ErrKeyNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cursor for %s: %w", address, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

func (s *txStore) SaveCursor(address string, at time.Time) error {
	if address == "" {
		return errors.New("address is required")
	}
	return s.store.Set(cursorKey(address), strconv.FormatInt(at.UnixMilli(), 10))
}

// ResetCursor makes the next poll start from the configured lookback again.
func (s *txStore) ResetCursor(address string) error {
	err := s.store.Delete(cursorKey(address))
	if errors.Is(err, infra.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (s *txStore) Close() error {
	return s.store.Close()
}
