package kvstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fystack/bnbchain-adapter/pkg/common/enum"
	"github.com/fystack/bnbchain-adapter/pkg/infra"
)

type BadgerStore struct {
	db     *badger.DB
	prefix string
	codec  infra.Codec
}

func NewBadgerStore(path string, prefix string, codec infra.Codec) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	return openBadger(opts, prefix, codec)
}

// NewInMemoryBadgerStore keeps everything in memory; used by the "memory" store type.
func NewInMemoryBadgerStore(prefix string, codec infra.Codec) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return openBadger(opts, prefix, codec)
}

func openBadger(opts badger.Options, prefix string, codec infra.Codec) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{
		db:     db,
		prefix: prefix,
		codec:  codec,
	}, nil
}

func (b *BadgerStore) fullKey(k string) (string, error) {
	if k == "" {
		return "", infra.ErrKeyEmpty
	}
	if b.prefix != "" {
		return b.prefix + "/" + k, nil
	}
	return k, nil
}

func (b *BadgerStore) GetName() string {
	return string(enum.KVStoreTypeBadger)
}

func (b *BadgerStore) get(key string) ([]byte, error) {
	k, err := b.fullKey(key)
	if err != nil {
		return nil, err
	}

	var valCopy []byte
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(k))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return infra.ErrKeyNotFound
			}
			return err
		}
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	return valCopy, err
}

func (b *BadgerStore) set(key string, value []byte, ttl time.Duration) error {
	k, err := b.fullKey(key)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(k), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
}

func (b *BadgerStore) Get(key string) (string, error) {
	v, err := b.get(key)
	return string(v), err
}

func (b *BadgerStore) Has(key string) (bool, error) {
	_, err := b.get(key)
	if errors.Is(err, infra.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (b *BadgerStore) Set(key string, value string) error {
	return b.set(key, []byte(value), 0)
}

func (b *BadgerStore) SetWithTTL(key string, value string, ttl time.Duration) error {
	return b.set(key, []byte(value), ttl)
}

func (b *BadgerStore) SetAny(key string, value any) error {
	if value == nil {
		return errors.New("value is nil")
	}
	data, err := b.codec.Marshal(value)
	if err != nil {
		return err
	}
	return b.set(key, data, 0)
}

func (b *BadgerStore) GetAny(key string, value any) (bool, error) {
	if value == nil {
		return false, errors.New("value is nil")
	}
	data, err := b.get(key)
	if err != nil {
		if errors.Is(err, infra.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, b.codec.Unmarshal(data, value)
}

func (b *BadgerStore) List(prefix string) ([]*infra.KVPair, error) {
	if prefix == "" {
		return nil, fmt.Errorf("prefix is empty")
	}
	searchPrefix := prefix
	if b.prefix != "" {
		searchPrefix = b.prefix + "/" + prefix
	}

	result := make([]*infra.KVPair, 0)
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(searchPrefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result = append(result, &infra.KVPair{
				Key:   string(item.KeyCopy(nil)),
				Value: v,
			})
		}
		return nil
	})
	return result, err
}

func (b *BadgerStore) Delete(key string) error {
	k, err := b.fullKey(key)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(k))
	})
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}
