// ABOUTME: Embedded Badger key-value backend for offline, single-user storage.
// ABOUTME: Adapts badger/v3 to the KV interface and routes badger logs through zap.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

// BadgerKV is a KV backed by a local Badger database.
type BadgerKV struct {
	db *badger.DB
}

// OpenBadger opens or creates a Badger database in dir.
// An empty dir opens an in-memory database.
func OpenBadger(dir string, log *zap.Logger) (*BadgerKV, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create badger directory: %w", err)
		}
		opts = badger.DefaultOptions(dir)
	}
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.WithLogger(badgerLogger{log.Sugar().Named("badger")})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerKV{db: db}, nil
}

// DefaultBadgerDir returns the default Badger directory under the data dir.
func DefaultBadgerDir() string {
	return filepath.Join(DataDir(), "badger")
}

// Get returns the value stored at key.
func (b *BadgerKV) Get(key []byte) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return val, err
}

// Set stores value at key.
func (b *BadgerKV) Set(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Delete removes key.
func (b *BadgerKV) Delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Keys returns every key in the database.
func (b *BadgerKV) Keys() ([][]byte, error) {
	var keys [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

// Close closes the database.
func (b *BadgerKV) Close() error {
	return b.db.Close()
}

// badgerLogger adapts a zap sugared logger to badger.Logger.
// Badger is chatty at info level, so info is demoted to debug.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.s.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.s.Debugf(format, args...) }
