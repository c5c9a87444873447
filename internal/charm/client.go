// ABOUTME: Charm KV client wrapper used as the cloud-synced nutrition backend.
// ABOUTME: Provides thread-safe initialization, read-only detection, and automatic sync.
package charm

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/nutri/internal/storage"
	"go.uber.org/zap"
)

const (
	// DefaultDBName is the charm KV database name.
	DefaultDBName = "nutri"
	// DefaultHost is the charm server used when none is configured.
	DefaultHost = "charm.2389.dev"
)

// ErrReadOnly is returned for writes while another process holds the database lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// store is the subset of *kv.KV the client uses.
type store interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
	IsReadOnly() bool
	Close() error
}

// Client is a storage.KV backed by Charm Cloud.
type Client struct {
	kv       store
	autoSync bool
	log      *zap.Logger
	mu       sync.RWMutex
}

// Compile-time check that Client can back a storage.KVStore.
var _ storage.KV = (*Client)(nil)

// Options configure InitClient.
type Options struct {
	DBName string
	Host   string
	Logger *zap.Logger
}

// InitClient initializes the global Charm client.
// Thread-safe; can be called multiple times. Only the first call's options apply.
func InitClient(opts Options) (*Client, error) {
	clientOnce.Do(func() {
		if opts.DBName == "" {
			opts.DBName = DefaultDBName
		}
		if opts.Host == "" {
			opts.Host = DefaultHost
		}

		// Set server before opening KV
		if err := os.Setenv("CHARM_HOST", opts.Host); err != nil {
			clientErr = err
			return
		}

		db, err := kv.OpenWithDefaultsFallback(opts.DBName)
		if err != nil {
			clientErr = fmt.Errorf("open charm kv: %w", err)
			return
		}

		globalClient = newClient(db, opts.Logger)

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			if err := db.Sync(); err != nil {
				globalClient.log.Warn("initial charm sync failed", zap.Error(err))
			}
		} else {
			globalClient.log.Info("charm kv opened read-only")
		}
	})

	return globalClient, clientErr
}

func newClient(s store, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{kv: s, autoSync: true, log: log.Named("charm")}
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled. Caller holds mu.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		if err := c.kv.Sync(); err != nil {
			c.log.Warn("charm sync after write failed", zap.Error(err))
		}
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// Get returns the value stored at key, wrapping storage.ErrNotFound when absent.
func (c *Client) Get(key []byte) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, err := c.kv.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	return val, err
}

// Set stores a value with the given key.
func (c *Client) Set(key, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Set(key, value); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// Delete removes a key.
func (c *Client) Delete(key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Delete(key); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// Keys returns every key in the database.
func (c *Client) Keys() ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Keys()
}
