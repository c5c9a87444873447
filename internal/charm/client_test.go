// ABOUTME: Unit tests for the Charm KV client using an in-memory fake store.
// ABOUTME: Covers read-only guards, auto-sync, not-found mapping, and repository use.
package charm

import (
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
)

type fakeStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	readOnly bool
	syncs    int
	closed   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (f *fakeStore) Get(key []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[string(key)]
	if !ok {
		return nil, badger.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeStore) Set(key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[string(key)] = value
	return nil
}

func (f *fakeStore) Delete(key []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, string(key))
	return nil
}

func (f *fakeStore) Keys() ([][]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out, nil
}

func (f *fakeStore) Sync() error      { f.syncs++; return nil }
func (f *fakeStore) Reset() error     { f.data = make(map[string][]byte); return nil }
func (f *fakeStore) IsReadOnly() bool { return f.readOnly }
func (f *fakeStore) Close() error     { f.closed = true; return nil }

func TestGetMissingKeyMapsToNotFound(t *testing.T) {
	c := newClient(newFakeStore(), nil)
	if _, err := c.Get([]byte("profile:nope")); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected storage.ErrNotFound, got %v", err)
	}
}

func TestWritesSyncWhenEnabled(t *testing.T) {
	fs := newFakeStore()
	c := newClient(fs, nil)

	if err := c.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Delete([]byte("k")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fs.syncs != 2 {
		t.Errorf("syncs = %d, want 2", fs.syncs)
	}

	c.SetAutoSync(false)
	if err := c.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if fs.syncs != 2 {
		t.Errorf("auto-sync disabled, syncs = %d, want 2", fs.syncs)
	}
}

func TestReadOnlyBlocksWrites(t *testing.T) {
	fs := newFakeStore()
	fs.readOnly = true
	c := newClient(fs, nil)

	if err := c.Set([]byte("k"), []byte("v")); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Set: expected ErrReadOnly, got %v", err)
	}
	if err := c.Delete([]byte("k")); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Delete: expected ErrReadOnly, got %v", err)
	}
	if err := c.Sync(); err != nil {
		t.Errorf("Sync in read-only mode should be a no-op, got %v", err)
	}
	if fs.syncs != 0 {
		t.Errorf("syncs = %d, want 0", fs.syncs)
	}
	if !c.IsReadOnly() {
		t.Error("IsReadOnly should report the store state")
	}
}

func TestClientBacksRepository(t *testing.T) {
	fs := newFakeStore()
	repo := storage.NewKVStore(newClient(fs, nil))

	p := models.NewHealthProfile("Ada")
	if err := repo.CreateProfile(p); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if _, ok := fs.data[storage.ProfilePrefix+p.ID.String()]; !ok {
		t.Errorf("expected key %s%s in store", storage.ProfilePrefix, p.ID)
	}

	got, err := repo.GetProfile(p.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", got.Name)
	}

	if err := repo.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !fs.closed {
		t.Error("Close should close the underlying store")
	}
}
