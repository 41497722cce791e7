package alertstore_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/alertstore"
)

type kvEntry struct {
	key   string
	value []byte
	rev   uint64
}

func (e kvEntry) Bucket() string             { return "flash_alerts" }
func (e kvEntry) Key() string                { return e.key }
func (e kvEntry) Value() []byte              { return e.value }
func (e kvEntry) Revision() uint64           { return e.rev }
func (e kvEntry) Created() time.Time         { return time.Time{} }
func (e kvEntry) Delta() uint64              { return 0 }
func (e kvEntry) Operation() nats.KeyValueOp { return nats.KeyValuePut }

// fakeKV mimics JetStream KV revision semantics.
type fakeKV struct {
	mu      sync.Mutex
	entries map[string]kvEntry
	seq     uint64
	// conflicts forces the next n updates to fail with a wrong sequence error.
	conflicts int
	updates   int
}

func newFakeKV() *fakeKV {
	return &fakeKV{entries: make(map[string]kvEntry)}
}

func (kv *fakeKV) Get(key string) (nats.KeyValueEntry, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	e, ok := kv.entries[key]
	if !ok {
		return nil, nats.ErrKeyNotFound
	}
	return e, nil
}

func (kv *fakeKV) Put(key string, value []byte) (uint64, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.seq++
	kv.entries[key] = kvEntry{key: key, value: append([]byte(nil), value...), rev: kv.seq}
	return kv.seq, nil
}

func (kv *fakeKV) Update(key string, value []byte, last uint64) (uint64, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.updates++
	if kv.conflicts > 0 {
		kv.conflicts--
		return 0, errors.New("nats: wrong last sequence: 7")
	}
	if kv.entries[key].rev != last {
		return 0, nats.ErrKeyExists
	}
	kv.seq++
	kv.entries[key] = kvEntry{key: key, value: append([]byte(nil), value...), rev: kv.seq}
	return kv.seq, nil
}

func TestNATS_Contract(t *testing.T) {
	testStoreContract(t, alertstore.NewNATS(newFakeKV(), alertstore.WithNATSMaxRetries(50)), uniqueScope("nats"))
}

func TestNATS_RetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.conflicts = 2
	store := alertstore.NewNATS(kv)

	require.NoError(t, store.Append(ctx, "s", newAlert("a", alerts.TypeInfo, "x")))
	assert.Equal(t, 3, kv.updates)

	list, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNATS_GivesUp(t *testing.T) {
	kv := newFakeKV()
	kv.conflicts = 10
	store := alertstore.NewNATS(kv, alertstore.WithNATSMaxRetries(3))

	err := store.Append(context.Background(), "s", newAlert("a", alerts.TypeInfo, "x"))
	assert.ErrorIs(t, err, alertstore.ErrConflict)
	assert.Equal(t, 3, kv.updates)
}

func TestNATS_ScopeKeys(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := alertstore.NewNATS(kv)

	require.NoError(t, store.Append(ctx, "user@example.com/1", newAlert("a", alerts.TypeInfo, "x")))

	_, err := kv.Get("user_example.com_1")
	require.NoError(t, err)

	list, err := store.Load(ctx, "user@example.com/1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNATS_InvalidPayload(t *testing.T) {
	kv := newFakeKV()
	_, _ = kv.Put("s", []byte("{broken"))
	store := alertstore.NewNATS(kv)

	_, err := store.Load(context.Background(), "s")
	assert.ErrorIs(t, err, alerts.ErrInvalidPayload)
}
