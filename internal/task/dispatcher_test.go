package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorlab/taskgate/internal/store"
)

func newTestDispatcher(s store.Store, p Publisher) (*Dispatcher, *PendingQueue) {
	logger := setupTestLogger()
	queue := NewPendingQueue(s, logger)
	return NewDispatcher(s, p, queue, 0, logger), queue
}

func TestSubmitReturnsUniqueUIDs(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemStore()
	pub := &fakePublisher{}
	d, _ := newTestDispatcher(mem, pub)

	const n = 50
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		uid, err := d.Submit(ctx, "jobs", "resize", map[string]any{"i": i})
		require.NoError(t, err)
		require.NotEmpty(t, uid)
		assert.False(t, seen[uid], "uid %q returned twice", uid)
		seen[uid] = true
	}
	assert.Equal(t, n, pub.count(), "exactly one broker message per successful call")
}

func TestSubmitInitializesPendingRecord(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemStore()
	d, _ := newTestDispatcher(mem, &fakePublisher{})

	uid, err := d.Submit(ctx, "jobs", "resize", map[string]any{"w": 100})
	require.NoError(t, err)

	raw, err := mem.Get(ctx, uid)
	require.NoError(t, err)
	var rec Record
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, StatusPending, rec.Status)
	assert.Equal(t, json.RawMessage("null"), rec.Data)
}

func TestSubmitAppendsToPendingQueueInOrder(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemStore()
	d, queue := newTestDispatcher(mem, &fakePublisher{})

	uid1, err := d.Submit(ctx, "jobs", "a", nil)
	require.NoError(t, err)
	uid2, err := d.Submit(ctx, "jobs", "b", nil)
	require.NoError(t, err)

	uids, err := queue.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{uid1, uid2}, uids)
}

func TestSubmitPublishesWirePayload(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	d, _ := newTestDispatcher(store.NewMemStore(), pub)

	uid, err := d.Submit(ctx, "jobs", "resize", map[string]any{"w": float64(100)})
	require.NoError(t, err)
	require.Len(t, pub.messages, 1)
	assert.Equal(t, "jobs", pub.messages[0].topic)

	var msg message
	require.NoError(t, json.Unmarshal(pub.messages[0].payload, &msg))
	assert.Equal(t, uid, msg.UID)
	assert.Equal(t, "resize", msg.Task)
	assert.Equal(t, map[string]any{"w": float64(100)}, msg.Params)
}

func TestSubmitPublishFailureLeavesNoState(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemStore()
	pub := &fakePublisher{err: errors.New("broker unreachable")}
	d, queue := newTestDispatcher(mem, pub)

	uid, err := d.Submit(ctx, "jobs", "resize", nil)
	assert.Empty(t, uid)
	assert.ErrorIs(t, err, ErrDispatchFailed)

	assert.Equal(t, 0, mem.Len(), "no record or queue entry after failed publish")
	uids, err := queue.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, uids)
}

func TestSubmitStoreFailureSurfacesDispatchError(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDispatcher(&failingStore{err: errStoreDown}, &fakePublisher{})

	uid, err := d.Submit(ctx, "jobs", "resize", nil)
	assert.Empty(t, uid)
	assert.ErrorIs(t, err, ErrDispatchFailed)
}

func TestSubmitRejectsEmptyTaskName(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	d, _ := newTestDispatcher(store.NewMemStore(), pub)

	_, err := d.Submit(ctx, "jobs", "", nil)
	assert.ErrorIs(t, err, ErrDispatchFailed)
	assert.Equal(t, 0, pub.count())
}
