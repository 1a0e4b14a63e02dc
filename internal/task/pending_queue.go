package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/creatorlab/taskgate/internal/store"
)

// PendingQueue owns the ordered list of outstanding task uids persisted
// under PendingQueueKey. The queue is advisory: it is used only to
// estimate a task's position, never to decide completion — that is the
// Record's job.
//
// A per-process mutex serializes the read-modify-write cycles of Append
// and PruneAndRewrite so two handlers in this process cannot overwrite
// each other's update. Writers in other processes can still race
// against us; the queue's advisory nature makes that acceptable.
type PendingQueue struct {
	mu     sync.Mutex
	store  store.Store
	logger *slog.Logger
}

// NewPendingQueue creates a tracker backed by the given store.
func NewPendingQueue(s store.Store, logger *slog.Logger) *PendingQueue {
	return &PendingQueue{store: s, logger: logger}
}

// load reads and decodes the queue. An absent key is an empty queue.
func (q *PendingQueue) load(ctx context.Context) ([]string, error) {
	raw, err := q.store.Get(ctx, PendingQueueKey)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: pending queue read: %v", ErrQueryFailed, err)
	}
	var uids []string
	if err := json.Unmarshal(raw, &uids); err != nil {
		return nil, fmt.Errorf("%w: malformed pending queue: %v", ErrQueryFailed, err)
	}
	return uids, nil
}

func (q *PendingQueue) save(ctx context.Context, uids []string) error {
	if uids == nil {
		uids = []string{}
	}
	raw, err := json.Marshal(uids)
	if err != nil {
		return fmt.Errorf("encode pending queue: %w", err)
	}
	if err := q.store.Set(ctx, PendingQueueKey, raw); err != nil {
		return fmt.Errorf("pending queue write: %w", err)
	}
	return nil
}

// Snapshot returns the current queue verbatim, without pruning.
func (q *PendingQueue) Snapshot(ctx context.Context) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load(ctx)
}

// Append adds uid to the back of the queue.
func (q *PendingQueue) Append(ctx context.Context, uid string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	uids, err := q.load(ctx)
	if err != nil {
		return err
	}
	uids = append(uids, uid)
	if err := q.save(ctx, uids); err != nil {
		return err
	}
	q.logger.Debug("uid appended to pending queue", "uid", uid, "queue_len", len(uids))
	return nil
}

// PruneAndRewrite removes every uid for which done reports true,
// preserving the relative order of survivors. The filtered queue is
// written back only when at least one element was removed, so repeated
// calls with no state change perform no write. Returns the filtered
// queue.
func (q *PendingQueue) PruneAndRewrite(
	ctx context.Context,
	done func(ctx context.Context, uid string) (bool, error),
) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	uids, err := q.load(ctx)
	if err != nil {
		return nil, err
	}

	kept := uids[:0:0]
	removed := 0
	for _, uid := range uids {
		finished, err := done(ctx, uid)
		if err != nil {
			return nil, err
		}
		if finished {
			removed++
			continue
		}
		kept = append(kept, uid)
	}

	if removed > 0 {
		if err := q.save(ctx, kept); err != nil {
			return nil, err
		}
		q.logger.Debug("pending queue pruned", "removed", removed, "queue_len", len(kept))
	}
	return kept, nil
}
