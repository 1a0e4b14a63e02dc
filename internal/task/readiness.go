package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ServerStatus is a point-in-time view of the worker pool and the
// pending backlog.
type ServerStatus struct {
	IsReady    bool
	NumPending int
}

// Readiness infers worker-pool availability from the broker's
// consumer-group membership and reports the raw pending count. A ready
// signal means at least one worker is attached right now; it is not a
// capacity guarantee.
type Readiness struct {
	groups      GroupCounter
	queue       *PendingQueue
	group       string
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewReadiness creates a probe for the named worker consumer group.
func NewReadiness(g GroupCounter, q *PendingQueue, group string, callTimeout time.Duration, logger *slog.Logger) *Readiness {
	return &Readiness{groups: g, queue: q, group: group, callTimeout: callTimeout, logger: logger}
}

// ServerStatus reports whether any worker is registered in the consumer
// group, along with the unpruned length of the pending queue. The count
// is coarse and possibly stale; it is not the per-task lag.
func (r *Readiness) ServerStatus(ctx context.Context) (ServerStatus, error) {
	if r.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.callTimeout)
		defer cancel()
	}

	members, err := r.groups.GroupMemberCount(ctx, r.group)
	if err != nil {
		return ServerStatus{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	queue, err := r.queue.Snapshot(ctx)
	if err != nil {
		return ServerStatus{}, err
	}

	return ServerStatus{IsReady: members > 0, NumPending: len(queue)}, nil
}
