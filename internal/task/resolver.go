package task

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// StatusResult is the outcome of a status query: the authoritative
// status and result payload, plus the task's estimated position in the
// pending queue.
type StatusResult struct {
	Status Status
	Data   json.RawMessage
	Lag    int
}

// Resolver answers status queries. It observes the per-task state
// machine (pending → working → finished/exception) but never advances
// it; workers own every transition.
type Resolver struct {
	store       recordReader
	queue       *PendingQueue
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewResolver creates a resolver over the given store and queue.
func NewResolver(s recordReader, q *PendingQueue, callTimeout time.Duration, logger *slog.Logger) *Resolver {
	return &Resolver{store: s, queue: q, callTimeout: callTimeout, logger: logger}
}

// GetStatus returns the status, result payload, and lag for uid.
//
// An unknown uid is not an error: it reads as a fresh pending record. A
// finished task always has lag zero and leaves the queue untouched. For
// anything else the pending queue is pruned of finished entries and the
// uid's zero-based index in the pruned queue is the lag; a uid missing
// from the queue (pruned by a concurrent caller, or never appended
// after a partial dispatch failure) is assumed to be at the back.
func (r *Resolver) GetStatus(ctx context.Context, uid string) (StatusResult, error) {
	if r.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.callTimeout)
		defer cancel()
	}

	rec, err := fetchRecord(ctx, r.store, uid)
	if err != nil {
		return StatusResult{}, err
	}
	if rec.Status == StatusFinished {
		return StatusResult{Status: rec.Status, Data: rec.Data, Lag: 0}, nil
	}

	queue, err := r.queue.PruneAndRewrite(ctx, func(ctx context.Context, qUID string) (bool, error) {
		qRec, err := fetchRecord(ctx, r.store, qUID)
		if err != nil {
			return false, err
		}
		return qRec.Status == StatusFinished, nil
	})
	if err != nil {
		return StatusResult{}, err
	}

	lag := indexOf(queue, uid)
	if lag < 0 {
		// Already pruned by a concurrent caller, or never appended.
		// Assume the caller is at the back rather than failing.
		lag = len(queue) - 1
		if lag < 0 {
			lag = 0
		}
		r.logger.Debug("uid not in pending queue, using fallback lag",
			"uid", uid, "lag", lag)
	}
	return StatusResult{Status: rec.Status, Data: rec.Data, Lag: lag}, nil
}

func indexOf(uids []string, uid string) int {
	for i, u := range uids {
		if u == uid {
			return i
		}
	}
	return -1
}
