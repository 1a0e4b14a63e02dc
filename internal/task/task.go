package task

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/creatorlab/taskgate/internal/store"
)

// Status represents the current state of a dispatched task.
type Status string

// Possible task status values. Only StatusFinished counts as complete
// for lag purposes; workers own every transition after the initial
// pending write.
const (
	StatusPending   Status = "pending"
	StatusWorking   Status = "working"
	StatusFinished  Status = "finished"
	StatusException Status = "exception"
)

// PendingQueueKey is the well-known store key holding the ordered list
// of outstanding task uids.
const PendingQueueKey = "KAFKA_PENDING_QUEUE"

// Common errors returned by the dispatch core.
var (
	// ErrDispatchFailed indicates a submission did not complete: the
	// broker publish was rejected, or tracking state could not be
	// persisted afterwards. No uid is returned to the caller.
	ErrDispatchFailed = errors.New("task dispatch failed")

	// ErrQueryFailed indicates the store or broker was unreachable
	// during a status or readiness read. Distinct from an unknown uid,
	// which is a valid state that reads as pending.
	ErrQueryFailed = errors.New("status query failed")
)

// Record is the authoritative per-task state persisted in the store
// under key = uid. The core writes it exactly once, with status pending;
// workers overwrite it as they make progress.
type Record struct {
	Status Status          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Publisher sends one message to a broker topic per call.
// Version: 1.0
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// GroupCounter reports the number of active members in a broker
// consumer group.
// Version: 1.0
type GroupCounter interface {
	GroupMemberCount(ctx context.Context, group string) (int, error)
}

var jsonNull = []byte("null")

// recordReader is the read-only subset of store.Store needed to fetch
// task records.
type recordReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// fetchRecord reads the Record for uid. An absent key reads as a fresh
// pending record: unknown is indistinguishable from pending.
func fetchRecord(ctx context.Context, s recordReader, uid string) (Record, error) {
	raw, err := s.Get(ctx, uid)
	if err != nil {
		if store.IsNotFound(err) {
			return Record{Status: StatusPending, Data: nil}, nil
		}
		return Record{}, fmt.Errorf("%w: record %q: %v", ErrQueryFailed, uid, err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: malformed record %q: %v", ErrQueryFailed, uid, err)
	}
	if bytes.Equal(bytes.TrimSpace(rec.Data), jsonNull) {
		rec.Data = nil
	}
	return rec, nil
}
