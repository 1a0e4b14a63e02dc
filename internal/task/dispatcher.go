package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/creatorlab/taskgate/internal/store"
)

// Dispatcher accepts task submissions: it mints a uid, publishes the
// task to the broker, and initializes tracking state in the store.
type Dispatcher struct {
	store       store.Store
	publisher   Publisher
	queue       *PendingQueue
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewDispatcher creates a dispatcher with injected collaborators.
// callTimeout bounds each Submit call's external I/O; zero disables the
// bound.
func NewDispatcher(
	s store.Store,
	p Publisher,
	q *PendingQueue,
	callTimeout time.Duration,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		store:       s,
		publisher:   p,
		queue:       q,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// message is the wire payload handed to workers via the broker.
type message struct {
	UID    string         `json:"uid"`
	Task   string         `json:"task"`
	Params map[string]any `json:"params"`
}

// Submit dispatches one unit of work to topic and returns its uid.
//
// Order matters: publish first, then append to the pending queue, then
// write the initial record. A failed publish leaves no state behind; a
// failed store write after a successful publish is surfaced as a
// dispatch error even though a worker may still pick the task up — the
// task is lost from the tracking perspective, not hidden.
func (d *Dispatcher) Submit(ctx context.Context, topic, taskName string, params map[string]any) (string, error) {
	if taskName == "" {
		return "", fmt.Errorf("%w: empty task name", ErrDispatchFailed)
	}
	if d.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.callTimeout)
		defer cancel()
	}

	uid := uuid.NewString()

	payload, err := json.Marshal(message{UID: uid, Task: taskName, Params: params})
	if err != nil {
		return "", fmt.Errorf("%w: encode payload: %v", ErrDispatchFailed, err)
	}
	if err := d.publisher.Publish(ctx, topic, payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	if err := d.queue.Append(ctx, uid); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	rec, err := json.Marshal(Record{Status: StatusPending, Data: nil})
	if err != nil {
		return "", fmt.Errorf("%w: encode record: %v", ErrDispatchFailed, err)
	}
	if err := d.store.Set(ctx, uid, rec); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	d.logger.Info("task dispatched", "uid", uid, "topic", topic, "task", taskName)
	return uid, nil
}
