package task

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/creatorlab/taskgate/internal/store"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// fakePublisher implements Publisher for testing, recording every
// published message and optionally failing.
type fakePublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

type publishedMessage struct {
	topic   string
	payload []byte
}

func (p *fakePublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{topic: topic, payload: payload})
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

// fakeGroupCounter implements GroupCounter with a fixed member count.
type fakeGroupCounter struct {
	members int
	err     error
	gotName string
}

func (g *fakeGroupCounter) GroupMemberCount(ctx context.Context, group string) (int, error) {
	g.gotName = group
	if g.err != nil {
		return 0, g.err
	}
	return g.members, nil
}

// countingStore wraps a store and counts Set calls, for asserting that
// idempotent prunes perform no write.
type countingStore struct {
	store.Store
	mu   sync.Mutex
	sets int
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.Store.Set(ctx, key, value)
}

func (c *countingStore) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

// failingStore returns the configured error from every call.
type failingStore struct {
	err error
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, f.err
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	return f.err
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	return f.err
}

var errStoreDown = errors.New("connection refused")
