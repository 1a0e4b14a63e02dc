package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorlab/taskgate/internal/audit"
	"github.com/creatorlab/taskgate/internal/config"
	"github.com/creatorlab/taskgate/internal/store"
	"github.com/creatorlab/taskgate/internal/task"
)

// fakePublisher records published messages in place of a Kafka writer.
type fakePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *fakePublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

// fakeGroupCounter reports a fixed consumer-group membership.
type fakeGroupCounter struct {
	members int
}

func (g *fakeGroupCounter) GroupMemberCount(ctx context.Context, group string) (int, error) {
	return g.members, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:        8989,
			LogLevel:    "debug",
			CallTimeout: 5 * time.Second,
		},
		Redis: config.RedisConfig{Addr: "localhost:6379"},
		Kafka: config.KafkaConfig{
			Brokers:     "localhost:9092",
			WorkerGroup: "creator-consumer-1",
		},
	}
}

func newTestServer(t *testing.T, st store.Store, members int) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	app := newApplication(
		testConfig(),
		logger,
		st,
		&fakePublisher{},
		&fakeGroupCounter{members: members},
		audit.NopAuditor{},
	)
	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func getJSON(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestSubmitPollFinishLifecycle(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemStore()
	srv := newTestServer(t, mem, 1)

	// Submit a task.
	resp, body := postJSON(t, srv.URL+"/push/jobs", `{"task":"resize","params":{"w":100,"h":100}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var push struct {
		UID string `json:"uid"`
	}
	require.NoError(t, json.Unmarshal(body, &push))
	require.NotEmpty(t, push.UID)

	// Freshly submitted: pending, no data, at the front of the queue.
	resp, body = getJSON(t, srv.URL+"/status/"+push.UID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status struct {
		Status  string          `json:"status"`
		Data    json.RawMessage `json:"data"`
		Pending int             `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "pending", status.Status)
	assert.Equal(t, "null", string(status.Data))
	assert.Equal(t, 0, status.Pending)

	// A worker finishes the task.
	rec, err := json.Marshal(task.Record{
		Status: task.StatusFinished,
		Data:   json.RawMessage(`{"url":"https://cdn.example.com/out.png"}`),
	})
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, push.UID, rec))

	// Finished: lag zero, result payload present.
	resp, body = getJSON(t, srv.URL+"/status/"+push.UID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "finished", status.Status)
	assert.JSONEq(t, `{"url":"https://cdn.example.com/out.png"}`, string(status.Data))
	assert.Equal(t, 0, status.Pending)

	// Polling another task prunes the finished uid from the queue.
	resp, body = getJSON(t, srv.URL+"/status/other-task")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := mem.Get(ctx, task.PendingQueueKey)
	require.NoError(t, err)
	var queue []string
	require.NoError(t, json.Unmarshal(raw, &queue))
	assert.NotContains(t, queue, push.UID)
}

func TestServerStatusEndpoint(t *testing.T) {
	srv := newTestServer(t, store.NewMemStore(), 0)

	resp, body := getJSON(t, srv.URL+"/server_status")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"is_ready":false,"num_pending":0}`, string(body))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, store.NewMemStore(), 0)

	resp, body := getJSON(t, srv.URL+"/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"alive"}`, string(body))
}

func TestTranslateEndpointPassesTextThroughAudit(t *testing.T) {
	srv := newTestServer(t, store.NewMemStore(), 0)

	resp, body := postJSON(t, srv.URL+"/translate", `{"text":"a painting of a cat"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"text":"a painting of a cat","success":true,"reason":""}`, string(body))
}
