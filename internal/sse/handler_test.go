package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questkeeper-app/questkeeper/internal/identity"
)

// syncWriter is a flushable ResponseWriter safe to read while the handler
// goroutine is still streaming into it
type syncWriter struct {
	mu     sync.Mutex
	header http.Header
	status int
	body   strings.Builder
	wrote  chan struct{}
}

func newSyncWriter() *syncWriter {
	return &syncWriter{
		header: make(http.Header),
		wrote:  make(chan struct{}, 64),
	}
}

func (w *syncWriter) Header() http.Header { return w.header }

func (w *syncWriter) WriteHeader(status int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = status
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	w.body.Write(p)
	w.mu.Unlock()

	select {
	case w.wrote <- struct{}{}:
	default:
	}
	return len(p), nil
}

func (w *syncWriter) Flush() {}

func (w *syncWriter) Body() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.body.String()
}

func (w *syncWriter) waitForWrite(t *testing.T) {
	t.Helper()
	select {
	case <-w.wrote:
	case <-time.After(hubTimeout):
		t.Fatal("timed out waiting for handler write")
	}
}

func TestHandler_RequiresIdentity(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	rec := httptest.NewRecorder()

	Handler(hub, identity.NewHeaderResolver())(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHandler_SendsConnectedFrame(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // handler exits right after the greeting

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?types=task.created,task.deleted", nil).WithContext(ctx)
	req.Header.Set(identity.HeaderUserID, "alice")
	rec := httptest.NewRecorder()

	Handler(hub, identity.NewHeaderResolver())(rec, req)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event: "+EventTypeConnected)
	assert.Contains(t, body, "task.created")

	waitForClients(t, hub, 0)
}

func TestHandler_StreamsBroadcastEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil).WithContext(ctx)
	req.Header.Set(identity.HeaderUserID, "alice")
	w := newSyncWriter()

	done := make(chan struct{})
	go func() {
		defer close(done)
		Handler(hub, identity.NewHeaderResolver())(w, req)
	}()

	// Connected frame first
	w.waitForWrite(t)
	require.Contains(t, w.Body(), EventTypeConnected)
	waitForClients(t, hub, 1)

	hub.Broadcast("alice", "task.created", map[string]string{"task_id": "t-1"})

	deadline := time.Now().Add(hubTimeout)
	for !strings.Contains(w.Body(), "event: task.created") {
		require.True(t, time.Now().Before(deadline), "broadcast frame never written")
		w.waitForWrite(t)
	}
	assert.Contains(t, w.Body(), "t-1")

	cancel()
	select {
	case <-done:
	case <-time.After(hubTimeout):
		t.Fatal("handler did not exit on disconnect")
	}
	waitForClients(t, hub, 0)
}

func TestHandler_RejectsNonFlushableWriter(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set(identity.HeaderUserID, "alice")

	w := &plainWriter{header: make(http.Header)}
	Handler(hub, identity.NewHeaderResolver())(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.status)
}

type plainWriter struct {
	header http.Header
	status int
}

func (w *plainWriter) Header() http.Header         { return w.header }
func (w *plainWriter) WriteHeader(status int)      { w.status = status }
func (w *plainWriter) Write(p []byte) (int, error) { return len(p), nil }
