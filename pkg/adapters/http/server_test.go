package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/driftkit/sway/pkg/adapters/http"
	"github.com/driftkit/sway/pkg/domain"
	"github.com/driftkit/sway/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticSnapshotter serves a fixed snapshot.
type staticSnapshotter struct {
	snap *domain.Snapshot
}

func (s *staticSnapshotter) Snapshot() *domain.Snapshot { return s.snap }

// memStore is a minimal in-memory SnapshotStore for handler tests.
type memStore struct {
	data map[string]*domain.Snapshot
}

func (m *memStore) Save(ctx context.Context, id string, s *domain.Snapshot) error {
	m.data[id] = s
	return nil
}

func (m *memStore) Load(ctx context.Context, id string) (*domain.Snapshot, error) {
	if s, ok := m.data[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSnapshotNotFound
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *memStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	h := httpadapter.New().Handler()

	w := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServer_LiveGroups(t *testing.T) {
	srv := httpadapter.New()
	snap := &domain.Snapshot{
		GroupID: "list",
		Pass:    4,
		TakenAt: time.Now(),
		Transitions: []domain.TransitionRecord{
			{ID: 1, Item: "a", Phase: "enter", Values: domain.Values{"opacity": 1}},
		},
	}
	srv.Register("list", &staticSnapshotter{snap: snap})
	h := srv.Handler()

	w := get(t, h, "/v1/groups")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"groups":["list"]}`, w.Body.String())

	w = get(t, h, "/v1/groups/list")
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 4, got.Pass)
	require.Len(t, got.Transitions, 1)
	assert.Equal(t, "enter", got.Transitions[0].Phase)

	w = get(t, h, "/v1/groups/other")
	assert.Equal(t, http.StatusNotFound, w.Code)

	srv.Deregister("list")
	w = get(t, h, "/v1/groups/list")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StoredSnapshots(t *testing.T) {
	store := &memStore{data: map[string]*domain.Snapshot{
		"g": {GroupID: "g", Pass: 2},
	}}
	h := httpadapter.New(httpadapter.WithStore(store)).Handler()

	w := get(t, h, "/v1/snapshots")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"groups":["g"]}`, w.Body.String())

	w = get(t, h, "/v1/snapshots/g")
	require.Equal(t, http.StatusOK, w.Code)

	w = get(t, h, "/v1/snapshots/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_NoStoreConfigured(t *testing.T) {
	h := httpadapter.New().Handler()

	w := get(t, h, "/v1/snapshots")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg, "g")
	m.Hooks().OnPass(domain.PassEvent{Pass: 1, Tracked: 2})

	h := httpadapter.New(httpadapter.WithMetrics(reg)).Handler()

	w := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sway_passes_total")
}
