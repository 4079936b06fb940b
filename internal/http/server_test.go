package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexforge/apexforge/internal/artifacts"
	"github.com/apexforge/apexforge/internal/logging"
)

type fakeStarter struct {
	started []string
	err     error
}

func (f *fakeStarter) StartPipeline(_ context.Context, projectID, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.started = append(f.started, projectID)
	return nil
}

func newTestServer(t *testing.T) (*Server, *artifacts.Store, *fakeStarter) {
	t.Helper()
	store := artifacts.NewStore()
	starter := &fakeStarter{}
	srv, err := NewServer(store, starter, logging.NewNop(), nil)
	require.NoError(t, err)
	return srv, store, starter
}

func doJSON(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

func TestNewServerValidation(t *testing.T) {
	store := artifacts.NewStore()
	starter := &fakeStarter{}
	logger := logging.NewNop()

	_, err := NewServer(nil, starter, logger, nil)
	assert.ErrorContains(t, err, "store")

	_, err = NewServer(store, nil, logger, nil)
	assert.ErrorContains(t, err, "starter")

	_, err = NewServer(store, starter, nil, nil)
	assert.ErrorContains(t, err, "logger")
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "apexforge", resp.Service)
}

func TestIndexServesUI(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ApexForge")
}

func TestCreateProject(t *testing.T) {
	srv, store, starter := newTestServer(t)

	rec := doJSON(srv, http.MethodPost, "/api/v1/projects",
		`{"name":"Tracker","requirements":"Track projects"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateProjectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ProjectID)
	assert.Equal(t, "pending", resp.Status)

	require.Len(t, starter.started, 1)
	assert.Equal(t, resp.ProjectID, starter.started[0])

	p, err := store.Get(resp.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "Tracker", p.Name)
	assert.Equal(t, artifacts.StatusPending, p.Status)
	require.Len(t, p.Messages, 1)
	assert.Equal(t, "System", p.Messages[0].Sender)
}

func TestCreateProjectDefaultsName(t *testing.T) {
	srv, store, _ := newTestServer(t)

	rec := doJSON(srv, http.MethodPost, "/api/v1/projects",
		`{"requirements":"Track projects"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateProjectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	p, err := store.Get(resp.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Project", p.Name)
}

func TestCreateProjectRequiresRequirements(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(srv, http.MethodPost, "/api/v1/projects", `{"name":"Tracker"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProjectStartFailure(t *testing.T) {
	srv, _, starter := newTestServer(t)
	starter.err = errors.New("temporal unavailable")

	rec := doJSON(srv, http.MethodPost, "/api/v1/projects",
		`{"requirements":"Track projects"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, starter.started)
}

func TestGetProject(t *testing.T) {
	srv, store, _ := newTestServer(t)
	store.Create("p1", "Tracker", "reqs")
	require.NoError(t, store.SetPhase("p1", "database_design", "Database Designer"))

	rec := doJSON(srv, http.MethodGet, "/api/v1/projects/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProjectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "p1", resp.ProjectID)
	assert.Equal(t, "database_design", resp.CurrentPhase)
	assert.Equal(t, "Database Designer", resp.CurrentAgent)

	rec = doJSON(srv, http.MethodGet, "/api/v1/projects/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMessagesPolling(t *testing.T) {
	srv, store, _ := newTestServer(t)
	store.Create("p1", "Tracker", "reqs")
	require.NoError(t, store.AddMessage("p1", "System", "first"))
	require.NoError(t, store.AddMessage("p1", "Business Analyst", "second"))

	rec := doJSON(srv, http.MethodGet, "/api/v1/projects/p1/messages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MessagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, 2, resp.LastID)

	// Incremental poll from the cursor.
	require.NoError(t, store.AddMessage("p1", "System", "third"))
	rec = doJSON(srv, http.MethodGet, "/api/v1/projects/p1/messages?after=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "third", resp.Messages[0].Content)
	assert.Equal(t, 3, resp.LastID)

	rec = doJSON(srv, http.MethodGet, "/api/v1/projects/p1/messages?after=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(srv, http.MethodGet, "/api/v1/projects/missing/messages", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostMessage(t *testing.T) {
	srv, store, _ := newTestServer(t)
	store.Create("p1", "Tracker", "reqs")

	rec := doJSON(srv, http.MethodPost, "/api/v1/projects/p1/messages",
		`{"content":"please add reporting"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	p, err := store.Get("p1")
	require.NoError(t, err)
	require.Len(t, p.Messages, 1)
	assert.Equal(t, "User", p.Messages[0].Sender)
	assert.Equal(t, "please add reporting", p.Messages[0].Content)

	rec = doJSON(srv, http.MethodPost, "/api/v1/projects/p1/messages", `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(srv, http.MethodPost, "/api/v1/projects/missing/messages",
		`{"content":"hello"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArtifacts(t *testing.T) {
	srv, store, _ := newTestServer(t)
	store.Create("p1", "Tracker", "reqs")
	require.NoError(t, store.AddArtifact("p1", artifacts.Artifact{
		Name:      "database_scripts",
		Type:      artifacts.TypeCode,
		Content:   "CREATE TABLE t (id NUMBER);",
		CreatedBy: "Database Developer",
	}))

	rec := doJSON(srv, http.MethodGet, "/api/v1/projects/p1/artifacts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list ArtifactsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Artifacts, 1)
	assert.Equal(t, "database_scripts", list.Artifacts[0].Name)
	assert.Equal(t, "database_scripts.sql", list.Artifacts[0].File)

	rec = doJSON(srv, http.MethodGet, "/api/v1/projects/p1/artifacts/database_scripts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var a artifacts.Artifact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, "CREATE TABLE t (id NUMBER);", a.Content)

	rec = doJSON(srv, http.MethodGet, "/api/v1/projects/p1/artifacts/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGracefulShutdown(t *testing.T) {
	store := artifacts.NewStore()
	srv, err := NewServer(store, &fakeStarter{}, logging.NewNop(), &Config{
		Host:            "localhost",
		Port:            18820,
		ShutdownTimeout: 2 * time.Second,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// Wait for the listener to come up.
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://localhost:18820/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 50*time.Millisecond)

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestRateLimit(t *testing.T) {
	srv, _, _ := newTestServer(t)

	// Burst of 3, then throttled.
	for i := 0; i < 3; i++ {
		rec := doJSON(srv, http.MethodPost, "/api/v1/projects",
			`{"requirements":"Track projects"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(srv, http.MethodPost, "/api/v1/projects",
		`{"requirements":"Track projects"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Reads are never throttled.
	rec = doJSON(srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
