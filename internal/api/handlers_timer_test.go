package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pottypal/potty-timer/internal/model"
	"github.com/pottypal/potty-timer/internal/services"
	"github.com/pottypal/potty-timer/internal/store/sqlite"
)

// envelope mirrors the uniform response shape for assertions.
type envelope struct {
	Success bool          `json:"success"`
	Timer   *model.Timer  `json:"timer"`
	Timers  []model.Timer `json:"timers"`
	Count   int           `json:"count"`
	Message string        `json:"message"`
	Error   string        `json:"error"`
	Details string        `json:"details"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "timers.db"))
	require.NoError(t, err)
	srv := httptest.NewServer(NewRouter(services.NewTimerService(st), nil))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func createTimer(t *testing.T, srv *httptest.Server, duration int) *model.Timer {
	t.Helper()
	code, env := doJSON(t, http.MethodPost, srv.URL+"/timers", map[string]interface{}{"duration": duration})
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Timer)
	return env.Timer
}

func TestCreateTimer(t *testing.T) {
	srv := newTestServer(t)

	code, env := doJSON(t, http.MethodPost, srv.URL+"/timers", map[string]interface{}{"duration": 1800})
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "Timer created successfully", env.Message)
	require.NotNil(t, env.Timer)
	assert.Equal(t, int64(1800), env.Timer.Duration)
	assert.Equal(t, int64(1800), env.Timer.RemainingTime)
	assert.False(t, env.Timer.IsActive)
	assert.NotEmpty(t, env.Timer.ID)
}

func TestCreateTimer_InvalidDuration(t *testing.T) {
	srv := newTestServer(t)

	bodies := []interface{}{
		map[string]interface{}{"duration": 0},
		map[string]interface{}{"duration": -5},
		map[string]interface{}{"duration": "abc"},
		map[string]interface{}{"duration": nil},
		map[string]interface{}{},
	}
	for i, body := range bodies {
		code, env := doJSON(t, http.MethodPost, srv.URL+"/timers", body)
		assert.Equal(t, http.StatusBadRequest, code, "case %d", i)
		assert.False(t, env.Success, "case %d", i)
		assert.Equal(t, "Invalid duration. Must be a positive number.", env.Error, "case %d", i)
	}

	// nothing was persisted
	code, env := doJSON(t, http.MethodGet, srv.URL+"/timers", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Zero(t, env.Count)
}

func TestListTimers(t *testing.T) {
	srv := newTestServer(t)

	first := createTimer(t, srv, 60)
	second := createTimer(t, srv, 120)

	code, env := doJSON(t, http.MethodGet, srv.URL+"/timers", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Count)
	require.Len(t, env.Timers, 2)
	assert.Equal(t, second.ID, env.Timers[0].ID)
	assert.Equal(t, first.ID, env.Timers[1].ID)
}

func TestGetCurrentTimer(t *testing.T) {
	srv := newTestServer(t)

	// empty store
	code, env := doJSON(t, http.MethodGet, srv.URL+"/timers/current", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Timer not found", env.Error)

	createTimer(t, srv, 60)
	newest := createTimer(t, srv, 120)

	code, env = doJSON(t, http.MethodGet, srv.URL+"/timers/current", nil)
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Timer)
	assert.Equal(t, newest.ID, env.Timer.ID)
}

func TestGetTimer_NotFound(t *testing.T) {
	srv := newTestServer(t)

	code, env := doJSON(t, http.MethodGet, srv.URL+"/timers/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Timer not found", env.Error)
}

func TestStartPauseReset(t *testing.T) {
	srv := newTestServer(t)
	timer := createTimer(t, srv, 1800)
	base := srv.URL + "/timers/" + timer.ID

	code, env := doJSON(t, http.MethodPut, base+"/start", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Timer started", env.Message)
	require.NotNil(t, env.Timer)
	assert.True(t, env.Timer.IsActive)

	code, env = doJSON(t, http.MethodPut, base+"/pause", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Timer paused", env.Message)
	require.NotNil(t, env.Timer)
	assert.False(t, env.Timer.IsActive)
	assert.LessOrEqual(t, env.Timer.RemainingTime, int64(1800))
	assert.Greater(t, env.Timer.RemainingTime, int64(0))

	code, env = doJSON(t, http.MethodPut, base+"/reset", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Timer reset", env.Message)
	require.NotNil(t, env.Timer)
	assert.False(t, env.Timer.IsActive)
	assert.Equal(t, int64(1800), env.Timer.RemainingTime)
}

func TestTransitions_NotFound(t *testing.T) {
	srv := newTestServer(t)

	for _, action := range []string{"start", "pause", "reset"} {
		code, env := doJSON(t, http.MethodPut, srv.URL+"/timers/no-such-id/"+action, nil)
		assert.Equal(t, http.StatusNotFound, code, action)
		assert.Equal(t, "Timer not found", env.Error, action)
	}
}

func TestChangeDuration(t *testing.T) {
	srv := newTestServer(t)
	timer := createTimer(t, srv, 3600)
	url := fmt.Sprintf("%s/timers/%s/duration", srv.URL, timer.ID)

	code, env := doJSON(t, http.MethodPut, url, map[string]interface{}{"duration": 1800})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Timer duration updated", env.Message)
	require.NotNil(t, env.Timer)
	assert.Equal(t, int64(1800), env.Timer.Duration)
	assert.Equal(t, int64(1800), env.Timer.RemainingTime)

	code, env = doJSON(t, http.MethodPut, url, map[string]interface{}{"duration": -1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid duration. Must be a positive number.", env.Error)

	code, env = doJSON(t, http.MethodPut, srv.URL+"/timers/no-such-id/duration", map[string]interface{}{"duration": 60})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Timer not found", env.Error)
}

func TestUpdateTimer_PartialMerge(t *testing.T) {
	srv := newTestServer(t)
	timer := createTimer(t, srv, 600)

	code, env := doJSON(t, http.MethodPut, srv.URL+"/timers/"+timer.ID,
		map[string]interface{}{"remainingTime": 42})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Timer updated", env.Message)
	require.NotNil(t, env.Timer)
	assert.Equal(t, int64(42), env.Timer.RemainingTime)
	// untouched fields survive
	assert.Equal(t, int64(600), env.Timer.Duration)

	code, env = doJSON(t, http.MethodPut, srv.URL+"/timers/no-such-id",
		map[string]interface{}{"remainingTime": 42})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Timer not found", env.Error)
}

func TestDeleteTimer(t *testing.T) {
	srv := newTestServer(t)
	timer := createTimer(t, srv, 60)

	code, env := doJSON(t, http.MethodDelete, srv.URL+"/timers/"+timer.ID, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "Timer deleted successfully", env.Message)

	code, env = doJSON(t, http.MethodGet, srv.URL+"/timers/"+timer.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Timer not found", env.Error)

	code, env = doJSON(t, http.MethodDelete, srv.URL+"/timers/"+timer.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Timer not found", env.Error)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	code, env := doJSON(t, http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}
