package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.benchmarks/pkg/benchmark"
)

func TestWebhookPublisher_Publish(t *testing.T) {
	var received webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/results", r.URL.Path)
		assert.Equal(t, "Bearer hook-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	p := NewWebhookPublisher(srv.URL, "hook-token")
	require.NoError(t, p.Publish(context.Background(), testResult(t, false)))

	assert.Equal(t, "run-123", received.RunID)
	assert.Equal(t, benchmark.ID("disk_io"), received.BenchmarkID)
	assert.Equal(t, benchmark.StatusPassed, received.Status)
	assert.Equal(t, 2, received.VerdictsTotal)
	assert.Equal(t, 2, received.VerdictsPassed)
	assert.Empty(t, received.Failures)
}

func TestWebhookPublisher_Publish_FailedRun(t *testing.T) {
	var received webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewWebhookPublisher(srv.URL, "")
	require.NoError(t, p.Publish(context.Background(), testResult(t, true)))

	assert.Equal(t, 1, received.VerdictsPassed)
	require.Len(t, received.Failures, 1)
	assert.Contains(t, received.Failures[0], "→ FAIL")
}

func TestWebhookPublisher_Publish_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	p := NewWebhookPublisher(srv.URL, "")
	err := p.Publish(context.Background(), testResult(t, false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestWebhookPublisher_Publish_NetworkError(t *testing.T) {
	p := NewWebhookPublisher("http://127.0.0.1:1", "")
	err := p.Publish(context.Background(), testResult(t, false))
	require.Error(t, err)
}

func TestWebhookPublisher_WithPath(t *testing.T) {
	var path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewWebhookPublisher(srv.URL, "", WithPath("/api/v2/ingest"))
	require.NoError(t, p.Publish(context.Background(), testResult(t, false)))
	assert.Equal(t, "/api/v2/ingest", path.Load())
}

func TestWebhookPublisher_PublishAll_ContinuesPastFailure(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewWebhookPublisher(srv.URL, "")
	results := []*benchmark.Result{
		testResult(t, false),
		testResult(t, false),
	}

	err := p.PublishAll(context.Background(), results)
	require.Error(t, err)
	assert.Equal(t, int64(2), calls.Load())
}
