package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("http://localhost:8080")
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
	assert.Equal(t, "", c.Token())
	assert.Equal(t, 30*time.Second, c.httpClient.Timeout)
}

func TestNewClient_TrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:8080/")
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
}

func TestNewClient_Options(t *testing.T) {
	c := NewClient("http://example.com",
		WithToken("tok-123"),
		WithHeader("X-Run-ID", "abc"),
		WithTimeout(5*time.Second),
	)
	assert.Equal(t, "tok-123", c.Token())
	assert.Equal(t, "abc", c.headers["X-Run-ID"])
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
}

func TestClient_SetToken(t *testing.T) {
	c := NewClient("http://localhost")
	c.SetToken("my-token")
	assert.Equal(t, "my-token", c.Token())
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer my-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/health", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "healthy",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithToken("my-token"))
	code, result, err := c.Get(context.Background(), "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", result["status"])
}

func TestClient_Get_NoAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	code, _, err := c.Get(context.Background(), "/test")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
}

func TestClient_Get_CustomHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "run-42", r.Header.Get("X-Run-ID"))
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHeader("X-Run-ID", "run-42"))
	_, _, err := c.Get(context.Background(), "/test")
	require.NoError(t, err)
}

func TestClient_GetRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("raw bytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	code, data, err := c.GetRaw(context.Background(), "/raw")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "raw bytes", string(data))
}

func TestClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "disk_io", body["benchmark"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithToken("tok"))
	code, data, err := c.PostJSON(
		context.Background(), "/reports", []byte(`{"benchmark":"disk_io"}`),
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, code)
	assert.Contains(t, string(data), `"id"`)
}

func TestClient_PostObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(3), body["trials"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	code, _, err := c.PostObject(
		context.Background(), "/reports",
		map[string]interface{}{"trials": 3},
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
}

func TestClient_PostObject_MarshalError(t *testing.T) {
	c := NewClient("http://localhost")
	_, _, err := c.PostObject(
		context.Background(), "/reports", map[string]interface{}{
			"bad": func() {},
		},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal body")
}

func TestClient_Get_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, _, err := c.Get(context.Background(), "/bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse response")
}

func TestClient_RequestError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", WithTimeout(200*time.Millisecond))
	_, _, err := c.GetRaw(context.Background(), "/unreachable")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}
