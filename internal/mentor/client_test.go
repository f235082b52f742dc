package mentor

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

func TestClientQuery_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "how do I fix this nil pointer?", req.Input)
		assert.Len(t, req.History, 2)

		json.NewEncoder(w).Encode(QueryResponse{ //nolint:errcheck // test server
			Session: "check where conn is initialized before use",
			IDE:     "conn := pool.Acquire(ctx)",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Query(context.Background(), &QueryRequest{
		Input: "how do I fix this nil pointer?",
		History: []Message{
			{Role: "user", Content: "my server crashes on start"},
			{Role: "assistant", Content: "what does the stack trace say?"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "check where conn is initialized before use", resp.Session)
	assert.Equal(t, "conn := pool.Acquire(ctx)", resp.IDE)
}

func TestClientQuery_TrailingSlashBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		json.NewEncoder(w).Encode(QueryResponse{Session: "ok"}) //nolint:errcheck // test server
	}))
	defer server.Close()

	client := NewClient(server.URL + "/")

	resp, err := client.Query(context.Background(), &QueryRequest{Input: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Session)
}

func TestClientQuery_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Query(context.Background(), &QueryRequest{Input: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestClientQuery_EmptySession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(QueryResponse{}) //nolint:errcheck // test server
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Query(context.Background(), &QueryRequest{Input: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty session")
}

func TestClientQuery_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(QueryResponse{Session: "too late"}) //nolint:errcheck // test server
	}))
	defer server.Close()

	client := NewClient(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Query(ctx, &QueryRequest{Input: "hi"})

	require.Error(t, err)
}
