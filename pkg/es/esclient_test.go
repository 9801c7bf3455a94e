package es

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func server(t *testing.T, status int) string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"name":"node-1","cluster_name":"test","version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(context.Background(), Config{URL: server(t, http.StatusOK)})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestNewClient_ClusterError(t *testing.T) {
	_, err := NewClient(context.Background(), Config{URL: server(t, http.StatusUnauthorized)})
	require.Error(t, err)
}
