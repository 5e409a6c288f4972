package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tagsync/pkg/errors"
)

func TestClient_DoAppliesHeaders(t *testing.T) {
	var got http.Header
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(&SchemeAuth{Scheme: "Api-Token"}, "secret", WithRateLimit(0, 0))
	req, err := NewJSONRequest(context.Background(), http.MethodPost, srv.URL+"/x", map[string]string{"a": "b"})
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)

	var out struct{ OK bool }
	require.NoError(t, DecodeResponse(resp, &out))
	assert.True(t, out.OK)

	assert.Equal(t, "Api-Token secret", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Contains(t, got.Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"a":"b"}`, body)
}

func TestClient_DeleteHasNoContentType(t *testing.T) {
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(&NoAuth{}, "", WithRateLimit(0, 0))
	req, err := NewJSONRequest(context.Background(), http.MethodDelete, srv.URL, nil)
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, nil))
	assert.Empty(t, contentType)
}

func TestDecodeResponse_APIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"not found", http.StatusNotFound, errors.ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, errors.ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, errors.ErrRateLimited},
		{"server error", http.StatusBadGateway, errors.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
			}))
			defer srv.Close()

			c := New(nil, "", WithRateLimit(0, 0))
			req, err := NewJSONRequest(context.Background(), http.MethodGet, srv.URL+"/api/v2/tags", nil)
			require.NoError(t, err)
			resp, err := c.Do(context.Background(), req)
			require.NoError(t, err)

			err = DecodeResponse(resp, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var apiErr *errors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "/api/v2/tags", apiErr.Endpoint)
			assert.Contains(t, apiErr.Body, "nope")
		})
	}
}

func TestClient_RateLimitPacesRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(nil, "", WithRateLimit(20, 1))
	start := time.Now()
	for i := 0; i < 3; i++ {
		req, err := NewJSONRequest(context.Background(), http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		resp, err := c.Do(context.Background(), req)
		require.NoError(t, err)
		Drain(resp)
	}
	// Burst 1 at 20/s: the 2nd and 3rd calls each wait ~50ms.
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestClient_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(nil, "", WithRateLimit(0, 0))
	req, err := NewJSONRequest(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = c.Do(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCanceled)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(nil, "", WithRateLimit(0, 0), WithTimeout(time.Second))
	req, err := NewJSONRequest(context.Background(), http.MethodGet, url+"/api/v2/tags", nil)
	require.NoError(t, err)

	_, err = c.Do(context.Background(), req)
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.NotNil(t, apiErr.Unwrap())
}
