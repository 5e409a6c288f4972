package tagapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tagsync/internal/tagapi"
	"github.com/agentstation/tagsync/internal/tagapi/tagapitest"
	"github.com/agentstation/tagsync/internal/transport"
	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/tagging"
)

const sel = tagging.Selector("type(host),entityName.startsWith(HOST01)")

func newClient(t *testing.T, base string) *tagapi.Client {
	t.Helper()
	hc := transport.New(&transport.SchemeAuth{Scheme: "Api-Token"}, "tok", transport.WithRateLimit(0, 0))
	c, err := tagapi.New(base, hc)
	require.NoError(t, err)
	return c
}

func TestTagsEndpoint(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"https://abc123.live.dynatrace.com", "https://abc123.live.dynatrace.com/api/v2/tags"},
		{"https://abc123.live.dynatrace.com/", "https://abc123.live.dynatrace.com/api/v2/tags"},
		{"https://abc123.live.dynatrace.com/api/v2", "https://abc123.live.dynatrace.com/api/v2/tags"},
		{"https://abc123.live.dynatrace.com/api/v2/", "https://abc123.live.dynatrace.com/api/v2/tags"},
		{"https://managed.example.com/e/env-id", "https://managed.example.com/e/env-id/api/v2/tags"},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			got, err := tagapi.TagsEndpoint(tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "abc123.live.dynatrace.com", "ftp://host", "https://"} {
		_, err := tagapi.TagsEndpoint(bad)
		assert.Error(t, err, bad)
		assert.True(t, errors.IsValidationError(err))
	}
}

func TestClient_Create(t *testing.T) {
	srv := tagapitest.NewServer()
	defer srv.Close()
	c := newClient(t, srv.URL)

	tags := []tagging.Tag{{Key: "[API]env", Value: "PROD"}, {Key: "[API]site", Value: "LDN"}}
	res, err := c.Create(context.Background(), sel, tags)
	require.NoError(t, err)
	assert.Equal(t, 1, res.MatchedEntities)
	assert.Equal(t, tags, res.AppliedTags)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, string(sel), calls[0].Selector)
	assert.Equal(t, "Api-Token tok", calls[0].Auth)
	assert.Equal(t, tags, calls[0].Tags)
}

func TestClient_CreateFailure(t *testing.T) {
	srv := tagapitest.NewServer()
	defer srv.Close()
	srv.FailCreate[string(sel)] = http.StatusBadRequest
	c := newClient(t, srv.URL)

	_, err := c.Create(context.Background(), sel, []tagging.Tag{{Key: "k", Value: "v"}})
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Bad Request")
}

func TestClient_Delete(t *testing.T) {
	srv := tagapitest.NewServer()
	defer srv.Close()
	srv.Seed(string(sel), tagging.Tag{Key: "[API]env", Value: "OLD"}, tagging.Tag{Key: "owner", Value: "ops"})
	c := newClient(t, srv.URL+"/api/v2")

	out, err := c.Delete(context.Background(), sel, "[API]env")
	require.NoError(t, err)
	assert.Equal(t, tagapi.Deleted, out.Status)
	assert.Equal(t, 1, out.MatchedEntities)

	assert.Equal(t, []tagging.Tag{{Key: "owner", Value: "ops"}}, srv.Tags(string(sel)))
	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "[API]env", calls[0].Key)
}

func TestClient_DeleteNotFound(t *testing.T) {
	srv := tagapitest.NewServer()
	defer srv.Close()
	srv.DeleteNotFound = true
	c := newClient(t, srv.URL)

	out, err := c.Delete(context.Background(), sel, "[API]env")
	require.NoError(t, err)
	assert.Equal(t, tagapi.NotFound, out.Status)
}

func TestClient_DeleteServerError(t *testing.T) {
	srv := tagapitest.NewServer()
	defer srv.Close()
	srv.FailDelete[string(sel)] = http.StatusServiceUnavailable
	c := newClient(t, srv.URL)

	_, err := c.Delete(context.Background(), sel, "[API]env")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnavailable)
}
