// Package tagapi is the client for the platform's entity tagging endpoint.
//
// It issues one DELETE per (selector, key) pair and one POST per selector.
// Nothing is retried; failures are returned as *errors.APIError values.
package tagapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/agentstation/tagsync/internal/transport"
	"github.com/agentstation/tagsync/pkg/constants"
	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/tagging"
)

// DeleteStatus is the outcome of a successful delete call.
type DeleteStatus string

// Delete outcomes.
const (
	Deleted  DeleteStatus = "deleted"
	NotFound DeleteStatus = "not_found"
)

// DeleteOutcome describes a delete that did not fail.
type DeleteOutcome struct {
	Status          DeleteStatus
	MatchedEntities int
}

// CreateResult describes a successful create call.
type CreateResult struct {
	MatchedEntities int
	AppliedTags     []tagging.Tag
}

// Client talks to {base}/api/v2/tags.
type Client struct {
	http     *transport.Client
	endpoint string
}

// New returns a Client for the environment at baseURL.
func New(baseURL string, hc *transport.Client) (*Client, error) {
	endpoint, err := TagsEndpoint(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, endpoint: endpoint}, nil
}

// Endpoint returns the resolved tags URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// TagsEndpoint resolves the tags URL from an environment base URL. A base
// that already ends in /api/v2 is not extended twice.
func TagsEndpoint(baseURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", errors.NewValidationError("url", baseURL, err.Error())
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.NewValidationError("url", baseURL, "must be an absolute http(s) URL")
	}
	path := strings.TrimRight(u.Path, "/")
	path = strings.TrimSuffix(path, "/api/v2")
	u.Path = path + constants.TagsAPIPath
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// countResponse is the body of both DELETE and POST responses.
type countResponse struct {
	MatchedEntitiesCount int           `json:"matchedEntitiesCount"`
	AppliedTags          []tagging.Tag `json:"appliedTags,omitempty"`
}

// Delete removes every tag with key from the entities matched by selector.
// A 404 is reported as NotFound, not as an error.
func (c *Client) Delete(ctx context.Context, selector tagging.Selector, key string) (DeleteOutcome, error) {
	q := url.Values{}
	q.Set("key", key)
	q.Set("deleteAllWithKey", "true")
	q.Set("entitySelector", selector.String())

	req, err := transport.NewJSONRequest(ctx, http.MethodDelete, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return DeleteOutcome{}, err
	}
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return DeleteOutcome{}, err
	}
	if resp.StatusCode == http.StatusNotFound {
		transport.Drain(resp)
		return DeleteOutcome{Status: NotFound}, nil
	}

	var out countResponse
	if err := transport.DecodeResponse(resp, &out); err != nil {
		return DeleteOutcome{}, err
	}
	return DeleteOutcome{Status: Deleted, MatchedEntities: out.MatchedEntitiesCount}, nil
}

// createRequest is the POST body.
type createRequest struct {
	Tags []tagging.Tag `json:"tags"`
}

// Create adds tags to every entity matched by selector. Existing tags with
// the same key and value are left as they are by the platform.
func (c *Client) Create(ctx context.Context, selector tagging.Selector, tags []tagging.Tag) (CreateResult, error) {
	q := url.Values{}
	q.Set("entitySelector", selector.String())

	req, err := transport.NewJSONRequest(ctx, http.MethodPost, c.endpoint+"?"+q.Encode(), createRequest{Tags: tags})
	if err != nil {
		return CreateResult{}, err
	}
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return CreateResult{}, err
	}

	var out countResponse
	if err := transport.DecodeResponse(resp, &out); err != nil {
		return CreateResult{}, err
	}
	return CreateResult{MatchedEntities: out.MatchedEntitiesCount, AppliedTags: out.AppliedTags}, nil
}
