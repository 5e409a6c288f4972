package tagsync

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/reconciler"
)

// Option is a function that configures a run.
type Option func(*runOptions) error

type runOptions struct {
	logger     *zerolog.Logger
	client     reconciler.TagClient
	httpClient *http.Client
	runID      string
}

// WithLogger configures the logger of the run. The run id is added to it.
// A run without this option logs nothing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *runOptions) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		o.logger = logger
		return nil
	}
}

// WithTagClient replaces the HTTP tagging client, e.g. with a fake.
func WithTagClient(client reconciler.TagClient) Option {
	return func(o *runOptions) error {
		o.client = client
		return nil
	}
}

// WithHTTPClient configures the http.Client used by the tagging client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *runOptions) error {
		o.httpClient = hc
		return nil
	}
}

// WithRunID fixes the run id instead of generating one.
func WithRunID(id string) Option {
	return func(o *runOptions) error {
		o.runID = id
		return nil
	}
}
