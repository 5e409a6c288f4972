package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tagsync/pkg/errors"
)

// Options configures a reconciler.
type options struct {
	logger *zerolog.Logger
	delete bool
	create bool
}

func defaultOptions() *options {
	nop := zerolog.Nop()
	return &options{
		logger: &nop,
		delete: false,
		create: true,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithLogger sets the run-scoped logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}

// WithDelete toggles the delete pass.
func WithDelete(enabled bool) Option {
	return func(o *options) error {
		o.delete = enabled
		return nil
	}
}

// WithCreate toggles the create pass.
func WithCreate(enabled bool) Option {
	return func(o *options) error {
		o.create = enabled
		return nil
	}
}
