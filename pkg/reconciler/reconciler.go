// Package reconciler applies a desired tag state to the remote platform.
//
// A run is two passes over the desired state in entry order. The delete
// pass removes every managed key of every entry; the create pass then
// writes each entry's full tag list. The delete pass always finishes
// before the first create call. A failed call is recorded and the run
// moves on; nothing is retried.
package reconciler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/tagsync/internal/tagapi"
	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/tagging"
)

// TagClient is the remote tagging API.
type TagClient interface {
	Delete(ctx context.Context, selector tagging.Selector, key string) (tagapi.DeleteOutcome, error)
	Create(ctx context.Context, selector tagging.Selector, tags []tagging.Tag) (tagapi.CreateResult, error)
}

// Reconciler drives a desired state against the remote API.
type Reconciler interface {
	// Apply runs the enabled passes. The returned error is non-nil only
	// when ctx is canceled; the partial Result is still returned.
	Apply(ctx context.Context, state *tagging.DesiredState) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	client TagClient
	logger *zerolog.Logger
	delete bool
	create bool
}

// New creates a new Reconciler with options.
func New(client TagClient, opts ...Option) (Reconciler, error) {
	if client == nil {
		return nil, &errors.ValidationError{
			Field:   "client",
			Message: "cannot be nil",
		}
	}
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		client: client,
		logger: options.logger,
		delete: options.delete,
		create: options.create,
	}, nil
}

// Apply runs the delete pass then the create pass.
func (r *reconciler) Apply(ctx context.Context, state *tagging.DesiredState) (*Result, error) {
	result := NewResult()
	result.Entities = state.Len()
	result.DeleteEnabled = r.delete
	result.CreateEnabled = r.create
	defer result.Finalize()

	if !r.delete && !r.create {
		r.logger.Warn().Msg("Both delete and create passes are disabled; nothing to apply")
		return result, nil
	}

	if r.delete {
		if err := r.deletePass(ctx, state, result); err != nil {
			result.Interrupted = true
			return result, err
		}
	}
	if r.create {
		if err := r.createPass(ctx, state, result); err != nil {
			result.Interrupted = true
			return result, err
		}
	}

	r.logger.Info().
		Int("entities", result.Entities).
		Int("deletes_succeeded", result.Deletes.Succeeded).
		Int("deletes_not_found", result.Deletes.NotFound).
		Int("deletes_failed", result.Deletes.Failed).
		Int("creates_succeeded", result.Creates.Succeeded).
		Int("creates_failed", result.Creates.Failed).
		Int("creates_skipped", result.Creates.Skipped).
		Int("creates_unmatched", result.Creates.Unmatched).
		Msg("Reconciliation finished")
	return result, nil
}

func (r *reconciler) deletePass(ctx context.Context, state *tagging.DesiredState, result *Result) error {
	logger := r.logger.With().Str("phase", string(PhaseDelete)).Logger()
	logger.Info().Int("entities", state.Len()).Msg("Starting delete pass")

	for _, e := range state.Entries {
		for _, key := range e.ManagedKeys() {
			if err := ctx.Err(); err != nil {
				return errors.Join(errors.ErrCanceled, err)
			}

			out, err := r.client.Delete(ctx, e.Selector, key)
			switch {
			case errors.Is(err, errors.ErrCanceled):
				return err
			case err != nil:
				result.Deletes.Failed++
				result.addFailure(PhaseDelete, e, key, err)
				logger.Error().Err(err).
					Int("row", e.Row).
					Str("selector", e.Selector.String()).
					Str("key", key).
					Msg("Failed to delete tag")
			case out.Status == tagapi.NotFound:
				result.Deletes.NotFound++
				logger.Debug().
					Str("selector", e.Selector.String()).
					Str("key", key).
					Msg("Tag not present")
			default:
				result.Deletes.Succeeded++
				logger.Debug().
					Str("selector", e.Selector.String()).
					Str("key", key).
					Int("matched", out.MatchedEntities).
					Msg("Deleted tag")
			}
		}
	}
	return nil
}

func (r *reconciler) createPass(ctx context.Context, state *tagging.DesiredState, result *Result) error {
	logger := r.logger.With().Str("phase", string(PhaseCreate)).Logger()
	logger.Info().Int("entities", state.Len()).Msg("Starting create pass")

	for _, e := range state.Entries {
		if err := ctx.Err(); err != nil {
			return errors.Join(errors.ErrCanceled, err)
		}
		if len(e.Tags) == 0 {
			result.Creates.Skipped++
			logger.Info().
				Int("row", e.Row).
				Str("selector", e.Selector.String()).
				Msg("Skipping entity without tags")
			continue
		}

		res, err := r.client.Create(ctx, e.Selector, e.Tags)
		switch {
		case errors.Is(err, errors.ErrCanceled):
			return err
		case err != nil:
			result.Creates.Failed++
			result.addFailure(PhaseCreate, e, "", err)
			logger.Error().Err(err).
				Int("row", e.Row).
				Str("selector", e.Selector.String()).
				Str("tags", tagging.FormatTags(e.Tags)).
				Msg("Failed to create tags")
		case res.MatchedEntities == 0:
			result.Creates.Succeeded++
			result.Creates.Unmatched++
			logger.Warn().
				Int("row", e.Row).
				Str("selector", e.Selector.String()).
				Msg("Selector matched no entities")
		default:
			result.Creates.Succeeded++
			logger.Info().
				Str("selector", e.Selector.String()).
				Int("matched", res.MatchedEntities).
				Str("tags", tagging.FormatTags(e.Tags)).
				Msg("Created tags")
		}
	}
	return nil
}
