// Package tagsync synchronizes entity tags on an observability platform
// with a host inventory table.
//
// A run reads the table, builds the desired tag state of every entity it
// names, and applies that state through the platform's tagging API: an
// optional delete pass that clears every managed key, then a create pass
// that writes the current values.
//
//	cfg := tagsync.DefaultConfig()
//	cfg.URL = "https://abc123.live.dynatrace.com"
//	cfg.Token = os.Getenv("DT_API_TOKEN")
//	cfg.CSVFile = "hosts.csv"
//	cfg.Mapping = []tagging.MappingEntry{{Tag: "env", Column: "Env"}}
//
//	report, err := tagsync.Run(ctx, cfg)
package tagsync

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/tagsync/internal/table"
	"github.com/agentstation/tagsync/internal/tagapi"
	"github.com/agentstation/tagsync/internal/transport"
	"github.com/agentstation/tagsync/pkg/constants"
	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/logging"
	"github.com/agentstation/tagsync/pkg/reconciler"
	"github.com/agentstation/tagsync/pkg/tagging"
)

// Run builds the desired state from the configured table and applies it.
// Individual call failures are reported in the Report, not as an error;
// the error is non-nil only for configuration or input problems and for
// cancellation, in which case the partial Report is still returned.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx, o, err := prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)
	logger.Info().Object("config", cfg).Msg("Starting tag sync")

	report, err := build(ctx, cfg, o.runID)
	if err != nil {
		return nil, err
	}

	client, err := tagClient(cfg, o, logger)
	if err != nil {
		return report, err
	}
	rec, err := reconciler.New(client,
		reconciler.WithLogger(logger),
		reconciler.WithDelete(cfg.DeleteTags),
		reconciler.WithCreate(cfg.CreateTags),
	)
	if err != nil {
		return report, err
	}

	report.Reconcile, err = rec.Apply(ctx, report.Build.State)
	summary := report.Summary()
	if err != nil {
		logger.Warn().Err(err).Str("summary", summary.String()).Msg("Tag sync interrupted")
		return report, err
	}
	logger.Info().Str("summary", summary.String()).Msg("Done")
	return report, nil
}

// Plan builds the desired state without calling the platform.
func Plan(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	if err := cfg.ValidateForPlan(); err != nil {
		return nil, err
	}
	ctx, o, err := prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)
	logger.Info().Object("config", cfg).Msg("Planning tag sync")

	report, err := build(ctx, cfg, o.runID)
	if err != nil {
		return nil, err
	}
	report.DryRun = true
	logger.Info().Str("summary", report.Summary().String()).Msg("Plan complete")
	return report, nil
}

// prepare applies options and scopes the logger to a new run id.
func prepare(ctx context.Context, opts []Option) (context.Context, *runOptions, error) {
	o := &runOptions{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return ctx, nil, err
		}
	}
	// Without WithLogger a run is silent; it never writes to the process default.
	if o.logger == nil {
		nop := zerolog.Nop()
		o.logger = &nop
	}
	ctx = logging.WithLogger(ctx, o.logger)
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	return logging.WithRunID(ctx, o.runID), o, nil
}

// build loads the table and computes the desired state.
func build(ctx context.Context, cfg Config, runID string) (*Report, error) {
	logger := logging.FromContext(logging.WithPhase(ctx, "build"))

	mapping, err := tagging.NewColumnMapping(cfg.Mapping)
	if err != nil {
		return nil, errors.NewConfigError("mapping", "is invalid", err)
	}

	tbl, err := table.Load(cfg.CSVFile, cfg.DelimiterRune())
	if err != nil {
		return nil, err
	}
	logger.Info().Str("file", tbl.Source).Int("rows", len(tbl.Records)).Strs("columns", tbl.Header).Msg("Loaded input table")
	for _, col := range mapping.MissingColumns(tbl.Header) {
		logger.Warn().Str("column", col).Msg("Mapped column not found in input header")
	}

	validator := tagging.NewValidator(cfg.IdentityColumn, cfg.EmptyValues)
	if !slices.Contains(tbl.Header, validator.IdentityColumn()) {
		logger.Warn().Str("column", validator.IdentityColumn()).Msg("Identity column not found in input header")
	}
	mapper := tagging.NewMapper(mapping, validator,
		tagging.WithTagPrefix(cfg.TagPrefix),
		tagging.WithEntityType(cfg.EntityType),
	)
	for _, e := range mapping.Entries() {
		logger.Info().Str("tag", mapper.Key(e.Tag)).Str("column", e.Column).Msg("Column mapping")
	}

	result := tagging.NewBuilder(validator, mapper, logger).Build(tbl.Records)
	return &Report{
		RunID:  runID,
		Source: tbl.Source,
		Build:  result,
	}, nil
}

// tagClient returns the injected client or the HTTP client for cfg.
func tagClient(cfg Config, o *runOptions, logger *zerolog.Logger) (reconciler.TagClient, error) {
	if o.client != nil {
		return o.client, nil
	}
	hc := transport.New(
		transport.AuthenticatorFor(cfg.AuthScheme),
		cfg.Token,
		transport.WithHTTPClient(o.httpClient),
		transport.WithTimeout(cfg.Timeout),
		transport.WithRateLimit(cfg.RateLimit, constants.DefaultRateBurst),
		transport.WithLogger(logger),
	)
	client, err := tagapi.New(cfg.URL, hc)
	if err != nil {
		return nil, errors.NewConfigError("url", "is not a valid environment URL", err)
	}
	logger.Debug().Str("endpoint", client.Endpoint()).Msg("Using tagging endpoint")
	return client, nil
}
