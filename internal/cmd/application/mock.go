package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/tagsync"
	"github.com/agentstation/tagsync/internal/config"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	RunConfigFunc    func(overrides config.Overrides) (tagsync.Config, error)
	SyncFunc         func(ctx context.Context, cfg tagsync.Config) (*tagsync.Report, error)
	PlanFunc         func(ctx context.Context, cfg tagsync.Config) (*tagsync.Report, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// RunConfig returns a config using the mock function or the defaults with
// the overrides applied.
func (m *Mock) RunConfig(overrides config.Overrides) (tagsync.Config, error) {
	if m.RunConfigFunc != nil {
		return m.RunConfigFunc(overrides)
	}
	cfg := tagsync.DefaultConfig()
	overrides.Apply(&cfg)
	return cfg, nil
}

// Sync runs the mock function or returns an empty report.
func (m *Mock) Sync(ctx context.Context, cfg tagsync.Config) (*tagsync.Report, error) {
	if m.SyncFunc != nil {
		return m.SyncFunc(ctx, cfg)
	}
	return &tagsync.Report{}, nil
}

// Plan runs the mock function or returns an empty dry-run report.
func (m *Mock) Plan(ctx context.Context, cfg tagsync.Config) (*tagsync.Report, error) {
	if m.PlanFunc != nil {
		return m.PlanFunc(ctx, cfg)
	}
	return &tagsync.Report{DryRun: true}, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
