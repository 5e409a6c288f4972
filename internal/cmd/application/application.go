// Package application provides the application interface for tagsync commands.
//
// Commands accept the Application interface rather than the concrete App
// type from cmd/tagsync/app, so they can be tested with a Mock:
//
//	mock := &application.Mock{
//	    SyncFunc: func(ctx context.Context, cfg tagsync.Config) (*tagsync.Report, error) {
//	        return testReport, nil
//	    },
//	}
//	cmd := sync.NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/tagsync"
	"github.com/agentstation/tagsync/internal/config"
)

// Application provides what commands need from the running CLI.
type Application interface {
	// RunConfig loads the run configuration from the config file, .env
	// files and environment, with the command's flag overrides applied.
	// The result is not validated.
	RunConfig(overrides config.Overrides) (tagsync.Config, error)

	// Sync builds the desired state and applies it to the platform.
	Sync(ctx context.Context, cfg tagsync.Config) (*tagsync.Report, error)

	// Plan builds the desired state without calling the platform.
	Plan(ctx context.Context, cfg tagsync.Config) (*tagsync.Report, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	// Empty means auto-detect.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
