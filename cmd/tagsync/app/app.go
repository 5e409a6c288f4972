// Package app provides the application context and dependency management
// for the tagsync CLI: configuration, logging, and the run entry points
// that commands reach through application.Application.
package app

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/tagsync"
	"github.com/agentstation/tagsync/internal/cmd/application"
	"github.com/agentstation/tagsync/internal/config"
	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/logging"
)

// App represents the tagsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// logOut is the opened LOG_OUTPUT; every logger the app builds shares
	// it and Shutdown closes it.
	logOut      io.Writer
	closeLogOut func() error

	// runOpts are passed to every run, after the logger.
	runOpts []tagsync.Option
	// loadOpts are the base options for loading the run configuration.
	loadOpts config.Options

	// out replaces stdout for command output when set.
	out io.Writer
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	app.logOut, app.closeLogOut, err = logging.OpenOutput(app.config.LogOutput)
	if err != nil {
		return nil, errors.WrapIO("open", app.config.LogOutput, err)
	}
	if app.logger == nil {
		logger := NewLogger(app.config, app.logOut)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the CLI configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value. Empty means auto-detect.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// RunConfig loads the run configuration, honoring --config.
func (a *App) RunConfig(overrides config.Overrides) (tagsync.Config, error) {
	opts := a.loadOpts
	if a.config.ConfigFile != "" {
		opts.ConfigFile = a.config.ConfigFile
	}
	opts.Overrides = overrides

	cfg, used, err := config.Load(opts)
	if err != nil {
		return cfg, err
	}
	if used != "" {
		a.logger.Debug().Str("file", used).Msg("Using config file")
	}
	return cfg, nil
}

// Sync runs the full pipeline.
func (a *App) Sync(ctx context.Context, cfg tagsync.Config) (*tagsync.Report, error) {
	return tagsync.Run(ctx, cfg, a.options()...)
}

// Plan builds the desired state without remote calls.
func (a *App) Plan(ctx context.Context, cfg tagsync.Config) (*tagsync.Report, error) {
	return tagsync.Plan(ctx, cfg, a.options()...)
}

func (a *App) options() []tagsync.Option {
	return append([]tagsync.Option{tagsync.WithLogger(a.logger)}, a.runOpts...)
}

// Shutdown performs graceful shutdown of the application. A run holds no
// background resources; only the log output is closed. It is safe to call
// more than once.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	if a.closeLogOut == nil {
		return nil
	}
	closeFn := a.closeLogOut
	a.closeLogOut = nil
	if err := closeFn(); err != nil {
		return errors.WrapIO("close", a.config.LogOutput, err)
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "cannot be nil")
		}
		a.logger = logger
		return nil
	}
}

// WithRunOptions adds options to every run, e.g. a tag client in tests.
func WithRunOptions(opts ...tagsync.Option) Option {
	return func(a *App) error {
		a.runOpts = append(a.runOpts, opts...)
		return nil
	}
}

// WithLoadOptions sets where the run configuration is searched for.
func WithLoadOptions(opts config.Options) Option {
	return func(a *App) error {
		a.loadOpts = opts
		return nil
	}
}

// WithOutput sends command output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
