// Package app provides the application context and dependency management
// for the marksync CLI. It centralizes configuration, logging and the
// construction of service clients so commands only see the
// application.Application interface.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/marksync"
	"github.com/agentstation/marksync/cmd/application"
	"github.com/agentstation/marksync/internal/runlock"
	"github.com/agentstation/marksync/internal/sources/pinboard"
	"github.com/agentstation/marksync/internal/sources/raindrop"
	"github.com/agentstation/marksync/pkg/errors"
)

// App represents the marksync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger and the log file behind it, if any
	mu        sync.RWMutex
	logger    *zerolog.Logger
	logCloser io.Closer
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("config", "cannot load configuration", err)
	}
	app.config = config

	logger, closer := NewLogger(config)
	app.logger = &logger
	app.logCloser = closer

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
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

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.logger
}

// OutputFormat returns the output format chosen by flag, env or config.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Source returns a Pinboard export file source, or the live API source
// when path is empty.
func (a *App) Source(path, token string) (marksync.Source, error) {
	if path != "" {
		return pinboard.NewFileSource(path), nil
	}
	if token == "" {
		token = a.config.PinboardToken
	}
	src, err := pinboard.NewAPISource(token,
		pinboard.WithBaseURL(a.config.PinboardURL),
		pinboard.WithTimeout(a.config.Timeout),
		pinboard.WithUserAgent(a.userAgent()),
	)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// Destination returns a Raindrop client.
func (a *App) Destination(token string) (marksync.Destination, error) {
	if token == "" {
		token = a.config.RaindropToken
	}
	client, err := raindrop.New(token,
		raindrop.WithBaseURL(a.config.RaindropURL),
		raindrop.WithTimeout(a.config.Timeout),
		raindrop.WithUserAgent(a.userAgent()),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Lock takes the run lock at the configured path, or the default one.
func (a *App) Lock() (application.Releaser, error) {
	path := a.config.LockFile
	if path == "" {
		path = runlock.DefaultPath()
	}
	lock, err := runlock.Acquire(path)
	if err != nil {
		return nil, err
	}
	a.Logger().Debug().Str("path", lock.Path()).Msg("Acquired run lock")
	return lock, nil
}

// Shutdown releases resources held by the application. It closes the log
// file, if one is open.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}

// resetLogger replaces the logger after flags are parsed.
func (a *App) resetLogger() {
	logger, closer := NewLogger(a.config)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
	a.logger = &logger
	a.logCloser = closer
}

// userAgent identifies this build to the bookmark services.
func (a *App) userAgent() string {
	return "marksync/" + a.version
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration and rebuilds the logger from it.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewConfigError("app", "config must not be nil", nil)
		}
		a.config = config
		a.resetLogger()
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
