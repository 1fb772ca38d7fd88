// Package application provides test doubles for the command application
// interface.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/marksync"
	"github.com/agentstation/marksync/cmd/application"
	"github.com/agentstation/marksync/internal/memstore"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/logging"
)

// Mock provides a mock implementation of application.Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
//
// Example Usage:
//
//	store := memstore.New()
//	mock := &application.Mock{
//	    DestinationFunc: func(string) (marksync.Destination, error) {
//	        return store, nil
//	    },
//	    LoggerFunc: func() *zerolog.Logger {
//	        logger := zerolog.Nop()
//	        return &logger
//	    },
//	}
//	cmd := migrate.NewCommand(mock)
//	// ... test command
type Mock struct {
	SourceFunc       func(path, token string) (marksync.Source, error)
	DestinationFunc  func(token string) (marksync.Destination, error)
	LockFunc         func() (application.Releaser, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ application.Application = (*Mock)(nil)

// Source returns a source using the mock function or a configuration error.
func (m *Mock) Source(path, token string) (marksync.Source, error) {
	if m.SourceFunc != nil {
		return m.SourceFunc(path, token)
	}
	return nil, errors.NewConfigError("source", "no source configured", nil)
}

// Destination returns a destination using the mock function or an empty
// in-memory store.
func (m *Mock) Destination(token string) (marksync.Destination, error) {
	if m.DestinationFunc != nil {
		return m.DestinationFunc(token)
	}
	return memstore.New(), nil
}

// Lock returns a lock using the mock function or one that releases nothing.
func (m *Mock) Lock() (application.Releaser, error) {
	if m.LockFunc != nil {
		return m.LockFunc()
	}
	return nopReleaser{}, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
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

// BuiltBy returns builder using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

type nopReleaser struct{}

func (nopReleaser) Release() error { return nil }
