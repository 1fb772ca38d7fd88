// Package application provides the application interface for marksync commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            dst, err := app.Destination("")
//	            if err != nil {
//	                return err
//	            }
//	            // ... build a marksync.Client around dst
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	store := memstore.New()
//	mock := &application.Mock{
//	    DestinationFunc: func(string) (marksync.Destination, error) {
//	        return store, nil
//	    },
//	}
//	cmd := NewCommand(mock)
//	// ... run the command, then inspect store
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/marksync"
)

// Application provides the application interface that commands need.
// The App struct from cmd/marksync/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Source returns the bookmark source. A non-empty path reads a Pinboard
	// JSON export; an empty path fetches posts from the Pinboard API using
	// token, or the configured PINBOARD_TOKEN when token is empty.
	Source(path, token string) (marksync.Source, error)

	// Destination returns the Raindrop client. An empty token falls back to
	// the configured RAINDROP_TOKEN.
	Destination(token string) (marksync.Destination, error)

	// Lock takes the single-run lock for commands that write to the
	// destination. Callers must Release it.
	Lock() (Releaser, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
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

// Releaser releases a held lock.
type Releaser interface {
	Release() error
}
