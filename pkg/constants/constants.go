// Package constants provides shared constants used throughout marksync.
// This includes timeouts, pacing, page sizes, service endpoints and file
// permissions that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for a single request to a bookmarking service
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultPacing is the delay inserted between destination-mutating calls
	DefaultPacing = 200 * time.Millisecond

	// DefaultSuggestPacing is the delay between move calls in suggest apply mode
	DefaultSuggestPacing = 300 * time.Millisecond
)

// Service endpoints
const (
	// PinboardAPIURL is the base URL of the Pinboard v1 API
	PinboardAPIURL = "https://api.pinboard.in/v1"

	// RaindropAPIURL is the base URL of the Raindrop.io REST API
	RaindropAPIURL = "https://api.raindrop.io/rest/v1"

	// PinboardService and RaindropService name the services in errors and logs
	PinboardService = "pinboard"
	RaindropService = "raindrop"
)

// Paging and input defaults
const (
	// DefaultPageSize is the number of items requested per destination listing page
	DefaultPageSize = 50

	// MaxPageSize is the largest page the destination accepts
	MaxPageSize = 50

	// MaxLookupPages bounds the search pages read for one URL lookup. The
	// link search is fuzzy, so the exact record can follow many near hits.
	MaxLookupPages = 20

	// DefaultReadLaterTag is the tag added to records flagged read-later
	DefaultReadLaterTag = "toread"

	// StarredTag marks a Pinboard post as important on the destination
	StarredTag = "starred"

	// DuplicateInSource is the reason recorded for a URL seen earlier in the same source
	DuplicateInSource = "duplicate in source"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like API tokens (rw-------)
	SecureFilePermissions = 0600
)

// File names
const (
	// ConfigFileName is the config file looked up in the home and working directories
	ConfigFileName = ".marksync"

	// LockFileName is the run lock file created in the user cache directory
	LockFileName = "marksync.lock"
)
