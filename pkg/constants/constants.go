// Package constants provides shared constants used throughout tagsync.
// This includes timeouts, pacing defaults, file permissions and the
// defaults of the tagging run configuration.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for requests to the tagging API
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful shutdown after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Pacing constants for calls against the tagging API
const (
	// DefaultRateLimit is the default requests per second; 0 disables pacing
	DefaultRateLimit = 10.0

	// DefaultRateBurst is the token bucket burst size
	DefaultRateBurst = 1
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Run configuration defaults
const (
	// DefaultIdentityColumn is the input column that names the entity
	DefaultIdentityColumn = "Name"

	// DefaultEntityType is the entity type used in selectors
	DefaultEntityType = "host"

	// DefaultTagPrefix marks tags written by tagsync
	DefaultTagPrefix = "[API]"

	// DefaultDelimiter separates cells in the input table
	DefaultDelimiter = ","

	// DefaultAuthScheme is the Authorization header scheme of the tagging API
	DefaultAuthScheme = "Api-Token"

	// TagsAPIPath is the tagging endpoint relative to the environment URL
	TagsAPIPath = "/api/v2/tags"

	// EnvPrefix is the prefix of environment variable overrides
	EnvPrefix = "TAGSYNC"
)

// DefaultEmptyValues are the null-equivalent cell values, compared
// case-insensitively after trimming whitespace.
var DefaultEmptyValues = []string{"nan", "null", "none", "n/a"}
