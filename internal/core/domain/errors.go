package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown connector type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEndOfStream signals normal exhaustion of an entity stream.
	// It is the stream equivalent of io.EOF, not a failure.
	ErrEndOfStream = errors.New("end of stream")

	// Configuration errors.

	// ErrConfigMissingURL indicates the required base/instance URL is
	// missing or empty. Fatal at construction time, never retried.
	ErrConfigMissingURL = errors.New("base URL is required")

	// ErrConfigMissingCredentials indicates no usable credential was
	// provided for a connector that requires one.
	ErrConfigMissingCredentials = errors.New("credentials are required")

	// ErrProjectFilterNoMatch indicates a configured project filter matched
	// zero available projects. Surfaced as a configuration error so a
	// typo'd identifier does not look like "project has no data".
	ErrProjectFilterNoMatch = errors.New("project filter matched no projects")

	// Authentication errors.

	// ErrAuthRequired indicates the connector requires authentication but
	// none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the authentication credentials are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")

	// Connector errors.

	// ErrConnectorValidation indicates connector validation failed.
	// The source is misconfigured or credentials are invalid.
	ErrConnectorValidation = errors.New("connector validation failed")

	// ErrConnectorClosed indicates the connector has been closed.
	ErrConnectorClosed = errors.New("connector closed")

	// ErrRateLimited indicates the API rate limit was exceeded and retries
	// were exhausted.
	ErrRateLimited = errors.New("rate limited")
)
