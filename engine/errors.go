/*
errors.go - Error taxonomy for remote operations

CATEGORIES:
  1. Network failure  - no response received (transport-level, timeouts)
  2. Authorization    - 401 responses, escalated to session invalidation
  3. Remote failure   - structured error body from a 4xx/5xx response
  4. Malformed data   - undecodable token or unparsable persisted value;
                        treated as "absent", never raised

Categories 1 and 3 are captured per-slice as a human-readable error
string and never escalate further. Category 2 additionally clears the
session (see session.go). Category 4 never produces an error at all.

SEE ALSO:
  - lifecycle.go: records rejected transitions using this taxonomy
  - remote/client.go: produces these errors from HTTP responses
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNetwork is wrapped into transport-level failures where no
	// response was received, including timeouts.
	ErrNetwork = errors.New("network failure")

	// ErrUnauthorized marks an authorization failure (401). RemoteError
	// unwraps to it for 401 statuses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoToken is returned when an operation needs a held token and
	// none is present (e.g. refreshing without a session).
	ErrNoToken = errors.New("no session token held")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// RemoteError is a structured error body from the remote collaborator.
// Message is preferred over kind-specific defaults when recording a
// rejected transition.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("remote error %d", e.Status)
}

func (e *RemoteError) Unwrap() error {
	if e.Status == 401 {
		return ErrUnauthorized
	}
	return nil
}

// =============================================================================
// CLASSIFICATION HELPERS
// =============================================================================

// IsAuthFailure reports whether err is an authorization failure.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNetworkFailure reports whether err is a transport-level failure.
func IsNetworkFailure(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsRemoteFailure reports whether err carries a structured error body
// from the remote collaborator (any 4xx/5xx response).
func IsRemoteFailure(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// remoteMessage extracts the structured message from err, or "" when the
// error carries none (network failures, plain errors).
func remoteMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
