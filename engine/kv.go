package engine

// =============================================================================
// DURABLE KEY-VALUE STORE
// =============================================================================

// Durable state keys. Values are opaque strings; the user profile is
// stored as JSON. No schema versioning exists: a malformed stored value
// is treated as absent, never as a fatal error.
const (
	KeySessionToken = "session_token"
	KeySessionUser  = "session_user"
	KeyTheme        = "theme"
)

// KV is the process-wide durable key-value store the engine persists
// session and preference state into. Persistence is best effort: the
// engine ignores Set/Delete errors, and absent or corrupt entries
// degrade to defaults at load time.
//
// Implementations:
//   - engine/store: in-memory (testing/dev)
//   - store/sqlite: SQLite-backed
type KV interface {
	// Get returns the stored value for key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
