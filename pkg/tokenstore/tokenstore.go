package tokenstore

// Store persists the bearer token across process restarts. It is the Go
// counterpart of the browser's localStorage entry under the "authToken" key:
// one opaque value, no expiry metadata. Validity of a stored token is only
// discovered when the backend rejects it.
type Store interface {
	// Save replaces the stored token.
	Save(token string) error
	// Read returns the stored token, or "" when none is present.
	// Absence is not an error.
	Read() (string, error)
	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear() error
}
