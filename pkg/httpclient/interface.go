package httpclient

import (
	"context"
	"io"
)

// Client wraps outbound calls to the Video Unpack API. Every request issued
// through a Client carries the stored bearer token when one is present;
// unauthenticated calls simply go out without the header.
type Client interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error

	// PostMultipart issues a multipart/form-data POST with a single file
	// part under the given field name.
	PostMultipart(ctx context.Context, path, field, filename, contentType string, r io.Reader, out interface{}) error

	// Download returns the response body verbatim, never JSON-decoded.
	Download(ctx context.Context, path string) ([]byte, error)

	// SetAuthToken persists the token and attaches it to requests issued
	// after the call. In-flight requests are unaffected.
	SetAuthToken(token string) error
	// RemoveAuthToken clears the persisted token and stops attaching it.
	RemoveAuthToken() error
}
