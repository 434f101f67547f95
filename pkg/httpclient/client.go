// Package httpclient is the request layer of the Video Unpack client.
// It attaches the bearer token from the token store, converts non-2xx
// responses into *APIError values and tears the session down on 401.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/logger"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/tokenstore"
)

// DefaultTimeout bounds a single request so large uploads and downloads
// fail instead of hanging forever.
const DefaultTimeout = 300 * time.Second

// APIError is a rejected backend call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

// Option configures a client at construction time.
type Option func(*client)

// WithTimeout overrides the per-request ceiling.
func WithTimeout(d time.Duration) Option {
	return func(c *client) { c.http.Timeout = d }
}

// WithUnauthorizedHook installs the callback invoked after a 401 has cleared
// the token store. It is the programmatic stand-in for the web client's hard
// navigation to the sign-in view. The hook runs before the call returns its
// error, and runs at most once per offending response.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *client) { c.onUnauthorized = fn }
}

type client struct {
	base           string
	http           *http.Client
	store          tokenstore.Store
	log            logger.Logger
	onUnauthorized func()

	mu    sync.RWMutex
	token string // cached copy of the stored token, "" when unset
}

// New creates a Client rooted at baseURL. The token store is consulted on
// every request, so a token persisted by a previous process is picked up
// without an explicit SetAuthToken.
func New(baseURL string, store tokenstore.Store, log logger.Logger, opts ...Option) Client {
	c := &client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: DefaultTimeout},
		store: store,
		log:   log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) Get(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

func (c *client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

func (c *client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	data, err := c.do(req)
	if err != nil {
		return err
	}
	if out != nil && len(data) > 0 {
		return json.Unmarshal(data, out)
	}
	return nil
}

func (c *client) PostMultipart(ctx context.Context, path, field, filename, contentType string, r io.Reader, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	data, err := c.do(req)
	if err != nil {
		return err
	}
	if out != nil && len(data) > 0 {
		return json.Unmarshal(data, out)
	}
	return nil
}

func (c *client) Download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// do sends the request with the bearer header attached, reads the body and
// maps failures. A 401 clears the token store and fires the unauthorized
// hook before the error is returned, so in-flight callers observe the error
// while the session teardown happens as a side effect.
func (c *client) do(req *http.Request) ([]byte, error) {
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.RemoveAuthToken(); err != nil {
			c.log.Warn("failed to clear token after 401", "error", err)
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(data, resp.Status)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(data, resp.Status)}
	}
	return data, nil
}

// currentToken prefers the in-memory token set through SetAuthToken and
// falls back to the store, which covers tokens left behind by a previous run.
func (c *client) currentToken() string {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		return token
	}
	token, err := c.store.Read()
	if err != nil {
		c.log.Warn("failed to read token store", "error", err)
		return ""
	}
	return token
}

func (c *client) SetAuthToken(token string) error {
	if err := c.store.Save(token); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return nil
}

func (c *client) RemoveAuthToken() error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return c.store.Clear()
}

// errorMessage digs a human-readable message out of a JSON error body.
// Both {"message": …} and {"error": …} shapes occur in the backend and the
// proxy; anything else falls back to the HTTP status line.
func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fallback
}
