// Package session manages the client-side authentication lifecycle: it signs
// users in and up against the backend, persists the issued bearer token
// through the request client, and derives the displayed identity from the
// token's claims.
package session

import (
	"context"
	"sync"

	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/model"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/claims"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/httpclient"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/logger"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/tokenstore"
)

const (
	signInPath = "/api/v1/auth/signin"
	signUpPath = "/api/v1/auth/signup"
)

type manager struct {
	client httpclient.Client
	store  tokenstore.Store
	log    logger.Logger

	mu       sync.RWMutex
	state    State
	identity Identity
}

// NewManager builds a Manager and resolves the startup transition
// synchronously: a token already present in the store yields an
// authenticated session with the identity decoded from its claims, an
// absent token yields an anonymous one.
//
// A token whose claims fail to decode still yields an authenticated session
// with a placeholder identity. The backend will reject the token with 401 on
// first use, which tears the session down through the request client. This
// mirrors the original client; forcing anonymous here would be the stricter
// alternative.
func NewManager(client httpclient.Client, store tokenstore.Store, log logger.Logger) Manager {
	m := &manager{
		client: client,
		store:  store,
		log:    log,
		state:  StateUnknown,
	}

	token, err := store.Read()
	if err != nil {
		log.Warn("failed to read token store at startup", "error", err)
	}
	if token == "" {
		m.state = StateAnonymous
		return m
	}

	m.state = StateAuthenticated
	m.identity = identityFromToken(token, Identity{ID: "1", Name: "User", Email: "user@example.com"})
	return m
}

func (m *manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *manager) Current() (Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateAuthenticated {
		return Identity{}, false
	}
	return m.identity, true
}

func (m *manager) SignIn(ctx context.Context, creds model.SignInRequest) (model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := m.client.Post(ctx, signInPath, creds, &resp); err != nil {
		return model.AuthResponse{}, err
	}

	if err := m.client.SetAuthToken(resp.AccessToken); err != nil {
		return model.AuthResponse{}, err
	}

	fallback := Identity{ID: "1", Name: creds.Username, Email: creds.Username + "@example.com"}
	m.become(identityFromToken(resp.AccessToken, fallback))
	return resp, nil
}

func (m *manager) SignUp(ctx context.Context, req model.SignUpRequest) (model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := m.client.Post(ctx, signUpPath, req, &resp); err != nil {
		return model.AuthResponse{}, err
	}

	if err := m.client.SetAuthToken(resp.AccessToken); err != nil {
		return model.AuthResponse{}, err
	}

	fallback := Identity{ID: "1", Name: req.Person.Name, Email: req.Person.Email}
	m.become(identityFromToken(resp.AccessToken, fallback))
	return resp, nil
}

func (m *manager) SignOut() error {
	if err := m.client.RemoveAuthToken(); err != nil {
		m.log.Warn("failed to clear token on sign-out", "error", err)
	}
	m.mu.Lock()
	m.state = StateAnonymous
	m.identity = Identity{}
	m.mu.Unlock()
	return nil
}

func (m *manager) become(id Identity) {
	m.mu.Lock()
	m.state = StateAuthenticated
	m.identity = id
	m.mu.Unlock()
}

// identityFromToken decodes the claims segment and extracts the embedded
// person record. Any decode failure or missing person yields the fallback;
// decode problems are intentionally not surfaced as errors.
func identityFromToken(token string, fallback Identity) Identity {
	c, err := claims.Decode(token)
	if err != nil || c.Person == nil {
		return fallback
	}
	return Identity{
		ID:    c.Person.CustomerID,
		Name:  c.Person.Name,
		Email: c.Person.Email,
	}
}
