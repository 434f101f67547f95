package session

import (
	"context"

	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/model"
)

// State is the session lifecycle position. A Manager starts in StateUnknown
// and settles into Authenticated or Anonymous exactly once, at construction,
// by consulting the token store.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Identity is the displayable user derived from token claims.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// Manager owns the client-side session lifecycle: token acquisition through
// sign-in/sign-up, identity derivation from claims, and teardown.
type Manager interface {
	State() State
	// Current returns the signed-in identity; ok is false when anonymous.
	Current() (identity Identity, ok bool)

	SignIn(ctx context.Context, creds model.SignInRequest) (model.AuthResponse, error)
	SignUp(ctx context.Context, req model.SignUpRequest) (model.AuthResponse, error)
	// SignOut clears the stored token and always succeeds locally.
	SignOut() error
}
