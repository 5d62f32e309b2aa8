// Package auth signs users in with a Google identity token and keeps them
// signed in with a session cookie.
package auth

import (
	"context"
	"errors"
)

var (
	// ErrMissingToken means the client sent no identity token.
	ErrMissingToken = errors.New("id_token is required")
	// ErrVerification wraps every reason an identity token is rejected.
	ErrVerification = errors.New("identity token verification failed")
	// ErrMisconfigured means no audience (client id) is configured.
	ErrMisconfigured = errors.New("google client id is not configured")
)

// Identity is what a verified identity token asserts about its bearer.
type Identity struct {
	Subject  string
	Email    string
	Name     string
	Audience string
}

type IDTokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
