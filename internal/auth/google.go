package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

var googleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

type payloadValidator interface {
	Validate(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)
}

// GoogleVerifier checks Google-issued ID tokens against a set of accepted
// OAuth client ids. Signature and expiry checks are done by idtoken.
type GoogleVerifier struct {
	audiences []string
	validator payloadValidator
}

// NewGoogleVerifier builds a verifier for the given client ids. An empty list
// is allowed; every Verify call then fails with ErrMisconfigured.
func NewGoogleVerifier(ctx context.Context, audiences []string) (*GoogleVerifier, error) {
	v, err := idtoken.NewValidator(ctx, option.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	if err != nil {
		return nil, fmt.Errorf("idtoken validator: %w", err)
	}
	return &GoogleVerifier{audiences: audiences, validator: v}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if len(g.audiences) == 0 {
		return nil, ErrMisconfigured
	}

	// Audience is checked below against the whole allow-list.
	payload, err := g.validator.Validate(ctx, token, "")
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("fetching google certificates: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	if !slices.Contains(g.audiences, payload.Audience) {
		return nil, fmt.Errorf("%w: token was not issued for this application", ErrVerification)
	}
	if !slices.Contains(googleIssuers, payload.Issuer) {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrVerification, payload.Issuer)
	}
	if payload.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrVerification)
	}

	id := &Identity{Subject: payload.Subject, Audience: payload.Audience}
	if email, ok := payload.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		id.Name = name
	}
	return id, nil
}
