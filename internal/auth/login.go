package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/heart0018/OriginalProduct/internal/domain/users"
)

type userFinder interface {
	FindOrCreateByGoogleID(ctx context.Context, googleID, region string) (*users.User, bool, error)
}

// LoginService turns an identity token into a user record.
type LoginService struct {
	verifier IDTokenVerifier
	users    userFinder
}

func NewLoginService(verifier IDTokenVerifier, users userFinder) *LoginService {
	return &LoginService{verifier: verifier, users: users}
}

// Login verifies token and returns the matching user, creating it on first
// sign-in with users.DefaultRegion. The boolean reports a first sign-in.
//
// Errors:
//   - ErrMissingToken: token is blank
//   - ErrVerification (wrapped): token rejected
//   - ErrMisconfigured: no client id configured
//   - anything else: unexpected
func (s *LoginService) Login(ctx context.Context, token string) (*users.User, bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, false, ErrMissingToken
	}

	id, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, false, err
	}
	if id == nil || id.Subject == "" {
		return nil, false, fmt.Errorf("%w: token has no subject", ErrVerification)
	}

	u, created, err := s.users.FindOrCreateByGoogleID(ctx, id.Subject, users.DefaultRegion)
	if err != nil {
		return nil, false, fmt.Errorf("find or create user: %w", err)
	}
	return u, created, nil
}
