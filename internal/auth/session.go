package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrSessionDisabled means sessions cannot be issued or read, e.g. no
	// SESSION_SECRET is configured. Sign-in still succeeds without a cookie.
	ErrSessionDisabled = errors.New("session storage is disabled")
	ErrInvalidSession  = errors.New("invalid session")
	ErrSessionNotFound = errors.New("session not found")
)

// Session is one signed-in browser.
type Session struct {
	ID        string
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionStore keeps server-side session records so a session can be revoked
// before its token expires.
type SessionStore interface {
	Save(ctx context.Context, s Session) error
	Lookup(ctx context.Context, id string) (userID int64, err error)
	Delete(ctx context.Context, id string) error
}

// SessionManager issues and validates opaque session tokens. Tokens are HS256
// JWTs carrying the user id; they expire after ttl and are renewed once less
// than half of it remains.
type SessionManager struct {
	secret []byte
	iss    string
	ttl    time.Duration
	store  SessionStore // optional
	now    func() time.Time
}

func NewSessionManager(secret, iss string, ttl time.Duration, store SessionStore) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		iss:    iss,
		ttl:    ttl,
		store:  store,
		now:    time.Now,
	}
}

func (m *SessionManager) TTL() time.Duration { return m.ttl }

func (m *SessionManager) enabled() bool {
	return m != nil && len(m.secret) > 0 && m.ttl > 0
}

// Issue creates a session for userID and returns its token.
func (m *SessionManager) Issue(ctx context.Context, userID int64) (string, *Session, error) {
	if !m.enabled() {
		return "", nil, ErrSessionDisabled
	}

	now := m.now().Truncate(time.Second)
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        s.ID,
		Issuer:    m.iss,
		IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
		NotBefore: jwt.NewNumericDate(s.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}

	if m.store != nil {
		if err := m.store.Save(ctx, *s); err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrSessionDisabled, err)
		}
	}

	return token, s, nil
}

// Validate checks the token signature and expiry and, when a store is
// configured, that the session has not been revoked.
func (m *SessionManager) Validate(ctx context.Context, token string) (*Session, error) {
	if !m.enabled() {
		return nil, ErrSessionDisabled
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(m.iss),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: malformed claims", ErrInvalidSession)
	}

	s := &Session{
		ID:        claims.ID,
		UserID:    userID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	if m.store != nil {
		stored, err := m.store.Lookup(ctx, s.ID)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				return nil, fmt.Errorf("%w: revoked", ErrInvalidSession)
			}
			return nil, err
		}
		if stored != s.UserID {
			return nil, fmt.Errorf("%w: user mismatch", ErrInvalidSession)
		}
	}

	return s, nil
}

// NeedsRenewal reports whether less than half of the session's lifetime is
// left.
func (m *SessionManager) NeedsRenewal(s *Session) bool {
	return s.ExpiresAt.Sub(m.now()) < m.ttl/2
}

// Revoke ends s server-side. Without a store this is a no-op; clearing the
// cookie is then the only way out.
func (m *SessionManager) Revoke(ctx context.Context, s *Session) error {
	if m.store == nil || s == nil {
		return nil
	}
	return m.store.Delete(ctx, s.ID)
}
