package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/heart0018/OriginalProduct/internal/domain/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	id  *Identity
	err error
}

func (s stubVerifier) Verify(context.Context, string) (*Identity, error) { return s.id, s.err }

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byGID  map[string]*users.User
	err    error
}

func newMemUsers() *memUsers { return &memUsers{byGID: map[string]*users.User{}} }

func (m *memUsers) FindOrCreateByGoogleID(_ context.Context, gid, region string) (*users.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, false, m.err
	}
	if u, ok := m.byGID[gid]; ok {
		return u, false, nil
	}
	m.nextID++
	u := &users.User{ID: m.nextID, GoogleID: gid, Region: region, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	m.byGID[gid] = u
	return u, true, nil
}

func TestLogin_CreatesThenReusesUser(t *testing.T) {
	store := newMemUsers()
	svc := NewLoginService(stubVerifier{id: &Identity{Subject: "abc123"}}, store)

	u, created, err := svc.Login(context.Background(), "token")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "abc123", u.GoogleID)
	assert.Equal(t, users.DefaultRegion, u.Region)

	again, created, err := svc.Login(context.Background(), "token")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
	assert.Len(t, store.byGID, 1)
}

func TestLogin_BlankToken(t *testing.T) {
	svc := NewLoginService(stubVerifier{id: &Identity{Subject: "x"}}, newMemUsers())
	for _, tok := range []string{"", "   "} {
		_, _, err := svc.Login(context.Background(), tok)
		require.ErrorIs(t, err, ErrMissingToken)
	}
}

func TestLogin_PropagatesVerifierErrors(t *testing.T) {
	for _, want := range []error{ErrVerification, ErrMisconfigured} {
		svc := NewLoginService(stubVerifier{err: want}, newMemUsers())
		_, _, err := svc.Login(context.Background(), "token")
		require.ErrorIs(t, err, want)
	}
}

func TestLogin_EmptySubjectRejected(t *testing.T) {
	svc := NewLoginService(stubVerifier{id: &Identity{}}, newMemUsers())
	_, _, err := svc.Login(context.Background(), "token")
	require.ErrorIs(t, err, ErrVerification)
}

func TestLogin_StoreFailureIsUnexpected(t *testing.T) {
	store := newMemUsers()
	store.err = errors.New("connection refused")
	svc := NewLoginService(stubVerifier{id: &Identity{Subject: "abc"}}, store)

	_, _, err := svc.Login(context.Background(), "token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVerification)
	assert.NotErrorIs(t, err, ErrMisconfigured)
}
