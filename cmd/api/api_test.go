package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/heart0018/OriginalProduct/internal/auth"
	"github.com/heart0018/OriginalProduct/internal/domain/cards"
	"github.com/heart0018/OriginalProduct/internal/domain/storage"
	"github.com/heart0018/OriginalProduct/internal/domain/users"
	"github.com/heart0018/OriginalProduct/internal/ratelimiter"
	"go.uber.org/zap"
)

type fakeVerifier struct {
	id  *auth.Identity
	err error
}

func (f *fakeVerifier) Verify(context.Context, string) (*auth.Identity, error) {
	return f.id, f.err
}

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*users.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{rows: map[int64]*users.User{}} }

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByGoogleID(_ context.Context, gid string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.GoogleID == gid {
			return u, nil
		}
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) FindOrCreateByGoogleID(ctx context.Context, gid, region string) (*users.User, bool, error) {
	if u, err := f.GetByGoogleID(ctx, gid); err == nil {
		return u, false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now()
	u := &users.User{ID: f.nextID, GoogleID: gid, Region: region, CreatedAt: now, UpdatedAt: now}
	f.rows[u.ID] = u
	return u, true, nil
}

type fakeCards struct {
	cards      []cards.Card
	lastFilter cards.ListFilter
	err        error
}

func (f *fakeCards) List(_ context.Context, filter cards.ListFilter) ([]cards.Card, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	if filter.Limit == 0 {
		return []cards.Card{}, nil
	}
	end := min(filter.Offset+filter.Limit, len(f.cards))
	if filter.Offset >= end {
		return []cards.Card{}, nil
	}
	return f.cards[filter.Offset:end], nil
}

func (f *fakeCards) GetByID(_ context.Context, id int64) (*cards.Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.cards {
		if f.cards[i].ID == id {
			return &f.cards[i], nil
		}
	}
	return nil, cards.ErrNotFound
}

func (f *fakeCards) Create(context.Context, *cards.Card) error { return errors.New("not implemented") }

func (f *fakeCards) AddReviewComments(context.Context, int64, []string) error {
	return errors.New("not implemented")
}

func (f *fakeCards) ListAddresses(context.Context) ([]cards.AddressRow, error) { return nil, nil }

func (f *fakeCards) UpdateRegion(context.Context, int64, string) error { return nil }

func (f *fakeCards) CountByRegion(context.Context) ([]cards.RegionCount, error) { return nil, nil }

type testApp struct {
	*application
	verifier *fakeVerifier
	users    *fakeUsers
	cards    *fakeCards
}

func newTestApplication(t *testing.T) *testApp {
	t.Helper()

	v := &fakeVerifier{id: &auth.Identity{Subject: "abc123"}}
	u := newFakeUsers()
	c := &fakeCards{}

	cfg := config{
		env: "development",
		auth: authConfig{
			basic: basicConfig{user: "admin", pass: "secret"},
		},
		session: sessionConfig{secret: "test-secret", ttl: 14 * 24 * time.Hour, iss: "swipe_app"},
		cors:    corsConfig{allowedOrigins: []string{"http://localhost:5173"}},
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: 100,
			TimeFrame:            time.Minute,
		},
		fallback: defaultLocation,
	}

	app := &application{
		config:      cfg,
		logger:      zap.NewNop().Sugar(),
		store:       &storage.Container{Cards: c, Users: u},
		login:       auth.NewLoginService(v, u),
		sessions:    auth.NewSessionManager(cfg.session.secret, cfg.session.iss, cfg.session.ttl, nil),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame),
	}

	return &testApp{application: app, verifier: v, users: u, cards: c}
}

func executeRequest(req *http.Request, mux http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookieFrom(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}
