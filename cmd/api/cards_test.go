package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/heart0018/OriginalProduct/internal/domain/cards"
	"github.com/heart0018/OriginalProduct/internal/region"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func testCard(id int64, reg string, reviews int) cards.Card {
	c := cards.Card{
		ID:          id,
		Title:       fmt.Sprintf("spot %d", id),
		Rating:      4.2,
		ReviewCount: reviews,
		Region:      strptr(reg),
		Address:     strptr("東京都港区芝公園4-2-8"),
		Latitude:    decimal.NewNullDecimal(decimal.RequireFromString("35.68")),
		Longitude:   decimal.NewNullDecimal(decimal.RequireFromString("139.76")),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	for i := range reviews {
		c.ReviewComments = append(c.ReviewComments, cards.ReviewComment{ID: int64(i + 1), Comment: fmt.Sprintf("review %d", i+1)})
	}
	return c
}

func TestListCards_Defaults(t *testing.T) {
	app := newTestApplication(t)
	for i := range 12 {
		app.cards.cards = append(app.cards.cards, testCard(int64(i+1), region.Kanto, 7))
	}
	mux := app.mount()

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/api/v1/cards", nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []cards.CardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 10)
	assert.Equal(t, 10, app.cards.lastFilter.Limit)
	assert.Equal(t, 0, app.cards.lastFilter.Offset)
	assert.False(t, app.cards.lastFilter.SortByRegion)

	// No lat/lng: distance is measured from the fallback, never null.
	require.NotNil(t, got[0].DistanceKm)
	assert.InDelta(t, 2.8, *got[0].DistanceKm, 0.5)

	assert.Len(t, got[0].Reviews, 5)
	assert.Equal(t, got[0].Reviews, got[0].ReviewComments)
}

func TestListCards_Query(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	target := "/api/v1/cards?limit=50&offset=-3&region=%E9%96%A2%E6%9D%B1,%E8%BF%91%E7%95%BF&sort=region&region_order=%E8%BF%91%E7%95%BF"
	rr := executeRequest(httptest.NewRequest(http.MethodGet, target, nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	f := app.cards.lastFilter
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.Equal(t, []string{region.Kanto, region.Kinki}, f.Regions)
	assert.True(t, f.SortByRegion)
	assert.Equal(t, []string{region.Kinki}, f.RegionOrder)
}

func TestListCards_LimitZero(t *testing.T) {
	app := newTestApplication(t)
	app.cards.cards = []cards.Card{testCard(1, region.Kanto, 0)}
	mux := app.mount()

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/api/v1/cards?limit=0", nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListCards_CallerLocation(t *testing.T) {
	app := newTestApplication(t)
	app.cards.cards = []cards.Card{testCard(1, region.Kanto, 0)}
	mux := app.mount()

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/api/v1/cards?lat=35.68&lng=139.76", nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []cards.CardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.NotNil(t, got[0].DistanceKm)
	assert.Equal(t, 0.0, *got[0].DistanceKm)
}

func TestListCards_StoreError(t *testing.T) {
	app := newTestApplication(t)
	app.cards.err = errors.New("pool closed")
	mux := app.mount()

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/api/v1/cards", nil), mux)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "pool closed")
}

func TestGetCard(t *testing.T) {
	app := newTestApplication(t)
	app.cards.cards = []cards.Card{testCard(3, region.Kinki, 7)}
	mux := app.mount()

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/api/v1/cards/3", nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	var got cards.CardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.ID)
	assert.Len(t, got.Reviews, 5)
	require.NotNil(t, got.MapURL)
	assert.Contains(t, *got.MapURL, "https://www.google.com/maps/search/?api=1&query=")
	assert.NotNil(t, got.DistanceKm)
}

func TestGetCard_NotFound(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	for _, path := range []string{"/api/v1/cards/99", "/api/v1/cards/abc", "/api/v1/cards/0"} {
		rr := executeRequest(httptest.NewRequest(http.MethodGet, path, nil), mux)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}
