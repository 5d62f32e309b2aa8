package cards

import (
	"net/url"
	"strings"

	"github.com/heart0018/OriginalProduct/internal/geo"
	"github.com/shopspring/decimal"
)

const mapSearchURL = "https://www.google.com/maps/search/?api=1&query="

// CardResponse is the shape the swipe client consumes.
type CardResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Type        *string             `json:"type"`
	Region      *string             `json:"region"`
	Address     *string             `json:"address"`
	Latitude    decimal.NullDecimal `json:"latitude" swaggertype:"string"`
	Longitude   decimal.NullDecimal `json:"longitude" swaggertype:"string"`
	DistanceKm  *float64            `json:"distance_km"`
	Rating      float64             `json:"rating"`
	ReviewCount int                 `json:"review_count"`
	ImageURL    *string             `json:"image_url"`
	PlaceID     *string             `json:"place_id"`
	MapURL      *string             `json:"map_url"`
	Reviews     []ReviewResponse    `json:"reviews"`
	// Older clients read review_comments; it always equals reviews.
	ReviewComments []ReviewResponse `json:"review_comments"`
}

type ReviewResponse struct {
	ID      int64  `json:"id"`
	Comment string `json:"comment"`
}

// NewCardResponse projects c for the client. loc is the caller's position;
// distance_km is null when loc is nil or the card has no coordinates. Only
// already loaded review comments are used.
func NewCardResponse(c Card, loc *geo.Point) CardResponse {
	reviews := make([]ReviewResponse, 0, ReviewPreviewLimit)
	for i, rc := range c.ReviewComments {
		if i == ReviewPreviewLimit {
			break
		}
		reviews = append(reviews, ReviewResponse{ID: rc.ID, Comment: rc.Comment})
	}

	return CardResponse{
		ID:             c.ID,
		Title:          c.Title,
		Type:           c.Genre,
		Region:         c.Region,
		Address:        c.Address,
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		DistanceKm:     geo.DistanceKmPtr(c.Point(), loc),
		Rating:         c.Rating,
		ReviewCount:    c.ReviewCount,
		ImageURL:       c.ImageURL,
		PlaceID:        c.PlaceID,
		MapURL:         MapURL(c.Title, c.Address),
		Reviews:        reviews,
		ReviewComments: reviews,
	}
}

// NewCardResponses serializes a page in order.
func NewCardResponses(cards []Card, loc *geo.Point) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, NewCardResponse(c, loc))
	}
	return out
}

// MapURL builds a map search link for "title address". Cards without a title
// have no link.
func MapURL(title string, address *string) *string {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	q := title + " "
	if address != nil {
		q += *address
	}
	u := mapSearchURL + encodeQueryComponent(q)
	return &u
}

// encodeQueryComponent percent-encodes everything outside the unreserved set,
// so spaces become %20 rather than "+".
func encodeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
