package cards

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/heart0018/OriginalProduct/internal/geo"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("card not found")
	ErrDuplicatePlaceID  = errors.New("a card with that place_id already exists")
	QueryTimeoutDuration = time.Second * 5
)

// ReviewPreviewLimit is how many review comments travel with a card.
const ReviewPreviewLimit = 5

var validate = validator.New(validator.WithRequiredStructEnabled())

// Card is a recommendable place shown in the swipe deck.
type Card struct {
	ID           int64               `json:"id"`
	Genre        *string             `json:"genre" validate:"omitempty,max=32"`
	Title        string              `json:"title" validate:"required,max=128"`
	Rating       float64             `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount  int                 `json:"review_count" validate:"gte=0"`
	ImageURL     *string             `json:"image_url" validate:"omitempty,max=1000"`
	ExternalLink *string             `json:"external_link" validate:"omitempty,max=256"`
	Region       *string             `json:"region" validate:"omitempty,max=16"`
	Address      *string             `json:"address" validate:"omitempty,max=128"`
	PlaceID      *string             `json:"place_id" validate:"omitempty,max=128"`
	Latitude     decimal.NullDecimal `json:"latitude"`
	Longitude    decimal.NullDecimal `json:"longitude"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`

	// Loaded together with the card, at most ReviewPreviewLimit entries.
	ReviewComments []ReviewComment `json:"review_comments"`
}

type ReviewComment struct {
	ID      int64  `json:"id"`
	Comment string `json:"comment"`
}

// Point returns the card's coordinates, or nil when either is unknown.
func (c *Card) Point() *geo.Point {
	if !c.Latitude.Valid || !c.Longitude.Valid {
		return nil
	}
	return &geo.Point{
		Lat: c.Latitude.Decimal.InexactFloat64(),
		Lng: c.Longitude.Decimal.InexactFloat64(),
	}
}

var (
	minLat = decimal.NewFromInt(-90)
	maxLat = decimal.NewFromInt(90)
	minLng = decimal.NewFromInt(-180)
	maxLng = decimal.NewFromInt(180)
)

// Validate normalizes blank optional strings to NULL and checks the column
// constraints. A blank place_id must not take part in the unique index.
func (c *Card) Validate() error {
	c.Genre = nullIfBlank(c.Genre)
	c.ImageURL = nullIfBlank(c.ImageURL)
	c.ExternalLink = nullIfBlank(c.ExternalLink)
	c.Region = nullIfBlank(c.Region)
	c.Address = nullIfBlank(c.Address)
	c.PlaceID = nullIfBlank(c.PlaceID)
	c.Title = strings.TrimSpace(c.Title)

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid card: %w", err)
	}

	if c.Latitude.Valid && (c.Latitude.Decimal.LessThan(minLat) || c.Latitude.Decimal.GreaterThan(maxLat)) {
		return fmt.Errorf("invalid card: latitude %s out of range", c.Latitude.Decimal)
	}
	if c.Longitude.Valid && (c.Longitude.Decimal.LessThan(minLng) || c.Longitude.Decimal.GreaterThan(maxLng)) {
		return fmt.Errorf("invalid card: longitude %s out of range", c.Longitude.Decimal)
	}
	return nil
}

func nullIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// ListFilter describes one page of the card deck.
type ListFilter struct {
	Regions      []string // empty: all regions
	SortByRegion bool
	RegionOrder  []string
	Limit        int
	Offset       int
}

// RegionCount is one row of the per-region distribution.
type RegionCount struct {
	Region *string
	Count  int
}

// AddressRow is the subset of a card needed to recompute its region.
type AddressRow struct {
	ID      int64
	Title   string
	Address *string
	Region  *string
}
