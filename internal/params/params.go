package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/heart0018/OriginalProduct/internal/geo"
	"github.com/heart0018/OriginalProduct/internal/region"
)

const (
	DefaultLimit = 10
	MaxLimit     = 10
)

// URL: /api/v1/cards?limit=5&offset=10&region=関東,近畿&sort=region&lat=35.6&lng=139.7
// → ParseCardQuery() → CardQuery{Limit:5, Offset:10, Regions:[関東 近畿], SortByRegion:true, ...}
// → SQL: WHERE region = ANY($1) ORDER BY CASE ... END, id LIMIT 5 OFFSET 10
// → each card serialized with distance from Location
type CardQuery struct {
	Limit        int
	Offset       int
	Regions      []string     // empty means no filter
	SortByRegion bool         // sort=region
	RegionOrder  region.Order // only used when SortByRegion
	Location     geo.Point    // caller location, or the fallback
	Located      bool         // true when Location came from the caller
}

// ParseCardQuery parses the card listing query string. It never fails:
// unusable values fall back to their defaults. Keys are case sensitive.
func ParseCardQuery(q url.Values, fallback geo.Point) CardQuery {
	c := CardQuery{
		Limit:       DefaultLimit,
		RegionOrder: region.DefaultOrder,
		Location:    fallback,
	}

	// --- limit, clamped to [0, MaxLimit] ---
	if limit, ok := parseInt(q.Get("limit")); ok {
		switch {
		case limit < 0:
			c.Limit = 0
		case limit > MaxLimit:
			c.Limit = MaxLimit
		default:
			c.Limit = limit
		}
	}

	// --- offset, never negative ---
	if offset, ok := parseInt(q.Get("offset")); ok && offset > 0 {
		c.Offset = offset
	}

	// --- region filter and ordering ---
	c.Regions = region.ParseList(q.Get("region"))

	if strings.TrimSpace(q.Get("sort")) == "region" {
		c.SortByRegion = true
		if order := region.ParseList(q.Get("region_order")); len(order) > 0 {
			c.RegionOrder = order
		}
	}

	// --- caller location ---
	if p, ok := ParseLocation(q); ok {
		c.Location = p
		c.Located = true
	}

	return c
}

// ParseLocation reads lat/lng. Both must be present, numeric and in range.
func ParseLocation(q url.Values) (geo.Point, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(q.Get("lat")), 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return geo.Point{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(q.Get("lng")), 64)
	if err != nil || math.IsNaN(lng) || lng < -180 || lng > 180 {
		return geo.Point{}, false
	}
	return geo.Point{Lat: lat, Lng: lng}, true
}

func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
