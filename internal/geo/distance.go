package geo

import "math"

const earthRadiusKm = 6371.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm returns the great-circle distance between a and b in kilometers,
// rounded to one decimal place.
func DistanceKm(a, b Point) float64 {
	const radPerDeg = math.Pi / 180

	dLat := (a.Lat - b.Lat) * radPerDeg
	dLng := (a.Lng - b.Lng) * radPerDeg

	latA := a.Lat * radPerDeg
	latB := b.Lat * radPerDeg

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(latA)*math.Cos(latB)*math.Pow(math.Sin(dLng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(earthRadiusKm*c*10) / 10
}

// DistanceKmPtr is DistanceKm for optional points. It returns nil when either
// side is unknown.
func DistanceKmPtr(a, b *Point) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := DistanceKm(*a, *b)
	return &d
}
