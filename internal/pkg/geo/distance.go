package geo

import "math"

// EarthRadiusMeters is the IUGG mean radius, the same sphere PostGIS uses for
// geography distance when spheroid math is disabled.
const EarthRadiusMeters = 6371008.8

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// DistanceMeters returns the great-circle distance between a and b.
func DistanceMeters(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// WithinMeters reports whether a and b are at most limit meters apart.
func WithinMeters(a, b Point, limit float64) bool {
	return DistanceMeters(a, b) <= limit
}

// Valid reports whether p lies inside the lat/lng ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
