package domain

import "math"

const earthRadiusKm = 6371.0

// Immutable geographic coordinates in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether both values are finite and within degree range.
func (c Coordinates) Valid() bool {
	return !math.IsNaN(c.Lat) && !math.IsNaN(c.Lon) &&
		c.Lat >= -90 && c.Lat <= 90 &&
		c.Lon >= -180 && c.Lon <= 180
}

// DistanceKm returns the great-circle distance to other in kilometers.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	return DistanceKm(c.Lat, c.Lon, other.Lat, other.Lon)
}

// DistanceKm computes the haversine distance between two points given in degrees.
//
// The result is symmetric and zero for identical points. Behavior for
// out-of-range input (latitude beyond ±90, non-finite values) is undefined;
// callers validate coordinates at the boundary.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
