// Package geo computes great-circle distances between coordinates.
package geo

import "math"

// WGS84 equatorial radius in meters.
const earthRadius = 6378137.0

// Point is a coordinate in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// FromLonLat converts a GeoJSON-style [longitude, latitude] pair into a
// Point. It reports false when the pair is malformed.
func FromLonLat(coordinates []float64) (Point, bool) {
	if len(coordinates) < 2 {
		return Point{}, false
	}
	return Point{Latitude: coordinates[1], Longitude: coordinates[0]}, true
}

// Distance returns the haversine great-circle distance between two points,
// rounded to the nearest meter.
func Distance(from, to Point) float64 {
	lat1 := radians(from.Latitude)
	lat2 := radians(to.Latitude)
	dLat := radians(to.Latitude - from.Latitude)
	dLon := radians(to.Longitude - from.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadius * c)
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
