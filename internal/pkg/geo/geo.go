package geo

import "math"

const (
	earthRadiusMeters = 6371000
	earthRadiusMiles  = 3959
	feetPerMile       = 5280
)

// haversine returns the central angle between two coordinates in radians.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DistanceMeters returns the great-circle distance between two points in meters.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return earthRadiusMeters * haversine(lat1, lon1, lat2, lon2)
}

// DistanceFeet returns the great-circle distance between two points in feet.
// Geofence radii are stored in feet, so the policy layer compares in feet.
func DistanceFeet(lat1, lon1, lat2, lon2 float64) float64 {
	return earthRadiusMiles * haversine(lat1, lon1, lat2, lon2) * feetPerMile
}
