package geo

import "math"

const earthRadiusKm = 6371

// Haversine calculates the great-circle distance between two points in kilometers.
// Coordinates are in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceKm is Haversine rounded to the nearest kilometer.
func DistanceKm(lat1, lon1, lat2, lon2 float64) int {
	return int(math.Round(Haversine(lat1, lon1, lat2, lon2)))
}
