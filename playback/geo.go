package playback

import "math"

const earthRadiusMeters = 6371000

// haversineMeters calculates the great-circle distance between two points
// using the haversine formula.
func haversineMeters(from, to Position) float64 {
	lat1Rad := from.Lat * math.Pi / 180
	lat2Rad := to.Lat * math.Pi / 180
	deltaLat := (to.Lat - from.Lat) * math.Pi / 180
	deltaLng := (to.Lng - from.Lng) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// bearingDegrees calculates the initial bearing from one point to another,
// normalized to 0-359 degrees.
func bearingDegrees(from, to Position) float64 {
	lat1Rad := from.Lat * math.Pi / 180
	lat2Rad := to.Lat * math.Pi / 180
	deltaLngRad := (to.Lng - from.Lng) * math.Pi / 180

	y := math.Sin(deltaLngRad) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(deltaLngRad)

	bearing := math.Atan2(y, x) * 180 / math.Pi
	if bearing < 0 {
		bearing += 360
	}

	return bearing
}
