package playback

// interpolate maps a progress fraction onto the segment between two
// waypoints, linear in degree-space. Segments recorded at typical sample
// rates are short enough that spherical correction is not worth it; the
// telemetry side still reports great-circle meters.
func interpolate(from, to Waypoint, progress float64) Position {
	return Position{
		Lat: from.Latitude + (to.Latitude-from.Latitude)*progress,
		Lng: from.Longitude + (to.Longitude-from.Longitude)*progress,
	}
}

// clamp constrains v to the [lo, hi] interval.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
