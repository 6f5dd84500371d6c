package playback

import "time"

// Waypoint is a single timestamped geolocation sample in a route.
type Waypoint struct {
	Latitude  float64   `json:"latitude" validate:"latitude"`
	Longitude float64   `json:"longitude" validate:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// Route is an ordered sequence of waypoints. Waypoints are assumed to be in
// non-decreasing timestamp order; the route is replaced wholesale by
// LoadRoute and never mutated in place.
type Route []Waypoint

// Position is a geographic coordinate in decimal degrees (WGS 84).
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// position returns the waypoint's coordinates.
func position(wp Waypoint) Position {
	return Position{Lat: wp.Latitude, Lng: wp.Longitude}
}

// Snapshot is the read-only position/telemetry payload the engine produces
// after every tick or command. Position is nil while no route is loaded.
type Snapshot struct {
	Position          *Position  `json:"position,omitempty"`
	WaypointTimestamp time.Time  `json:"waypoint_timestamp"`
	ElapsedSeconds    float64    `json:"elapsed_seconds"`
	DistanceMeters    float64    `json:"distance_meters"`
	SpeedMps          float64    `json:"speed_mps"`
	CourseDegrees     float64    `json:"course_degrees"`
	Playing           bool       `json:"playing"`
	Completed         bool       `json:"completed"`
	SegmentIndex      int        `json:"segment_index"`
	SegmentProgress   float64    `json:"segment_progress"`
	RouteSize         int        `json:"route_size"`

	// TraveledPath lists the waypoints passed so far, up to and including
	// the current segment index. It is a shared read-only view; callers
	// must not modify it.
	TraveledPath []Position `json:"traveled_path,omitempty"`
}
