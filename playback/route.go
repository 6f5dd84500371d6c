package playback

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRoute checks every waypoint of a route: timestamps must be set and
// coordinates must lie inside valid latitude/longitude ranges. The first
// malformed waypoint rejects the whole route.
func ValidateRoute(route Route) error {
	for i, wp := range route {
		if wp.Timestamp.IsZero() {
			return &WaypointError{Index: i, Err: ErrMissingTimestamp}
		}
		if err := validate.Struct(wp); err != nil {
			return &WaypointError{Index: i, Err: fmt.Errorf("%w: %v", ErrCoordinateOutOfRange, err)}
		}
	}
	return nil
}

// ParseRoute decodes a JSON route document: an ordered array of
// {latitude, longitude, timestamp} records with RFC 3339 timestamps.
func ParseRoute(data []byte) (Route, error) {
	var route Route
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, fmt.Errorf("failed to parse route: %w", err)
	}
	if err := ValidateRoute(route); err != nil {
		return nil, err
	}
	return route, nil
}

// ReadRouteFile loads and validates a JSON route file.
func ReadRouteFile(filename string) (Route, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open route file %s: %w", filename, err)
	}
	route, err := ParseRoute(data)
	if err != nil {
		return nil, fmt.Errorf("route file %s: %w", filename, err)
	}
	return route, nil
}
