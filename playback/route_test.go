package playback

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseRouteValidDocument(t *testing.T) {
	data := []byte(`[
		{"latitude": 28.6139, "longitude": 77.2090, "timestamp": "2024-05-14T09:00:00Z"},
		{"latitude": 28.6141, "longitude": 77.2095, "timestamp": "2024-05-14T09:00:05Z"},
		{"latitude": 28.6145, "longitude": 77.2101, "timestamp": "2024-05-14T09:00:10Z"}
	]`)

	route, err := ParseRoute(data)
	if err != nil {
		t.Fatalf("Failed to parse valid route: %v", err)
	}
	if len(route) != 3 {
		t.Fatalf("Expected 3 waypoints, got %d", len(route))
	}
	if route[0].Latitude != 28.6139 {
		t.Errorf("Expected latitude 28.6139, got %f", route[0].Latitude)
	}
	want := time.Date(2024, 5, 14, 9, 0, 5, 0, time.UTC)
	if !route[1].Timestamp.Equal(want) {
		t.Errorf("Expected timestamp %v, got %v", want, route[1].Timestamp)
	}
}

func TestParseRouteUnparsableTimestamp(t *testing.T) {
	data := []byte(`[{"latitude": 1, "longitude": 2, "timestamp": "14/05/2024 09:00"}]`)

	if _, err := ParseRoute(data); err == nil {
		t.Fatal("Non-RFC3339 timestamp should reject the route")
	}
}

func TestParseRouteMissingTimestamp(t *testing.T) {
	data := []byte(`[{"latitude": 1, "longitude": 2}]`)

	_, err := ParseRoute(data)
	if !errors.Is(err, ErrMissingTimestamp) {
		t.Fatalf("Expected ErrMissingTimestamp, got %v", err)
	}
}

func TestValidateRouteCoordinateRanges(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		wantErr  bool
	}{
		{"valid", 48.8566, 2.3522, false},
		{"latitude boundary", 90, 0, false},
		{"longitude boundary", 0, -180, false},
		{"latitude too high", 90.5, 0, true},
		{"latitude too low", -91, 0, true},
		{"longitude too high", 0, 180.5, true},
		{"longitude too low", 0, -181, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := Route{{Latitude: tt.lat, Longitude: tt.lng, Timestamp: testBase}}
			err := ValidateRoute(route)
			if tt.wantErr {
				if !errors.Is(err, ErrCoordinateOutOfRange) {
					t.Errorf("Expected ErrCoordinateOutOfRange, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Expected valid waypoint, got %v", err)
			}
		})
	}
}

func TestValidateRouteReportsIndex(t *testing.T) {
	route := Route{
		{Latitude: 0, Longitude: 0, Timestamp: testBase},
		{Latitude: 0, Longitude: 0, Timestamp: testBase.Add(time.Second)},
		{Latitude: 0, Longitude: 200, Timestamp: testBase.Add(2 * time.Second)},
	}

	err := ValidateRoute(route)
	var wpErr *WaypointError
	if !errors.As(err, &wpErr) {
		t.Fatalf("Expected WaypointError, got %v", err)
	}
	if wpErr.Index != 2 {
		t.Errorf("Expected index 2, got %d", wpErr.Index)
	}
}

func TestReadRouteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "route.json")
	data := `[
		{"latitude": 0, "longitude": 0, "timestamp": "2024-05-14T09:00:00Z"},
		{"latitude": 0, "longitude": 0.001, "timestamp": "2024-05-14T09:00:10Z"}
	]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	route, err := ReadRouteFile(path)
	if err != nil {
		t.Fatalf("Failed to read route file: %v", err)
	}
	if len(route) != 2 {
		t.Errorf("Expected 2 waypoints, got %d", len(route))
	}

	if _, err := ReadRouteFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Missing file should return an error")
	}
}
