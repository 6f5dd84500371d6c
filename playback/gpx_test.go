package playback

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testGPXTrack = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Morning Drive</name>
    <trkseg>
      <trkpt lat="28.6139" lon="77.2090">
        <time>2024-05-14T09:00:00Z</time>
      </trkpt>
      <trkpt lat="28.6141" lon="77.2095">
        <time>2024-05-14T09:00:05Z</time>
      </trkpt>
    </trkseg>
  </trk>
</gpx>`

const testGPXRoute = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <rte>
    <name>Planned Route</name>
    <rtept lat="48.8566" lon="2.3522">
      <time>2024-05-14T09:00:00Z</time>
    </rtept>
    <rtept lat="48.8570" lon="2.3530">
      <time>2024-05-14T09:00:08Z</time>
    </rtept>
  </rte>
</gpx>`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestReadGPXFileTrackPoints(t *testing.T) {
	path := writeFixture(t, "track.gpx", testGPXTrack)

	route, err := ReadGPXFile(path)
	if err != nil {
		t.Fatalf("Failed to read GPX track: %v", err)
	}
	if len(route) != 2 {
		t.Fatalf("Expected 2 waypoints, got %d", len(route))
	}
	if route[0].Latitude != 28.6139 || route[0].Longitude != 77.2090 {
		t.Errorf("Unexpected first waypoint: %+v", route[0])
	}
	if route[1].Timestamp.Sub(route[0].Timestamp) != 5*time.Second {
		t.Errorf("Expected 5 s segment, got %v", route[1].Timestamp.Sub(route[0].Timestamp))
	}
}

func TestReadGPXFileRoutePointsFallback(t *testing.T) {
	path := writeFixture(t, "route.gpx", testGPXRoute)

	route, err := ReadGPXFile(path)
	if err != nil {
		t.Fatalf("Failed to read GPX route: %v", err)
	}
	if len(route) != 2 {
		t.Fatalf("Expected 2 waypoints from rtept fallback, got %d", len(route))
	}
	if route[0].Latitude != 48.8566 {
		t.Errorf("Unexpected first waypoint: %+v", route[0])
	}
}

func TestReadGPXFileRejectsUntimedPoints(t *testing.T) {
	const untimed = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><trkseg>
    <trkpt lat="1" lon="2"></trkpt>
  </trkseg></trk>
</gpx>`
	path := writeFixture(t, "untimed.gpx", untimed)

	if _, err := ReadGPXFile(path); err == nil {
		t.Fatal("Track points without timestamps should be rejected")
	}
}

func TestReadGPXFileEmpty(t *testing.T) {
	const empty = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1"></gpx>`
	path := writeFixture(t, "empty.gpx", empty)

	if _, err := ReadGPXFile(path); err == nil {
		t.Fatal("A GPX file without points should be rejected")
	}
}

func TestTrackRecorderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recorded.gpx")

	recorder, err := NewTrackRecorder(path)
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}

	start := time.Date(2024, 5, 14, 9, 0, 0, 0, time.UTC)
	recorder.Add(Position{Lat: 0, Lng: 0}, start)
	recorder.Add(Position{Lat: 0, Lng: 0.001}, start.Add(time.Second))
	recorder.Add(Position{Lat: 0, Lng: 0.002}, start.Add(2*time.Second))

	if recorder.Count() != 3 {
		t.Errorf("Expected 3 recorded points, got %d", recorder.Count())
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Failed to close recorder: %v", err)
	}

	route, err := ReadGPXFile(path)
	if err != nil {
		t.Fatalf("Failed to read recorded track: %v", err)
	}
	if len(route) != 3 {
		t.Fatalf("Expected 3 waypoints, got %d", len(route))
	}
	if route[2].Longitude != 0.002 {
		t.Errorf("Expected final longitude 0.002, got %f", route[2].Longitude)
	}
	if !route[0].Timestamp.Equal(start) {
		t.Errorf("Expected timestamp %v, got %v", start, route[0].Timestamp)
	}
}
