package playback

import "time"

// telemetry derives distance, speed and course from successive interpolated
// samples. Reported distance is great-circle meters, not the degree-space
// interpolation distance.
type telemetry struct {
	lastPos    *Position
	lastSample time.Time
	elapsed    float64 // wall-clock playback seconds
	distance   float64 // meters, monotonically non-decreasing
	speed      float64 // meters per second
	course     float64 // degrees
}

// sample folds a new interpolated position into the accumulated telemetry.
// The first sample after a reset or rearm only initializes the anchors.
// Zero or negative dt (duplicate or out-of-order ticks) leaves distance,
// speed and elapsed untouched.
func (t *telemetry) sample(pos Position, now time.Time) {
	if t.lastPos != nil && !t.lastSample.IsZero() {
		dt := now.Sub(t.lastSample).Seconds()
		if dt > 0 {
			delta := haversineMeters(*t.lastPos, pos)
			t.distance += delta
			t.speed = delta / dt
			t.elapsed += dt
			if delta > 0 {
				t.course = bearingDegrees(*t.lastPos, pos)
			}
		}
	}

	p := pos
	t.lastPos = &p
	t.lastSample = now
}

// rearm clears the sample anchors so the first tick after a resume neither
// counts the pause gap nor the snap back to the segment start, without
// discarding accumulated values.
func (t *telemetry) rearm() {
	t.lastPos = nil
	t.lastSample = time.Time{}
}

func (t *telemetry) reset() {
	*t = telemetry{}
}
