package playback

import (
	"sync"
	"time"
)

// Engine replays a recorded vehicle route as a wall-clock-synchronized
// animation and derives live telemetry from it. It never schedules work on
// its own: an external driver delivers ticks via Tick, and play/pause/reset
// commands mutate state synchronously. Every call is O(1) in route length.
type Engine struct {
	mu     sync.RWMutex
	config Config

	route       Route
	segIdx      int
	segProgress float64
	segStart    time.Time // wall-clock origin of the current segment; zero = unset
	playing     bool
	completed   bool
	tel         telemetry

	// traveled mirrors route[0..segIdx] as positions. It is maintained
	// incrementally (appended on segment advance, reallocated on reset)
	// so snapshots never rebuild it.
	traveled []Position
}

// NewEngine creates a playback engine with no route loaded.
func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Engine{config: config}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}

// LoadRoute validates and installs a new route, replacing any previous one
// and zeroing all playback state. A single malformed waypoint rejects the
// entire route so the engine never animates through invalid data.
func (e *Engine) LoadRoute(route Route) error {
	if err := ValidateRoute(route); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.route = append(Route(nil), route...)
	e.resetLocked()
	return nil
}

// Play starts ticking from the current segment. The returned errors are
// advisory, not fatal: the engine simply stays idle.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.playing {
		return ErrAlreadyPlaying
	}
	if len(e.route) < 2 {
		return ErrRouteTooShort
	}
	if e.completed || e.segIdx >= len(e.route)-1 {
		return ErrRouteCompleted
	}

	e.playing = true
	// Clear the wall-clock origin so the next tick re-anchors timing.
	e.segStart = time.Time{}
	e.tel.rearm()
	return nil
}

// Pause freezes the current index, progress and telemetry values. Only an
// explicit Reset zeroes them.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.playing {
		return ErrNotPlaying
	}
	e.playing = false
	return nil
}

// Reset returns the engine to its initial state, retaining the loaded route.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Engine) resetLocked() {
	e.segIdx = 0
	e.segProgress = 0
	e.segStart = time.Time{}
	e.playing = false
	e.completed = false
	e.tel.reset()

	// A fresh slice, not a reslice: snapshots already handed out keep
	// their own view of the previous pass.
	e.traveled = nil
	if len(e.route) > 0 {
		e.traveled = []Position{position(e.route[0])}
	}
}

// IsPlaying reports whether the engine is currently in the Playing state.
func (e *Engine) IsPlaying() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.playing
}

// Tick advances playback to the given wall-clock instant and returns the
// resulting snapshot. Ticks must arrive in non-decreasing wall-clock order;
// duplicate or out-of-order instants degrade to "hold previous value".
// Ticks while idle leave the state untouched. No failure escapes Tick.
func (e *Engine) Tick(now time.Time) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.playing || len(e.route) < 2 {
		return e.snapshotLocked()
	}

	// First tick of a segment or of the whole session.
	if e.segStart.IsZero() {
		e.segStart = now
	}

	cur := e.route[e.segIdx]
	next := e.route[e.segIdx+1]

	duration := next.Timestamp.Sub(cur.Timestamp).Seconds()
	elapsed := now.Sub(e.segStart).Seconds() * e.config.SpeedMultiplier

	// Degenerate segments (duration <= 0) snap straight to the next
	// waypoint instead of dividing by zero.
	progress := 1.0
	if duration > 0 {
		progress = clamp(elapsed/duration, 0, 1)
	}

	pos := interpolate(cur, next, progress)
	e.tel.sample(pos, now)

	if progress >= 1 {
		e.advanceLocked(now)
	} else {
		e.segProgress = progress
	}

	return e.snapshotLocked()
}

// advanceLocked moves playback to the next segment, re-synchronizing its
// wall-clock origin so drift cannot accumulate across long sessions.
func (e *Engine) advanceLocked(now time.Time) {
	e.segProgress = 0
	e.segStart = now

	if e.segIdx+1 >= len(e.route)-1 {
		// The advanced index has no successor.
		if e.config.Loop {
			e.segIdx = 0
			e.traveled = []Position{position(e.route[0])}
			// Clear the sample anchors so the jump back to the first
			// waypoint is not counted as travel.
			e.tel.rearm()
			return
		}
		e.segIdx = len(e.route) - 1
		e.traveled = append(e.traveled, position(e.route[e.segIdx]))
		e.playing = false
		e.completed = true
		return
	}
	e.segIdx++
	e.traveled = append(e.traveled, position(e.route[e.segIdx]))
}

// Snapshot returns the current position and telemetry without advancing time.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		ElapsedSeconds:  e.tel.elapsed,
		DistanceMeters:  e.tel.distance,
		SpeedMps:        e.tel.speed,
		CourseDegrees:   e.tel.course,
		Playing:         e.playing,
		Completed:       e.completed,
		SegmentIndex:    e.segIdx,
		SegmentProgress: e.segProgress,
		RouteSize:       len(e.route),
	}

	if len(e.route) == 0 {
		return snap
	}

	pos := position(e.route[e.segIdx])
	if e.tel.lastPos != nil {
		pos = *e.tel.lastPos
	}
	snap.Position = &pos
	snap.WaypointTimestamp = e.route[e.segIdx].Timestamp

	// The prefix is append-only between resets, so handing out the slice
	// keeps snapshots constant-time. Callers must not mutate it.
	snap.TraveledPath = e.traveled

	return snap
}
