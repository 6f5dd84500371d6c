package playback

import (
	"errors"
	"fmt"
)

// Common errors returned by the playback engine
var (
	ErrInvalidTickRate        = errors.New("tick rate must be positive")
	ErrInvalidSpeedMultiplier = errors.New("speed multiplier must be positive")
	ErrRouteTooShort          = errors.New("route needs at least two waypoints to play")
	ErrRouteCompleted         = errors.New("route already completed, reset before playing again")
	ErrAlreadyPlaying         = errors.New("playback is already running")
	ErrNotPlaying             = errors.New("playback is not running")
	ErrMissingTimestamp       = errors.New("waypoint has no timestamp")
	ErrCoordinateOutOfRange   = errors.New("coordinate outside valid range")
	ErrDriverAlreadyRunning   = errors.New("driver is already running")
	ErrDriverNotRunning       = errors.New("driver is not running")
)

// WaypointError reports which waypoint made a route unloadable. A single
// malformed waypoint rejects the entire route.
type WaypointError struct {
	Index int
	Err   error
}

func (e *WaypointError) Error() string {
	return fmt.Sprintf("waypoint %d: %v", e.Index, e.Err)
}

func (e *WaypointError) Unwrap() error { return e.Err }
