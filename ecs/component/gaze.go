package component

import "time"

// GazeCursor is the per-session dwell state. Target is a lookup handle, not
// an owner; the zero value means nothing is hovered.
type GazeCursor struct {
	Target uint64 // ecs.Entity
	Dwell  time.Duration
	// Disarmed is set after a selection under the gaze-break policy and
	// cleared once the ray hits nothing.
	Disarmed bool
}

var GazeCursorComponent = NewComponent[GazeCursor]()
