// Package timeout provides deadline tracking for delayed actions.
//
// A clean abstraction over timeout logic instead of scattered optional
// timestamps. Tracker is a plain value and may be copied freely with the
// state that owns it.
package timeout

import "time"

// Tracker tracks timeout state for delayed actions.
type Tracker struct {
	// Zero when not active
	startedAt time.Time
	duration  time.Duration
}

// New creates a tracker with the given duration in milliseconds.
func New(durationMS uint64) Tracker {
	return Tracker{duration: time.Duration(durationMS) * time.Millisecond}
}

// Start starts or restarts the timeout from the current instant.
func (t *Tracker) Start() {
	t.startedAt = time.Now()
}

// Reset is equivalent to Start.
func (t *Tracker) Reset() {
	t.Start()
}

// Cancel clears the timeout.
func (t *Tracker) Cancel() {
	t.startedAt = time.Time{}
}

// IsActive reports whether the timeout is started but not yet elapsed.
func (t Tracker) IsActive() bool {
	return !t.startedAt.IsZero() && !t.HasElapsed()
}

// HasElapsed reports whether the timeout has elapsed. Always false while
// unstarted.
func (t Tracker) HasElapsed() bool {
	if t.startedAt.IsZero() {
		return false
	}
	return time.Since(t.startedAt) >= t.duration
}

// Remaining returns the time until the deadline, or false when not
// active or already elapsed.
func (t Tracker) Remaining() (time.Duration, bool) {
	if t.startedAt.IsZero() {
		return 0, false
	}
	elapsed := time.Since(t.startedAt)
	if elapsed >= t.duration {
		return 0, false
	}
	return t.duration - elapsed, true
}

// Elapsed returns the time since start, or false when not started.
func (t Tracker) Elapsed() (time.Duration, bool) {
	if t.startedAt.IsZero() {
		return 0, false
	}
	return time.Since(t.startedAt), true
}

// Deadline returns the instant the timeout triggers, or false when not
// started.
func (t Tracker) Deadline() (time.Time, bool) {
	if t.startedAt.IsZero() {
		return time.Time{}, false
	}
	return t.startedAt.Add(t.duration), true
}

// SetDuration updates the duration without resetting the timer.
func (t *Tracker) SetDuration(durationMS uint64) {
	t.duration = time.Duration(durationMS) * time.Millisecond
}

// SetStartedAt overrides the start instant. Used by tests that need to
// backdate a tracker.
func (t *Tracker) SetStartedAt(at time.Time) {
	t.startedAt = at
}
