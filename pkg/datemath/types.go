package datemath

import "time"

// Window is a half-open interval [Start, End) of absolute instants.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// IsZero reports whether the window was never set.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}
