package helper_util

import "time"

// ExpiryOf returns when a window of length validity that opened at start closes.
func ExpiryOf(start time.Time, validity time.Duration) time.Time {
	return start.Add(validity)
}

// WithinWindow reports whether now is no later than validity after start.
func WithinWindow(start, now time.Time, validity time.Duration) bool {
	return now.Sub(start) <= validity
}
