package scheduling

import (
	"strings"
	"time"
)

const ClockLayout = "15:04"

// parseClock converts an "HH:MM" string to minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func ValidClock(s string) bool {
	_, ok := parseClock(s)
	return ok
}

// ValidRange reports whether both ends parse and end is strictly after start.
func ValidRange(start, end string) bool {
	s, ok := parseClock(start)
	if !ok {
		return false
	}
	e, ok := parseClock(end)
	if !ok {
		return false
	}
	return e > s
}

// Hours is the length of [start, end) in hours. Unparseable or inverted
// ranges are zero-length.
func Hours(start, end string) float64 {
	s, ok := parseClock(start)
	if !ok {
		return 0
	}
	e, ok := parseClock(end)
	if !ok || e <= s {
		return 0
	}
	return float64(e-s) / 60
}
