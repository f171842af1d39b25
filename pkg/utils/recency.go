package utils

import "time"

// Recency buckets an elapsed time against the two configured windows.
type Recency string

const (
	RecencyShort Recency = "short"
	RecencyLong  Recency = "long"
	RecencyNever Recency = "never"
	RecencyOther Recency = "other"
)

// ClassifyRecency buckets a nullable timestamp: "short" when its age is at
// most shortWindow, "long" when between shortWindow and longWindow, "never"
// for a nil timestamp and "other" beyond longWindow.
func ClassifyRecency(at *time.Time, shortWindow, longWindow time.Duration) Recency {
	if at == nil {
		return RecencyNever
	}

	age := time.Since(*at)
	switch {
	case age <= shortWindow:
		return RecencyShort
	case age <= longWindow:
		return RecencyLong
	default:
		return RecencyOther
	}
}

// IsWithin reports whether t is no older than d.
func IsWithin(t time.Time, d time.Duration) bool {
	return time.Since(t) <= d
}
