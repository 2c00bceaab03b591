// Package common provides shared utilities for Kestrel
package common

import "time"

// FreshnessFundamentals is the TTL on stored company and statement data.
// Annual statements change quarterly at most.
const FreshnessFundamentals = 30 * 24 * time.Hour

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
