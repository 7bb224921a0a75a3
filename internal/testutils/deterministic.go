// Package testutils provides fakes and deterministic generators for testing
// the command-line applications.
package testutils

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SequentialUUIDs returns a generator of deterministic UUIDs in v4 layout:
// 00000001-0000-4000-8000-000000000001, 00000002-0000-4000-8000-000000000002, ...
func SequentialUUIDs() func() uuid.UUID {
	var (
		mu      sync.Mutex
		counter uint64
	)
	return func() uuid.UUID {
		mu.Lock()
		defer mu.Unlock()

		counter++
		return uuid.MustParse(fmt.Sprintf("%08x-0000-4000-8000-%012x", counter, counter))
	}
}

// SteppingClock returns a clock that starts at 2025-01-01T00:00:00Z and moves
// forward one second per call.
func SteppingClock() func() time.Time {
	var (
		mu      sync.Mutex
		counter int64
	)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()

		current := base.Add(time.Duration(counter) * time.Second)
		counter++
		return current
	}
}
