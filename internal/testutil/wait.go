package testutil

import "time"

// Bounds for assert.Eventually in tests that wait on background work.
const (
	WaitTimeout = 2 * time.Second
	WaitTick    = 10 * time.Millisecond
)
