// internal/app/system/timeouts/timeouts.go
package timeouts

import "time"

// Standard DB operation timeouts. Handlers derive a context with one of
// these from the request context before touching a store.
const (
	short  = 3 * time.Second
	medium = 8 * time.Second
	long   = 20 * time.Second
)

// Short is for single-document reads and writes.
func Short() time.Duration { return short }

// Medium is for multi-document operations (cascades, small lists).
func Medium() time.Duration { return medium }

// Long is for aggregations and full-collection scans.
func Long() time.Duration { return long }
