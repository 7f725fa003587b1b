// Package lifecycle holds shared constants for component start/stop behavior.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown of long-lived
// components (HTTP server, DB pool, publishers).
const DefaultTimeout = 10 * time.Second
