package ports

import "time"

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}
