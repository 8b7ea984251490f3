package ports

import "time"

// Clock supplies the current time. Injectable so timestamp-sensitive logic
// (archive number dates, audit timestamps) stays deterministic in tests.
type Clock interface {
	Now() time.Time
}
