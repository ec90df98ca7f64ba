package tracing

import "time"

// SetClock replaces the time source of l.
func (l *LoggingTracer) SetClock(now func() time.Time) {
	l.now = now
}
