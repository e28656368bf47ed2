package marquee

import (
	"log"
	"sync/atomic"
)

var traceLogEnabled atomic.Bool

// SetTraceLoggingEnabled turns state-transition logging on or off for every
// Session.
func SetTraceLoggingEnabled(enabled bool) {
	traceLogEnabled.Store(enabled)
}

func isTraceLoggingEnabled() bool {
	return traceLogEnabled.Load()
}

// StdLogger adapts the standard log package to Logger.
type StdLogger struct{}

// Printf forwards to log.Printf.
func (StdLogger) Printf(format string, args ...any) {
	log.Printf(format, args...)
}
