package demoapp

import "github.com/edward-ap/marqueeview/internal/marquee"

// SetTraceLogEnabled toggles marquee state-transition logging.
// Call this before creating the App.
func SetTraceLogEnabled(b bool) { marquee.SetTraceLoggingEnabled(b) }
