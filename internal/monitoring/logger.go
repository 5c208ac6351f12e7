// Package monitoring holds the engine's diagnostic logger.
package monitoring

import (
	"log"
	"sync/atomic"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

var verbose atomic.Bool

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetVerbose enables or disables Debugf output.
func SetVerbose(on bool) {
	verbose.Store(on)
}

// Verbose reports whether Debugf output is enabled.
func Verbose() bool {
	return verbose.Load()
}

// Warnf logs a recoverable anomaly, e.g. a missing range entry.
func Warnf(format string, v ...interface{}) {
	Logf("warning: "+format, v...)
}

// Debugf logs only when verbose output is enabled.
func Debugf(format string, v ...interface{}) {
	if !verbose.Load() {
		return
	}
	Logf("debug: "+format, v...)
}
