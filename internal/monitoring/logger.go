// Package monitoring carries the shared diagnostic logger used for
// verbose validation and extraction output. Callers log through Logf so
// that embedding applications can redirect or mute diagnostics without
// touching the analysis packages.
package monitoring

import (
	"fmt"
	"log"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Capture redirects Logf into the returned slice until restore is called.
// Intended for tests that assert on diagnostic output.
func Capture() (lines *[]string, restore func()) {
	prev := Logf
	captured := &[]string{}
	Logf = func(format string, v ...interface{}) {
		*captured = append(*captured, fmt.Sprintf(format, v...))
	}
	return captured, func() { Logf = prev }
}
