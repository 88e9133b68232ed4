// Package ui holds the shared console output helpers.
package ui

import (
	"fmt"
	"os"

	"github.com/gookit/color"
)

var (
	colWarn    = color.Warn
	colError   = color.Error
	colSuccess = color.HEX("#1976D2")
	colArrow   = color.HEX("#FFEB3B")
)

// Debug enables debugf-style diagnostics. Set from SFRAME_DEBUG at startup.
var Debug = os.Getenv("SFRAME_DEBUG") != ""

// Step announces the start of a pipeline stage.
func Step(format string, a ...any) {
	colArrow.Print("-> ")
	colSuccess.Printf(format+"\n", a...)
}

func Warnf(format string, a ...any) {
	colWarn.Printf(format+"\n", a...)
}

func Errorf(format string, a ...any) {
	colError.Printf(format+"\n", a...)
}

// Debugf prints diagnostics when Debug is set.
func Debugf(format string, a ...any) {
	if Debug {
		fmt.Printf(format, a...)
	}
}
