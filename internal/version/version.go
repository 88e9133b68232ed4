// Package version tracks which toolchain bundle version is installed.
//
// The marker is a single integer in a text file; a missing or unparsable
// marker counts as stale. Comparison is numeric: the upstream configure
// script compared versions as strings, which breaks once a version crosses
// a power-of-ten boundary.
package version

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Bundle versions currently published per platform family. The windows
// bundles trail the unix ones.
const (
	currentUnix    = 20160317
	currentWindows = 20160302
)

// Current returns the default bundle version for the given GOOS.
func Current(goos string) int {
	if goos == "windows" {
		return currentWindows
	}
	return currentUnix
}

// ReadMarker reads the persisted version. ok is false when the marker file
// is missing or does not hold an integer.
func ReadMarker(path string) (v int, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return v, true
}

// WriteMarker persists the installed bundle version.
func WriteMarker(path string, v int) error {
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d\n", v)), 0o644); err != nil {
		return fmt.Errorf("write version marker: %w", err)
	}
	return nil
}

// IsStale reports whether the recorded version is behind current.
// An absent marker is always stale.
func IsStale(recorded int, present bool, current int) bool {
	return !present || recorded < current
}
