// Package state snapshots the on-disk facts the planner decides against.
// All disk inspection happens here, once, at startup; downstream logic is
// a pure function of the snapshot.
package state

import (
	"os"

	"github.com/PratikSonavane14/SFrame/internal/env"
	"github.com/PratikSonavane14/SFrame/internal/version"
)

// PersistedState is what a previous run left behind.
type PersistedState struct {
	HasToolchain    bool
	RecordedVersion int
	HasMarker       bool
}

// Read inspects the working tree and returns an immutable snapshot.
func Read(dirs env.Dirs) PersistedState {
	var st PersistedState
	if fi, err := os.Stat(dirs.CompilerPath()); err == nil && !fi.IsDir() {
		st.HasToolchain = true
	}
	st.RecordedVersion, st.HasMarker = version.ReadMarker(dirs.VersionMarker())
	return st
}
