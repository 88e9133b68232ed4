// Package plan decides which setup stages a run executes.
package plan

import (
	"github.com/PratikSonavane14/SFrame/internal/config"
	"github.com/PratikSonavane14/SFrame/internal/state"
)

// StagePlan gates the three setup stages plus the cleanup action.
// Immutable once computed.
type StagePlan struct {
	RunToolchainInstall bool
	RunRuntimeInstall   bool
	RunConfigure        bool
	DoCleanup           bool
	CleanupForced       bool
}

// Plan maps the flag set and the persisted snapshot to a StagePlan.
// Pure: identical inputs always yield the identical plan.
//
// Ordering matters and is locked by tests: the existing-toolchain
// short-circuit applies first, then the cmake_only override, then the
// python_only override. When both only-flags are set the one applied last
// wins, so python_only takes precedence.
func Plan(cfg config.Config, st state.PersistedState, stale bool) (StagePlan, error) {
	p := StagePlan{
		RunToolchainInstall: true,
		RunRuntimeInstall:   true,
		RunConfigure:        true,
	}

	switch {
	case cfg.Cleanup:
		p.DoCleanup = true
		p.CleanupForced = cfg.Yes
	case cfg.CleanupIfInvalid && stale:
		// Stale toolchain: wipe without asking, then reinstall.
		p.DoCleanup = true
		p.CleanupForced = true
	}

	// A pending cleanup wipes the toolchain, so it cannot satisfy the reuse
	// short-circuit.
	hasToolchain := st.HasToolchain && !p.DoCleanup
	if hasToolchain && cfg.ToolchainSpec == "" {
		p.RunToolchainInstall = false
	}

	if cfg.CMakeOnly {
		p.RunToolchainInstall = false
		p.RunRuntimeInstall = false
		p.RunConfigure = true
	}
	if cfg.PythonOnly {
		p.RunToolchainInstall = false
		p.RunRuntimeInstall = true
		p.RunConfigure = false
	}

	if _, err := cfg.PythonVariant(); err != nil {
		return StagePlan{}, err
	}
	return p, nil
}
