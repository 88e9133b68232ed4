package internal

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/PratikSonavane14/SFrame/internal/cleanup"
	"github.com/PratikSonavane14/SFrame/internal/config"
	"github.com/PratikSonavane14/SFrame/internal/emit"
	"github.com/PratikSonavane14/SFrame/internal/env"
	"github.com/PratikSonavane14/SFrame/internal/installer"
	"github.com/PratikSonavane14/SFrame/internal/plan"
	"github.com/PratikSonavane14/SFrame/internal/state"
	"github.com/PratikSonavane14/SFrame/internal/toolchain"
	"github.com/PratikSonavane14/SFrame/internal/ui"
	"github.com/PratikSonavane14/SFrame/internal/version"
)

// run executes the configure pipeline: plan the stages from the persisted
// state, run cleanup if requested, then install and generate as planned.
func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.ResolveAmbient(); err != nil {
		return fmt.Errorf("resolve settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	dirs, err := env.Discover()
	if err != nil {
		return err
	}

	st := state.Read(dirs)
	current := version.Current(runtime.GOOS)
	stale := version.IsStale(st.RecordedVersion, st.HasMarker, current)
	if stale && st.HasToolchain {
		ui.Warnf("installed toolchain is out of date (have %d, want %d)", st.RecordedVersion, current)
	}

	p, err := plan.Plan(*cfg, st, stale)
	if err != nil {
		return err
	}

	if p.DoCleanup {
		res, err := cleanup.Run(dirs, p.CleanupForced, os.Stdin)
		if err != nil {
			return err
		}
		if res == cleanup.Aborted {
			return errCleanupDeclined
		}
		if cfg.Cleanup {
			ui.Step("Cleanup complete")
			return errCleanupComplete
		}
		// Stale-toolchain cleanup: the tree is gone, re-read before the
		// install stages run.
		st = state.Read(dirs)
	}

	if p.RunToolchainInstall {
		src, err := toolchain.Resolve(*cfg, st, runtime.GOOS)
		if err != nil {
			return err
		}
		if err := toolchain.Install(ctx, src, dirs); err != nil {
			return err
		}
	} else if !cfg.CMakeOnly && !cfg.PythonOnly {
		ui.Step("Reusing installed toolchain in %s", dirs.DepsDir())
	}

	variant, err := cfg.PythonVariant()
	if err != nil {
		return err
	}

	if p.RunRuntimeInstall {
		if err := installer.InstallPythonRuntime(ctx, cfg.PythonInstaller, variant); err != nil {
			return err
		}
		if cfg.RIntegration {
			if err := installer.InstallRRuntime(ctx, cfg.RInstaller); err != nil {
				return err
			}
		}
	}

	if p.RunConfigure {
		defs, err := emit.BuildDefinitions(*cfg, variant, dirs, runtime.GOOS, nil)
		if err != nil {
			return err
		}
		for _, profile := range []env.Profile{env.Release, env.Debug} {
			if err := emit.Configure(profile, defs, dirs, *cfg); err != nil {
				return err
			}
		}
		ui.Step("Build directories ready: %s, %s", dirs.ReleaseDir(), dirs.DebugDir())
	}
	return nil
}
