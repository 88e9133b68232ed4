// Package emit assembles the definition set handed to the build generator
// and drives one configuration per build profile.
package emit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/PratikSonavane14/SFrame/internal/config"
	"github.com/PratikSonavane14/SFrame/internal/env"
	"github.com/PratikSonavane14/SFrame/internal/ui"
	"github.com/PratikSonavane14/SFrame/x/cmake"
)

// Definition is one -D entry. Order in the emitted set is significant and
// preserved end to end.
type Definition struct {
	Key   string
	Value string
	Type  string // STRING, BOOL, FILEPATH; empty for raw passthrough
}

// Arg renders the definition as a generator argument.
func (d Definition) Arg() string {
	if d.Type == "" {
		return "-D" + d.Key + "=" + d.Value
	}
	return "-D" + d.Key + ":" + d.Type + "=" + d.Value
}

// LookPath resolves a binary name to an absolute path. Tests substitute it
// for exec.LookPath.
type LookPath func(name string) (string, error)

// BuildDefinitions assembles the shared definition prefix used by both
// profiles: compilers, linker, Python variant, R integration, then the
// user's -D passthrough in the order given.
func BuildDefinitions(cfg config.Config, variant config.PythonVariant, dirs env.Dirs, goos string, look LookPath) ([]Definition, error) {
	if look == nil {
		look = exec.LookPath
	}

	var defs []Definition

	if goos == "windows" {
		bin := dirs.ToolchainBinDir()
		defs = append(defs,
			Definition{"CMAKE_C_COMPILER", filepath.Join(bin, "gcc.exe"), "FILEPATH"},
			Definition{"CMAKE_CXX_COMPILER", filepath.Join(bin, "g++.exe"), "FILEPATH"},
		)
	} else {
		ccPath, err := look(cfg.CCName)
		if err != nil {
			return nil, fmt.Errorf("C compiler %q not found in PATH: %w", cfg.CCName, err)
		}
		cxxPath, err := look(cfg.CXXName)
		if err != nil {
			return nil, fmt.Errorf("C++ compiler %q not found in PATH: %w", cfg.CXXName, err)
		}
		defs = append(defs,
			Definition{"CMAKE_C_COMPILER", ccPath, "FILEPATH"},
			Definition{"CMAKE_CXX_COMPILER", cxxPath, "FILEPATH"},
		)
	}

	if linker, ok := pickLinker(dirs); ok {
		defs = append(defs, Definition{"CMAKE_LINKER", linker, "FILEPATH"})
	}

	defs = append(defs,
		Definition{"PYTHON_VERSION", string(variant), "STRING"},
		Definition{"PYTHON_EXECUTABLE", filepath.Join(dirs.ToolchainBinDir(), "python"+string(variant)), "FILEPATH"},
		Definition{"PYTHON_LIBRARY_DIR", filepath.Join(dirs.LocalPrefix(), "lib"), "FILEPATH"},
	)

	rValue := "OFF"
	if cfg.RIntegration {
		rValue = "ON"
	}
	defs = append(defs, Definition{"R_INTEGRATION", rValue, "BOOL"})

	for _, kv := range cfg.Defines {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("malformed definition %q: want key=value", kv)
		}
		defs = append(defs, Definition{Key: key, Value: value})
	}
	return defs, nil
}

// pickLinker prefers the bundled gold linker, then the generic one.
func pickLinker(dirs env.Dirs) (string, bool) {
	for _, name := range []string{"ld.gold", "ld"} {
		candidate := filepath.Join(dirs.ToolchainBinDir(), name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// Configure runs the build generator for one profile. The cache file is
// cleared and Cython intermediates purged first: the generator does not
// reliably detect their staleness on its own.
func Configure(profile env.Profile, defs []Definition, dirs env.Dirs, cfg config.Config) error {
	out := dirs.ProfileDir(profile)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create %s output dir: %w", profile, err)
	}
	if err := os.RemoveAll(filepath.Join(out, "cython")); err != nil {
		ui.Warnf("failed to purge cython artifacts under %s: %v", out, err)
	}

	c := cmake.New(dirs.Root, out)
	if cfg.Generator != "" {
		c.Generator(cfg.Generator)
	}
	c.BuildType(profile.BuildType())
	if err := c.ClearCache(); err != nil {
		return fmt.Errorf("clear %s build cache: %w", profile, err)
	}
	if _, err := os.Stat(dirs.LocalPrefix()); err == nil {
		c.Use(dirs.LocalPrefix())
	}

	args := make([]string, 0, len(defs))
	for _, d := range defs {
		args = append(args, d.Arg())
	}
	if err := c.Configure(args...); err != nil {
		return fmt.Errorf("configure %s build: %w", profile, err)
	}
	return nil
}
