// Package env defines the on-disk layout the configure tool works against.
package env

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dirs anchors every generated artifact to a single source root.
type Dirs struct {
	Root string
}

// Discover returns the layout rooted at the current working directory.
func Discover() (Dirs, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Dirs{}, err
	}
	return Dirs{Root: wd}, nil
}

func (d Dirs) ReleaseDir() string { return filepath.Join(d.Root, "release") }
func (d Dirs) DebugDir() string   { return filepath.Join(d.Root, "debug") }
func (d Dirs) DepsDir() string    { return filepath.Join(d.Root, "deps") }

// LocalPrefix is where the extracted toolchain bundle installs its
// compilers, cmake and linkers.
func (d Dirs) LocalPrefix() string { return filepath.Join(d.DepsDir(), "local") }

func (d Dirs) ToolchainBinDir() string { return filepath.Join(d.LocalPrefix(), "bin") }

// CompilerPath is the probe binary whose presence marks a usable toolchain.
func (d Dirs) CompilerPath() string {
	name := "cc"
	if runtime.GOOS == "windows" {
		name = "gcc.exe"
	}
	return filepath.Join(d.ToolchainBinDir(), name)
}

// VersionMarker is the text file recording the installed bundle version.
func (d Dirs) VersionMarker() string { return filepath.Join(d.Root, "deps_version") }

// ArchiveGlob matches downloaded toolchain bundles under the root.
func (d Dirs) ArchiveGlob() string { return filepath.Join(d.Root, "sframe_deps_*") }

// Profile is one of the two build output configurations.
type Profile int

const (
	Release Profile = iota
	Debug
)

func (p Profile) String() string {
	if p == Debug {
		return "debug"
	}
	return "release"
}

// BuildType is the value passed as the generator's build-type definition.
func (p Profile) BuildType() string {
	if p == Debug {
		return "Debug"
	}
	return "Release"
}

// ProfileDir is the output directory a profile configures into.
func (d Dirs) ProfileDir(p Profile) string {
	return filepath.Join(d.Root, p.String())
}
