// Package toolchain resolves and installs the bundled compiler toolchain.
package toolchain

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PratikSonavane14/SFrame/internal/archive"
	"github.com/PratikSonavane14/SFrame/internal/config"
	"github.com/PratikSonavane14/SFrame/internal/env"
	"github.com/PratikSonavane14/SFrame/internal/fetch"
	"github.com/PratikSonavane14/SFrame/internal/state"
	"github.com/PratikSonavane14/SFrame/internal/ui"
	"github.com/PratikSonavane14/SFrame/internal/version"
)

// SourceKind discriminates the resolved acquisition target.
type SourceKind int

const (
	// SourceNone means acquisition is skipped entirely.
	SourceNone SourceKind = iota
	// SourceLocalArchive is an archive already on disk.
	SourceLocalArchive
	// SourceRemoteArchive is an http(s):// or s3:// locator.
	SourceRemoteArchive
)

// Source is the resolved toolchain target. Computed once per run and never
// mutated afterwards.
type Source struct {
	Kind     SourceKind
	Location string
	// Version is nonzero only for default bundles; it is what gets written
	// to the marker after a successful install.
	Version int
}

// UnsupportedPlatformError reports a GOOS with no published bundle.
type UnsupportedPlatformError struct {
	GOOS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("no toolchain bundle is published for platform %q", e.GOOS)
}

// DefaultURL maps (platform, accelerator preference) to the canonical
// bundle URL. Total over {darwin, linux, windows}; windows ignores the
// accelerator axis.
func DefaultURL(mirror, goos string, cuda bool, ver int) (string, error) {
	switch goos {
	case "darwin":
		return fmt.Sprintf("%s/%d/sframe_deps_mac.tar.gz", mirror, ver), nil
	case "windows":
		return fmt.Sprintf("%s/%d/sframe_deps_win64.tar.gz", mirror, ver), nil
	case "linux":
		variant := "no_cuda"
		if cuda {
			variant = "default"
		}
		return fmt.Sprintf("%s/%d/sframe_deps_linux_%s.tar.gz", mirror, ver, variant), nil
	}
	return "", &UnsupportedPlatformError{GOOS: goos}
}

// Resolve chooses the acquisition target for this run.
//
// An explicit non-"default" spec is classified as a local archive when the
// path exists, otherwise as a remote locator. An empty spec reuses an
// existing toolchain; with none present (or with spec "default") the
// platform bundle is selected.
func Resolve(cfg config.Config, st state.PersistedState, goos string) (Source, error) {
	spec := cfg.ToolchainSpec
	if spec != "" && spec != "default" {
		if _, err := os.Stat(spec); err == nil {
			return Source{Kind: SourceLocalArchive, Location: spec}, nil
		}
		if isRemote(spec) {
			return Source{Kind: SourceRemoteArchive, Location: spec}, nil
		}
		return Source{}, fmt.Errorf("toolchain %q is neither an existing file nor a URL", spec)
	}

	if spec == "" && st.HasToolchain {
		return Source{Kind: SourceNone}, nil
	}

	ver := version.Current(goos)
	u, err := DefaultURL(cfg.Mirror, goos, cfg.UseCUDA, ver)
	if err != nil {
		return Source{}, err
	}
	return Source{Kind: SourceRemoteArchive, Location: u, Version: ver}, nil
}

// Install acquires and extracts the resolved source into the working tree.
// The version marker is written only for default bundles, and only after
// extraction succeeds, so an aborted install stays stale.
func Install(ctx context.Context, src Source, dirs env.Dirs) error {
	if src.Kind == SourceNone {
		ui.Debugf("reusing existing toolchain at %s\n", dirs.LocalPrefix())
		return nil
	}

	archivePath := src.Location
	if src.Kind == SourceRemoteArchive {
		archivePath = filepath.Join(dirs.Root, archiveName(src.Location))
		ui.Step("Fetching toolchain bundle %s", src.Location)
		if err := fetch.Fetch(ctx, src.Location, archivePath); err != nil {
			return fmt.Errorf("acquire toolchain: %w", err)
		}
	}

	ui.Step("Extracting %s", filepath.Base(archivePath))
	if err := archive.Extract(archivePath, dirs.Root); err != nil {
		return fmt.Errorf("extract toolchain: %w", err)
	}

	if src.Version > 0 {
		if err := version.WriteMarker(dirs.VersionMarker(), src.Version); err != nil {
			return err
		}
	}
	return nil
}

func isRemote(spec string) bool {
	return strings.HasPrefix(spec, "http://") ||
		strings.HasPrefix(spec, "https://") ||
		strings.HasPrefix(spec, "s3://")
}

// archiveName derives the local filename for a remote locator.
func archiveName(location string) string {
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(location)
}
