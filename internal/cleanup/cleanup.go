// Package cleanup destructively removes every generated and downloaded
// artifact.
package cleanup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/PratikSonavane14/SFrame/internal/env"
	"github.com/PratikSonavane14/SFrame/internal/ui"
)

// Result reports whether cleanup ran or was declined.
type Result int

const (
	Removed Result = iota
	Aborted
)

// Run removes the build directories, the dependency tree, the version
// marker and any downloaded bundles. Unless force is set the user must
// type the exact literal "yes"; anything else aborts with no side effects.
//
// Removal is best effort: individual failures are logged and skipped, and
// there is no rollback.
func Run(dirs env.Dirs, force bool, in io.Reader) (Result, error) {
	if !force {
		if !confirm(in) {
			return Aborted, nil
		}
	}

	targets := []string{
		dirs.ReleaseDir(),
		dirs.DebugDir(),
		dirs.DepsDir(),
		dirs.VersionMarker(),
		filepath.Join(dirs.Root, "CMakeCache.txt"),
	}
	if archives, err := filepath.Glob(dirs.ArchiveGlob()); err == nil {
		targets = append(targets, archives...)
	}

	for _, target := range targets {
		if _, err := os.Lstat(target); err != nil {
			continue
		}
		ui.Debugf("removing %s\n", target)
		if err := os.RemoveAll(target); err != nil {
			ui.Warnf("failed to remove %s: %v (continuing)", target, err)
		}
	}
	return Removed, nil
}

func confirm(in io.Reader) bool {
	if in == nil {
		in = os.Stdin
	}
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		ui.Warnf("cleanup requires confirmation; re-run with --yes in non-interactive sessions")
		return false
	}

	ui.Warnf("This removes the release/, debug/ and deps/ directories, the version marker and all downloaded bundles.")
	fmt.Print("Type 'yes' to confirm: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}
