package cleanup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PratikSonavane14/SFrame/internal/env"
)

// populate lays out a fully built tree.
func populate(t *testing.T) env.Dirs {
	t.Helper()
	dirs := env.Dirs{Root: t.TempDir()}
	for _, d := range []string{dirs.ReleaseDir(), dirs.DebugDir(), dirs.ToolchainBinDir()} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	files := []string{
		dirs.VersionMarker(),
		filepath.Join(dirs.Root, "sframe_deps_linux_no_cuda.tar.gz"),
		filepath.Join(dirs.ReleaseDir(), "CMakeCache.txt"),
	}
	for _, f := range files {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dirs
}

func remaining(t *testing.T, dirs env.Dirs) []string {
	t.Helper()
	entries, err := os.ReadDir(dirs.Root)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRunForcedRemovesEverything(t *testing.T) {
	dirs := populate(t)
	res, err := Run(dirs, true, nil)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if res != Removed {
		t.Fatalf("Run() = %v, want Removed", res)
	}
	if left := remaining(t, dirs); len(left) != 0 {
		t.Errorf("artifacts left after forced cleanup: %v", left)
	}
}

func TestRunDeclinedLeavesTreeUntouched(t *testing.T) {
	for _, input := range []string{"no\n", "y\n", "YES\n", "yes please\n", "\n"} {
		t.Run(strings.TrimSpace(input)+"_input", func(t *testing.T) {
			dirs := populate(t)
			before := remaining(t, dirs)

			res, err := Run(dirs, false, strings.NewReader(input))
			if err != nil {
				t.Fatalf("Run() = %v", err)
			}
			if res != Aborted {
				t.Fatalf("Run() = %v, want Aborted", res)
			}
			after := remaining(t, dirs)
			if len(after) != len(before) {
				t.Errorf("tree mutated on declined cleanup: before %v, after %v", before, after)
			}
		})
	}
}

func TestRunConfirmedWithExactYes(t *testing.T) {
	dirs := populate(t)
	res, err := Run(dirs, false, strings.NewReader("yes\n"))
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if res != Removed {
		t.Fatalf("Run() = %v, want Removed", res)
	}
	if left := remaining(t, dirs); len(left) != 0 {
		t.Errorf("artifacts left after confirmed cleanup: %v", left)
	}
}

func TestRunOnEmptyTree(t *testing.T) {
	dirs := env.Dirs{Root: t.TempDir()}
	res, err := Run(dirs, true, nil)
	if err != nil {
		t.Fatalf("Run() on empty tree = %v", err)
	}
	if res != Removed {
		t.Fatalf("Run() = %v, want Removed", res)
	}
}
