package version

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCurrent(t *testing.T) {
	if got := Current("windows"); got != currentWindows {
		t.Errorf("Current(windows) = %d, want %d", got, currentWindows)
	}
	for _, goos := range []string{"linux", "darwin"} {
		if got := Current(goos); got != currentUnix {
			t.Errorf("Current(%s) = %d, want %d", goos, got, currentUnix)
		}
	}
}

func TestMarkerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deps_version")
	if err := WriteMarker(path, 20160317); err != nil {
		t.Fatalf("WriteMarker() = %v", err)
	}
	v, ok := ReadMarker(path)
	if !ok || v != 20160317 {
		t.Errorf("ReadMarker() = (%d, %v), want (20160317, true)", v, ok)
	}
}

func TestReadMarkerAbsentOrMalformed(t *testing.T) {
	dir := t.TempDir()

	if _, ok := ReadMarker(filepath.Join(dir, "missing")); ok {
		t.Error("ReadMarker(missing) ok = true, want false")
	}

	bad := filepath.Join(dir, "bad")
	if err := os.WriteFile(bad, []byte("not a number\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := ReadMarker(bad); ok {
		t.Error("ReadMarker(malformed) ok = true, want false")
	}
}

func TestIsStale(t *testing.T) {
	const current = 20160317

	tests := []struct {
		name     string
		recorded int
		present  bool
		want     bool
	}{
		{"absent marker is stale", 0, false, true},
		{"older version is stale", 20160301, true, true},
		{"much older version is stale", 9, true, true},
		{"equal version is fresh", current, true, false},
		{"newer version is fresh", 20160401, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStale(tt.recorded, tt.present, current); got != tt.want {
				t.Errorf("IsStale(%d, %v) = %v, want %v", tt.recorded, tt.present, got, tt.want)
			}
		})
	}
}

// Numeric comparison must hold across power-of-ten boundaries where string
// comparison would report "100" < "99".
func TestIsStaleNumericNotLexicographic(t *testing.T) {
	if IsStale(100, true, 99) {
		t.Error("IsStale(100, current=99) = true; comparison is lexicographic, want numeric")
	}
	if !IsStale(99, true, 100) {
		t.Error("IsStale(99, current=100) = false, want true")
	}
}
