package config

import (
	"errors"
	"os"
	"testing"
)

// chdir is t.Chdir from Go 1.24, inlined so the tests run on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Error(err)
		}
	})
}

func TestPythonVariant(t *testing.T) {
	tests := []struct {
		name     string
		python3  bool
		python35 bool
		want     PythonVariant
		wantErr  error
	}{
		{name: "default is 2.7", want: Python27},
		{name: "python3 selects 3.4", python3: true, want: Python34},
		{name: "python3.5 selects 3.5", python35: true, want: Python35},
		{name: "both variants conflict", python3: true, python35: true, wantErr: ErrConflictingPython},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{WantPython3: tt.python3, WantPython35: tt.python35}
			got, err := c.PythonVariant()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("PythonVariant() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PythonVariant() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("PythonVariant() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateDefines(t *testing.T) {
	c := Config{Defines: []string{"FOO=1", "BAR=baz"}}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	c = Config{Defines: []string{"FOO"}}
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for malformed definition")
	}
}

func TestResolveAmbientDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	// Ambient env must not leak into the test.
	for _, key := range []string{"SFRAME_DEPS_MIRROR", "SFRAME_CC", "SFRAME_CXX", "CC", "CXX"} {
		t.Setenv(key, "")
	}

	var c Config
	if err := c.ResolveAmbient(); err != nil {
		t.Fatalf("ResolveAmbient() = %v", err)
	}
	d := Defaults()
	if c.Mirror != d.Mirror {
		t.Errorf("Mirror = %q, want %q", c.Mirror, d.Mirror)
	}
	if c.CCName != d.CCName || c.CXXName != d.CXXName {
		t.Errorf("compilers = %q/%q, want %q/%q", c.CCName, c.CXXName, d.CCName, d.CXXName)
	}
}

func TestResolveAmbientEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SFRAME_DEPS_MIRROR", "https://mirror.example.com/deps")
	t.Setenv("CC", "gcc-13")

	var c Config
	if err := c.ResolveAmbient(); err != nil {
		t.Fatalf("ResolveAmbient() = %v", err)
	}
	if c.Mirror != "https://mirror.example.com/deps" {
		t.Errorf("Mirror = %q, want env override", c.Mirror)
	}
	if c.CCName != "gcc-13" {
		t.Errorf("CCName = %q, want %q", c.CCName, "gcc-13")
	}
}
