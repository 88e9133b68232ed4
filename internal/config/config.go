// Package config holds the parsed command line and ambient settings.
// The Config value is built once at startup and read-only afterwards;
// nothing downstream mutates it.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// PythonVariant selects the Python runtime the build is configured against.
type PythonVariant string

const (
	Python27 PythonVariant = "2.7"
	Python34 PythonVariant = "3.4"
	Python35 PythonVariant = "3.5"
)

// ErrConflictingPython reports that two Python variants were requested.
var ErrConflictingPython = errors.New("only one Python variant may be selected")

// Config is the full flag set plus ambient settings resolved from the
// environment and the optional config file.
type Config struct {
	// Flag surface.
	ToolchainSpec    string   // empty | "default" | path | URL
	Cleanup          bool
	CleanupIfInvalid bool
	Yes              bool
	CMakeOnly        bool
	PythonOnly       bool
	UseCUDA          bool
	WantPython3      bool
	WantPython35     bool
	RIntegration     bool
	Generator        string
	Defines          []string // raw key=value passthrough, order preserved

	// Ambient settings (env / config file, not flags).
	Mirror          string
	CCName          string
	CXXName         string
	PythonInstaller string
	RInstaller      string
}

// Defaults returns the ambient defaults before env and file layering.
func Defaults() Config {
	return Config{
		Mirror:          "https://s3.amazonaws.com/sframe-deps",
		CCName:          "cc",
		CXXName:         "c++",
		PythonInstaller: "./scripts/install_python_deps.sh",
		RInstaller:      "./scripts/install_r_deps.sh",
	}
}

// ResolveAmbient layers the optional sframe-configure config file and
// SFRAME_* environment variables over the built-in ambient defaults.
// Flag values already set on c are left untouched.
func (c *Config) ResolveAmbient() error {
	v := viper.New()
	d := Defaults()
	v.SetDefault("deps_mirror", d.Mirror)
	v.SetDefault("cc", d.CCName)
	v.SetDefault("cxx", d.CXXName)
	v.SetDefault("python_installer", d.PythonInstaller)
	v.SetDefault("r_installer", d.RInstaller)

	v.SetConfigName("sframe-configure")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SFRAME")
	v.AutomaticEnv()
	// CC/CXX follow the conventional compiler variables too.
	if err := v.BindEnv("cc", "SFRAME_CC", "CC"); err != nil {
		return fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv("cxx", "SFRAME_CXX", "CXX"); err != nil {
		return fmt.Errorf("bind env: %w", err)
	}

	c.Mirror = v.GetString("deps_mirror")
	c.CCName = v.GetString("cc")
	c.CXXName = v.GetString("cxx")
	c.PythonInstaller = v.GetString("python_installer")
	c.RInstaller = v.GetString("r_installer")
	return nil
}

// PythonVariant resolves the variant flags, rejecting conflicting selections.
func (c Config) PythonVariant() (PythonVariant, error) {
	if c.WantPython3 && c.WantPython35 {
		return "", ErrConflictingPython
	}
	switch {
	case c.WantPython35:
		return Python35, nil
	case c.WantPython3:
		return Python34, nil
	}
	return Python27, nil
}

// Validate checks the flag surface before any stage runs or state mutates.
func (c Config) Validate() error {
	if _, err := c.PythonVariant(); err != nil {
		return err
	}
	for _, def := range c.Defines {
		if !strings.Contains(def, "=") {
			return fmt.Errorf("malformed definition %q: want key=value", def)
		}
	}
	return nil
}
