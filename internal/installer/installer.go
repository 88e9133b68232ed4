// Package installer invokes the external runtime installers. These are
// opaque collaborators: their exit status becomes ours, and a failure
// halts every later stage.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/PratikSonavane14/SFrame/internal/config"
)

// ExitError carries a collaborator's non-zero exit status.
type ExitError struct {
	Stage string
	Code  int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Stage, e.Code)
}

// InstallPythonRuntime runs the Python dependency installer for the
// selected variant.
func InstallPythonRuntime(ctx context.Context, script string, variant config.PythonVariant) error {
	return run(ctx, "python runtime installer", script, string(variant))
}

// InstallRRuntime runs the optional R runtime installer.
func InstallRRuntime(ctx context.Context, script string) error {
	return run(ctx, "R runtime installer", script)
}

func run(ctx context.Context, stage, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Stage: stage, Code: ee.ExitCode()}
	}
	if err != nil {
		return fmt.Errorf("run %s: %w", stage, err)
	}
	return nil
}
