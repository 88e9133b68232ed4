package internal

import (
	"errors"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/PratikSonavane14/SFrame/internal/config"
	"github.com/PratikSonavane14/SFrame/internal/installer"
	"github.com/PratikSonavane14/SFrame/internal/toolchain"
	"github.com/PratikSonavane14/SFrame/internal/ui"
)

var (
	cfg config.Config

	// cuda/noCUDA mirror the two exclusive flags; UseCUDA is derived.
	cudaFlag   bool
	noCUDAFlag bool

	// helpShown flips when cobra renders help, so Execute can map a
	// help-only run to a non-zero status.
	helpShown bool
)

// Sentinels for cleanup outcomes. Both map to status 1, but a declined
// confirmation gets its own message.
var (
	errCleanupComplete = errors.New("cleanup complete")
	errCleanupDeclined = errors.New("cleanup declined")
)

var rootCmd = &cobra.Command{
	Use:   "configure",
	Short: "configure prepares the SFrame build tree",
	Long: `configure installs the dependency toolchain and runtimes, then
generates the release and debug build directories.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.UseCUDA = cudaFlag
		return run(cmd.Context(), &cfg)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cfg.ToolchainSpec, "toolchain", "", "Toolchain source: default, a local archive path, or a URL")
	f.BoolVar(&cudaFlag, "cuda", false, "Install the CUDA-enabled toolchain")
	f.BoolVar(&noCUDAFlag, "no_cuda", false, "Install the toolchain without CUDA support (default)")
	f.BoolVar(&cfg.Cleanup, "cleanup", false, "Remove all build artifacts and installed dependencies, then exit")
	f.BoolVar(&cfg.CleanupIfInvalid, "cleanup_if_invalid", false, "Automatically clean up when the installed toolchain is stale")
	f.BoolVar(&cfg.Yes, "yes", false, "Skip confirmation prompts")
	f.BoolVar(&cfg.CMakeOnly, "cmake_only", false, "Only generate the build directories; skip installation")
	f.BoolVar(&cfg.PythonOnly, "python_only", false, "Only install the Python runtime; skip generation")
	f.BoolVar(&cfg.WantPython3, "python3", false, "Configure against Python 3.4")
	f.BoolVar(&cfg.WantPython35, "python3.5", false, "Configure against Python 3.5")
	f.BoolVar(&cfg.RIntegration, "R_integration", false, "Enable R language integration")
	f.StringVar(&cfg.Generator, "generator", "", "Build system generator to use")
	f.StringArrayVarP(&cfg.Defines, "define", "D", nil, "Extra key=value definition passed through to the generator (repeatable)")

	rootCmd.MarkFlagsMutuallyExclusive("cuda", "no_cuda")
	rootCmd.MarkFlagsMutuallyExclusive("cmake_only", "python_only")
	rootCmd.MarkFlagsMutuallyExclusive("python3", "python3.5")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpShown = true
		defaultHelp(cmd, args)
	})
}

// Execute runs the root command and maps its outcome to a process status.
// Help and every error path exit 1, except collaborators with their own
// non-zero status, which is passed through unchanged.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		if helpShown {
			return 1
		}
		return 0
	}

	switch {
	case errors.Is(err, errCleanupComplete):
		return 1
	case errors.Is(err, errCleanupDeclined):
		ui.Warnf("cleanup declined, nothing removed")
		return 1
	}

	var installErr *installer.ExitError
	if errors.As(err, &installErr) {
		ui.Errorf("%v", installErr)
		return installErr.Code
	}
	var execErr *exec.ExitError
	if errors.As(err, &execErr) {
		ui.Errorf("%v", err)
		return execErr.ExitCode()
	}
	var platErr *toolchain.UnsupportedPlatformError
	if errors.As(err, &platErr) {
		ui.Errorf("%v", platErr)
		return 1
	}

	ui.Errorf("%v", err)
	return 1
}
