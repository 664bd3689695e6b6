package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"taskfmt/internal/logger"
	"taskfmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "taskfmt",
	Short: "Taskfile formatter",
	Long: `taskfmt rewrites Taskfiles into a canonical layout: ordered top-level
sections, upper-case variables, kebab-case task names, tidy template
directives and blank lines between blocks.`,
	PersistentPreRunE: setupRun,
}

func init() {
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit logs as JSON")
	rootCmd.PersistentFlags().String("config", "", "path to .taskfmt.toml (default: search upwards)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to this file")
}

// main executes the root command. Any returned error is printed once and
// the process exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if profErr := stopProfiling(); profErr != nil {
		fmt.Fprintf(os.Stderr, "taskfmt: %v\n", profErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "taskfmt: %v\n", err)
		os.Exit(1)
	}
}

// setupRun installs the logger requested by the persistent flags, makes it
// reachable through the command context and starts any requested profilers.
func setupRun(cmd *cobra.Command, _ []string) error {
	level, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	logJSON, err := cmd.Root().PersistentFlags().GetBool("log-json")
	if err != nil {
		return fmt.Errorf("failed to get log-json flag: %w", err)
	}
	if err := logger.Setup(level, logJSON); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithLogger(ctx, logger.Default()))
	return setupProfiling(cmd)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves --color for output written to f.
func colorEnabled(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return os.Getenv("NO_COLOR") == "" && isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}
