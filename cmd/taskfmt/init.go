package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"taskfmt/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default .taskfmt.toml",
	Long: `Write a .taskfmt.toml holding the default configuration into [dir]
(the current directory when omitted). The directory is created when missing.
An existing configuration file is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	path, err := project.InitConfig(target)
	if err != nil {
		if errors.Is(err, project.ErrConfigExists) {
			return fmt.Errorf("project already initialized: %s exists", path)
		}
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}
