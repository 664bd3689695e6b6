package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskfmt/internal/prof"
)

var activeProfile *prof.Session

// setupProfiling starts the profilers requested by the persistent flags.
// stopProfiling must run once the command returns.
func setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root()

	var opts prof.Options
	var err error
	if opts.CPU, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	activeProfile = session
	return nil
}

func stopProfiling() error {
	session := activeProfile
	activeProfile = nil
	return session.Stop()
}
