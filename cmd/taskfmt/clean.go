package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskfmt/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the clean-file cache",
	Long:  "Remove every record of the cache that lets taskfmt skip Taskfiles it already formatted.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	dir, err := driver.CacheDir(cacheApp)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache directory not found")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}
	cache, err := driver.NewCleanCache(dir)
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clear %q: %w", dir, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", dir)
	return nil
}
