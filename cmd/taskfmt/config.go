package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskfmt/internal/logger"
	"taskfmt/internal/project"
)

// loadConfig returns the project configuration: the file named by --config,
// else the nearest .taskfmt.toml above the working directory, else the
// defaults. path is empty when no file was read.
func loadConfig(cmd *cobra.Command) (cfg project.Config, path string, err error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, "", fmt.Errorf("failed to get config flag: %w", err)
	}
	path = explicit
	if path == "" {
		found, ok, err := project.FindConfig(".")
		if err != nil {
			return project.Config{}, "", err
		}
		if !ok {
			return project.DefaultConfig(), "", nil
		}
		path = found
	}

	cfg, warnings, err := project.LoadConfig(path)
	if err != nil {
		return project.Config{}, path, err
	}
	log := logger.FromContext(cmd.Context())
	for _, w := range warnings {
		log.Warn(w.Msg, "file", w.Path, "key", w.Key)
	}
	log.Debug("loaded configuration", "file", path)
	return cfg, path, nil
}
