package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"portfolio/internal/config"

	"github.com/spf13/cobra"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Locate or create the config file",

		// the file may not exist yet, or may be the broken one being replaced
		PersistentPreRunE: a.setupWithoutConfig,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configFilePath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", err)
			}

			cfg := config.DefaultConfig()
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			a.logger.Info("Config file written", "path", path)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.configFilePath())
			return err
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}

// configFilePath is the --config flag, or the default location.
func (a *app) configFilePath() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.ConfigPath()
}
