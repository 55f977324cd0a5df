// Package main is the entry point for the portfolio MCP server.
//
// Startup sequence:
//
// 1. Load variables from a .env file in the working directory, if present
// 2. Initialize logging (stderr, or portfolio.log when DEBUG is set)
// 3. Load configuration from disk, then apply environment and flag overrides
// 4. Run the selected command; with no command the MCP server is served
// over stdio
//
// Logs never go to stdout: in serve mode it carries the protocol stream.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"portfolio/internal/config"
	"portfolio/internal/logging"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// app carries the state shared by every command.
type app struct {
	configPath string
	dataPath   string
	logLevel   string
	noColor    bool

	logger *logging.AppLogger
	cfg    *config.Config
}

func main() {
	a := &app{}
	if err := a.rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Portfolio MCP server",
		Long: "Serves a portfolio dataset to MCP clients over stdio.\n\n" +
			"Without a subcommand the server is started, so the binary can be\n" +
			"registered with an MCP client as-is.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runServe,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to the config file (default: $PORTFOLIO_CONFIG_PATH or the XDG config dir)")
	flags.StringVar(&a.dataPath, "data", "", "path to the portfolio JSON file, tried before the default locations")
	flags.StringVar(&a.logLevel, "log-level", "", "minimum log level: debug, info, warn, error")

	root.AddCommand(a.serveCmd(), a.toolsCmd(), a.callCmd(), a.configCmd())
	return root
}

// setup loads .env, logging and configuration. Flags win over the
// environment, which wins over the config file.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.setupWithoutConfig(cmd, args); err != nil {
		return err
	}

	var (
		cfg  *config.Config
		err  error
		path = a.configPath
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		path = config.ConfigPath()
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	cfg.ApplyEnv()
	if a.dataPath != "" {
		cfg.DataPath = a.dataPath
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := a.logger.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger.Debug("Configuration loaded", "config", path)
	a.logger.DebugObject("config", *cfg)
	return nil
}

// setupWithoutConfig prepares .env, logging and output styling only.
func (a *app) setupWithoutConfig(_ *cobra.Command, _ []string) error {
	envErr := godotenv.Load()

	if a.logger == nil {
		a.logger = logging.NewAppLogger()
	}
	// config logs through the package default; share one destination
	logging.SetDefault(a.logger)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		a.logger.Warn("Failed to read .env file", "error", envErr)
	}

	if a.logLevel != "" {
		if err := a.logger.SetLevel(a.logLevel); err != nil {
			return err
		}
	}
	if a.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return nil
}
