package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"portfolio/internal/mcp"
	"portfolio/internal/portfolio"

	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
}

func (a *app) callCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-arguments]",
		Short: "Run one tool against the dataset and print its result",
		Example: `  portfolio call search_portfolio '{"query":"cloud","limit":3}'
  portfolio call get_portfolio_item '{"id":5}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) == 2 {
				raw = args[1]
			}
			return a.runCall(cmd, args[0], raw, cmd.OutOrStdout())
		},
	}
}

// newServer loads the dataset once and builds the server around it. A
// missing or broken data file leaves the server answering from an empty
// dataset.
func (a *app) newServer() *mcp.Server {
	loader := portfolio.NewLoader(a.logger, a.cfg.DataCandidates(), a.cfg.MaxDataFileSize)
	engine := portfolio.NewEngine(loader.Load(), a.logger)
	return mcp.NewServer(a.cfg, a.logger, engine)
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := a.newServer()
	if err := srv.Start(ctx); err != nil {
		a.logger.Error("Server error", "error", err)
		return err
	}
	return srv.Stop()
}

func (a *app) runCall(cmd *cobra.Command, tool, rawArgs string, out io.Writer) error {
	args, err := parseArguments(rawArgs)
	if err != nil {
		return err
	}

	text, err := a.newServer().Call(cmd.Context(), tool, args)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

// parseArguments decodes the optional JSON object given on the command line.
func parseArguments(raw string) (map[string]any, error) {
	args := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	return args, nil
}
