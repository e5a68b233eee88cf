// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shellmcp-org/shellmcp/internal/configloader"
	"github.com/shellmcp-org/shellmcp/internal/debuglog"
	"github.com/shellmcp-org/shellmcp/internal/journal"
	"github.com/shellmcp-org/shellmcp/internal/paths"
	"github.com/shellmcp-org/shellmcp/internal/server"
)

// NewServeCmd creates the :serve command that hosts every tool from a
// YAML config file on one stdio server.
func NewServeCmd() *cobra.Command {
	var (
		configPath   string
		dataDir      string
		journalCalls bool
		debugFlag    bool
		logFile      string
	)

	cmd := &cobra.Command{
		Use:   ":serve",
		Short: "Serve every tool from a config file over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			if logFile != "" {
				if err := debuglog.SetLogFile(logFile); err != nil {
					return err
				}
			} else if debugFlag {
				debuglog.SetDebug(true)
			}

			if dir := resolveDataDir(cmd.Flags(), dataDir); dir != "" {
				paths.SetDataDirOverride(dir)
			}

			tools, err := configloader.Load(configPath)
			if err != nil {
				return err
			}

			cfg := server.Config{Version: version}
			for _, tool := range tools {
				cfg.Tools = append(cfg.Tools, server.ToolDef{
					Name:        tool.Name,
					Description: tool.Description,
					Blueprint:   tool.Blueprint,
					Timeout:     tool.Timeout,
				})
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if journalCalls {
				jnl, err := journal.Open(ctx, journal.Options{})
				if err != nil {
					return fmt.Errorf("open journal: %w", err)
				}
				defer jnl.Close()
				cfg.Journal = jnl
			}

			if err := server.Run(ctx, cfg); err != nil {
				if ctx.Err() != nil {
					// Shutdown initiated; surface as exit 0 after graceful stop.
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "shellmcp.yaml", "Path to the tool config file")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory for persistence (overrides SHELLMCP_DATA_DIR)")
	cmd.Flags().BoolVar(&journalCalls, "journal", false, "Record every tool call in the local call journal")
	cmd.Flags().BoolVar(&debugFlag, "debug", false, "Print debug logs to stderr")
	cmd.Flags().StringVar(&logFile, "log", "", "Write debug logs to the specified file instead of stderr")

	return cmd
}

// resolveDataDir applies precedence: flag > SHELLMCP_DATA_DIR env.
func resolveDataDir(flags *pflag.FlagSet, flagValue string) string {
	if flags.Changed("data-dir") {
		return flagValue
	}
	if env := os.Getenv("SHELLMCP_DATA_DIR"); env != "" {
		return env
	}
	return ""
}
