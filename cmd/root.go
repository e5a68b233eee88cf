// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shellmcp-org/shellmcp/internal/blueprint"
	"github.com/shellmcp-org/shellmcp/internal/debuglog"
	"github.com/shellmcp-org/shellmcp/internal/server"
)

var (
	// Version information set by main.
	version string
	commit  string
	date    string
)

var errHelpRequested = errors.New("help requested")

// hostFlags are the flags shellmcp consumes itself. Everything after
// them belongs to the command template.
type hostFlags struct {
	debug   bool
	version bool
	logFile string
}

// scanArgs splits the raw argument vector into host flags and the
// command template. Flag parsing stops at the first non-flag argument
// or at "--", so the template may freely contain words that look like
// flags.
func scanArgs(args []string) (hostFlags, []string, error) {
	var flags hostFlags
	i := 0

	for i < len(args) {
		arg := args[i]

		if arg == "--" {
			i++
			break
		}
		if !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "--debug":
			flags.debug = true
		case "--version":
			flags.version = true
		case "--log":
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				return hostFlags{}, nil, fmt.Errorf("--log requires a filename argument")
			}
			i++
			flags.logFile = args[i]
		case "-h", "--help":
			return hostFlags{}, nil, errHelpRequested
		default:
			return hostFlags{}, nil, fmt.Errorf("unknown flag: %s", arg)
		}

		i++
	}

	return flags, args[i:], nil
}

var rootCmd = &cobra.Command{
	Use:   "shellmcp [--debug] [--log filename] [--] <command> [args...]",
	Short: "Serve a shell command as a single MCP tool",
	Long: `shellmcp exposes one shell command as an MCP server over stdio.

  -h, --help - Show this help message and exit.
  --version - Show version information and exit.
  --debug - Print debug logs to stderr to diagnose MCP server issues.
  --log <filename> - Write debug logs to the specified file instead of stderr.
  -- - End of flag parsing. Everything after this is treated as command arguments.

The command starts at the first non-flag argument. Later words may be
templated, as whole shell words or embedded in one:

  "{req # required arg}" - a required string parameter named 'req'.
  "[opt # optional string]" - an optional string parameter named 'opt'.
  "[args... # array of args]" - an optional array parameter named 'args'.
  "[-f]" - an optional boolean flag parameter.
  "https://example.com/{page}" - a partially templated word.

Example:
  shellmcp say -v siri "{speech # a concise phrase to say out loud}"`,
	// Flag parsing is manual so the command template can contain flags.
	DisableFlagParsing: true,
	Args: func(cmd *cobra.Command, args []string) error {
		flags, commandArgs, err := scanArgs(args)
		if err != nil {
			if errors.Is(err, errHelpRequested) {
				return nil
			}
			return err
		}
		if flags.version {
			return nil
		}
		if len(commandArgs) == 0 {
			return fmt.Errorf("usage: shellmcp <command> \"{req # required arg}\" \"[args... # array of args]\"")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		flags, commandArgs, err := scanArgs(args)
		if err != nil {
			if errors.Is(err, errHelpRequested) {
				return cmd.Help()
			}
			return err
		}

		if flags.version {
			cmd.Printf("shellmcp %s\n", version)
			cmd.Printf("commit: %s\n", commit)
			cmd.Printf("built: %s\n", date)
			return nil
		}

		if flags.logFile != "" {
			if err := debuglog.SetLogFile(flags.logFile); err != nil {
				return err
			}
		} else if flags.debug {
			debuglog.SetDebug(true)
		}
		debuglog.Logf("command template: %v", commandArgs)

		bp, err := blueprint.FromArgs(commandArgs)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err = server.Run(ctx, server.Config{
			Version: version,
			Tools:   []server.ToolDef{{Blueprint: bp}},
		})
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

// Execute is called by main with build metadata and runs the CLI.
func Execute(v, c, d string) {
	version = v
	commit = c
	date = d

	rootCmd.AddCommand(NewServeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
