// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server exposes parsed command blueprints as MCP tools over
// stdio. Each tool derives its input schema from its blueprint; calls
// render the supplied parameters into an argument vector, run it, and
// relay the process output.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/shellmcp-org/shellmcp/internal/blueprint"
	"github.com/shellmcp-org/shellmcp/internal/debuglog"
	"github.com/shellmcp-org/shellmcp/internal/executor"
	"github.com/shellmcp-org/shellmcp/internal/journal"
)

const serverName = "shellmcp"

// ToolDef binds one blueprint to the tool surface it is served under.
type ToolDef struct {
	// Name overrides the derived tool name. Empty derives from the
	// blueprint's base command.
	Name string
	// Description overrides the derived description.
	Description string
	Blueprint   *blueprint.Blueprint
	// Timeout bounds each invocation. Zero means unbounded.
	Timeout time.Duration
}

// Config assembles everything Run needs.
type Config struct {
	Version string
	Tools   []ToolDef
	// Journal, when non-nil, receives a record of every call.
	Journal *journal.Journal
}

// New builds the MCP server and registers every tool.
func New(cfg Config) (*mcpserver.MCPServer, error) {
	s := mcpserver.NewMCPServer(
		serverName,
		cfg.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	for _, def := range cfg.Tools {
		tool, err := toolFromDef(def)
		if err != nil {
			return nil, err
		}
		s.AddTool(tool, callHandler(def, cfg.Journal))
	}
	return s, nil
}

// Run serves the configured tools on stdin/stdout until ctx is
// cancelled or the client disconnects.
func Run(ctx context.Context, cfg Config) error {
	s, err := New(cfg)
	if err != nil {
		return err
	}

	stdio := mcpserver.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(debuglog.Sink(), "", log.LstdFlags))

	debuglog.Logf("serving %d tool(s) on stdio", len(cfg.Tools))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// toolFromDef resolves the tool name, description and raw JSON schema
// for one definition.
func toolFromDef(def ToolDef) (mcp.Tool, error) {
	if def.Blueprint == nil {
		return mcp.Tool{}, fmt.Errorf("tool %q: no blueprint", def.Name)
	}

	name := def.Name
	if name == "" {
		name = ToolName(def.Blueprint.BaseCommand)
	}

	description := def.Description
	if description == "" {
		description = fmt.Sprintf("Run the shell command `%s`", def.Blueprint.Format())
	}

	schemaJSON, err := json.Marshal(def.Blueprint.InputSchema())
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("tool %q: encode schema: %w", name, err)
	}

	return mcp.NewToolWithRawSchema(name, description, json.RawMessage(schemaJSON)), nil
}

// ToolName derives a protocol-safe tool name from a base command: the
// path is stripped to its final element, lowered, and every character
// outside [a-z0-9_-] folds to a dash.
func ToolName(baseCommand string) string {
	base := filepath.Base(strings.TrimSpace(baseCommand))
	lower := strings.ToLower(base)

	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "tool"
	}
	if len(out) > 63 {
		out = out[:63]
	}
	return out
}

// callHandler returns the MCP handler for one tool definition.
// Template errors (missing parameters, type mismatches) and non-zero
// exits are protocol-level tool errors, not transport errors: the
// handler always returns a result so the client sees the diagnostics.
func callHandler(def ToolDef, jnl *journal.Journal) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := req.GetArguments()

		argv, err := def.Blueprint.RenderArgs(params)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		debuglog.Logf("tool %s: running %v", req.Params.Name, argv)
		res, err := executor.Run(ctx, argv, executor.Options{Timeout: def.Timeout})

		if jnl != nil {
			recordErr := jnl.Record(ctx, journal.Entry{
				CallID:   uuid.NewString(),
				Tool:     req.Params.Name,
				Argv:     argv,
				ExitCode: res.ExitCode,
				Duration: res.Duration,
			})
			if recordErr != nil {
				debuglog.Logf("journal record failed: %v", recordErr)
			}
		}

		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if res.ExitCode != 0 {
			detail := strings.TrimSpace(res.Stderr)
			if detail == "" {
				detail = strings.TrimSpace(res.Stdout)
			}
			return mcp.NewToolResultError(fmt.Sprintf("command exited with code %d: %s", res.ExitCode, detail)), nil
		}

		return mcp.NewToolResultText(strings.TrimSuffix(res.Stdout, "\n")), nil
	}
}
