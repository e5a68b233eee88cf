// SPDX-License-Identifier: AGPL-3.0-or-later

// Package configloader reads the multi-tool YAML configuration consumed
// by the serve command.
package configloader

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/shellmcp-org/shellmcp/internal/blueprint"
	"github.com/shellmcp-org/shellmcp/internal/types"
	"gopkg.in/yaml.v3"
)

// Tool is one fully resolved tool definition: parsed template, resolved
// name and an optional execution timeout.
type Tool struct {
	Name        string
	Description string
	Blueprint   *blueprint.Blueprint
	Timeout     time.Duration
}

// Load reads and validates the YAML config at path. Each tool entry
// supplies its command either as an args list or as a single command
// string split with shell quoting rules; the list wins when both are
// present. Tool names default to the blueprint's base command and must
// be unique across the file.
func Load(path string) ([]Tool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg types.Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Tools) == 0 {
		return nil, fmt.Errorf("config %s defines no tools", path)
	}

	tools := make([]Tool, 0, len(cfg.Tools))
	seen := make(map[string]struct{}, len(cfg.Tools))
	for i, tc := range cfg.Tools {
		tool, err := resolveTool(tc)
		if err != nil {
			return nil, fmt.Errorf("tool %d: %w", i, err)
		}
		if _, dup := seen[tool.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", tool.Name)
		}
		seen[tool.Name] = struct{}{}
		tools = append(tools, tool)
	}
	return tools, nil
}

func resolveTool(tc types.ToolConfig) (Tool, error) {
	args := tc.Args
	if len(args) == 0 {
		cmd := strings.TrimSpace(tc.Command)
		if cmd == "" {
			return Tool{}, fmt.Errorf("missing command")
		}
		split, err := shellquote.Split(cmd)
		if err != nil {
			return Tool{}, fmt.Errorf("split command %q: %w", cmd, err)
		}
		args = split
	}

	bp, err := blueprint.FromArgs(args)
	if err != nil {
		return Tool{}, err
	}

	name := strings.TrimSpace(tc.Name)
	if name == "" {
		name = bp.BaseCommand
	}

	var timeout time.Duration
	if raw := strings.TrimSpace(tc.Timeout); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return Tool{}, fmt.Errorf("parse timeout %q: %w", raw, err)
		}
		if timeout < 0 {
			return Tool{}, fmt.Errorf("negative timeout %q", raw)
		}
	}

	return Tool{
		Name:        name,
		Description: strings.TrimSpace(tc.Description),
		Blueprint:   bp,
		Timeout:     timeout,
	}, nil
}
