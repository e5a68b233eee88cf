// SPDX-License-Identifier: AGPL-3.0-or-later
package types

// ToolConfig defines one tool entry in a serve-mode config file.
// Exactly one of Command or Args supplies the template words; Args wins
// when both are present.
type ToolConfig struct {
	Name        string   `yaml:"name,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Command     string   `yaml:"command,omitempty"`
	Args        []string `yaml:"args,omitempty"`
	Timeout     string   `yaml:"timeout,omitempty"`
}

// Config is the root document of a serve-mode config file.
type Config struct {
	Tools []ToolConfig `yaml:"tools"`
}
