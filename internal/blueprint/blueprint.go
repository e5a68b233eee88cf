// SPDX-License-Identifier: AGPL-3.0-or-later
package blueprint

import (
	"fmt"
	"strings"
)

// Blueprint is a parsed command template: the base command plus every
// original shell word tokenized into literal and field fragments.
// A Blueprint is immutable once constructed; deriving a schema or
// rendering arguments never mutates it, so a single instance may be
// shared across concurrent calls.
type Blueprint struct {
	BaseCommand string
	ShellWords  [][]Token
}

// FromArgs builds a Blueprint from an argument vector. args[0] is the
// base command; every element, the base command included, is tokenized
// independently, so word count is preserved exactly.
func FromArgs(args []string) (*Blueprint, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("cannot create blueprint: no command provided")
	}
	if strings.TrimSpace(args[0]) == "" {
		return nil, fmt.Errorf("cannot create blueprint: empty command provided")
	}

	bp := &Blueprint{
		BaseCommand: args[0],
		ShellWords:  make([][]Token, len(args)),
	}
	for i, arg := range args {
		bp.ShellWords[i] = tokenizeShellWord(arg)
	}
	return bp, nil
}

// Format returns the canonical human-readable rendering of the
// template, independent of any parameter values. Words render token by
// token and join with single spaces.
func (bp *Blueprint) Format() string {
	words := make([]string, len(bp.ShellWords))
	for i, tokens := range bp.ShellWords {
		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.Format())
		}
		words[i] = b.String()
	}
	return strings.Join(words, " ")
}
