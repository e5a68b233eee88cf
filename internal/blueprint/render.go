// SPDX-License-Identifier: AGPL-3.0-or-later
package blueprint

import (
	"fmt"
	"strings"

	"github.com/shellmcp-org/shellmcp/internal/types"
)

// RenderArgs resolves the template against caller-supplied parameter
// values and returns the final argument vector, base command first.
// Validation runs before any rendering: every required name must be
// resolvable and every value supplied for an array-typed parameter must
// actually be a sequence. Presence of the key satisfies "required" even
// when the value is an empty string or an empty sequence.
func (bp *Blueprint) RenderArgs(params map[string]any) ([]string, error) {
	schema := bp.InputSchema()

	for _, name := range schema.Required {
		if _, ok := lookupParam(params, name); !ok {
			return nil, &MissingParamError{Name: name}
		}
	}
	for key, val := range params {
		prop, ok := schema.Properties[normalizeName(key)]
		if !ok || prop.Type != "array" {
			continue
		}
		if _, ok := asStringSlice(val); !ok {
			return nil, &ParamTypeError{Name: key, Got: fmt.Sprintf("%T", val)}
		}
	}

	var out []string
	for _, tokens := range bp.ShellWords {
		out = append(out, renderWord(tokens, schema, params)...)
	}
	return out, nil
}

// renderWord applies the per-word inclusion and rendering policy,
// producing zero or more output arguments for one template word.
func renderWord(tokens []Token, schema types.InputSchema, params map[string]any) []string {
	if !wordIncluded(tokens, params) {
		return nil
	}

	if len(tokens) == 1 {
		if field, ok := tokens[0].(FieldToken); ok {
			if handled, args := renderLoneField(field, schema, params); handled {
				return args
			}
		}
	}

	// General concatenation: mixed words, or a lone required scalar.
	var b strings.Builder
	for _, tok := range tokens {
		switch t := tok.(type) {
		case TextToken:
			b.WriteString(t.Value)
		case FieldToken:
			if v, ok := lookupParam(params, t.Name); ok {
				b.WriteString(coerceString(v))
			}
		}
	}
	if b.Len() == 0 {
		return nil
	}
	return []string{b.String()}
}

// wordIncluded decides whether a word contributes output at all. A word
// made up solely of optional fields, none of which received a
// meaningful value, vanishes entirely.
func wordIncluded(tokens []Token, params map[string]any) bool {
	for _, tok := range tokens {
		switch t := tok.(type) {
		case TextToken:
			return true
		case FieldToken:
			if t.Required {
				return true
			}
			if v, ok := lookupParam(params, t.Name); ok && meaningful(v) {
				return true
			}
		}
	}
	return false
}

// renderLoneField handles a word that is exactly one field token. Array
// fields spread their elements into separate arguments; optional
// booleans emit their flag spelling only on a literal true; optional
// strings emit their non-empty value. A lone required scalar reports
// handled=false and falls through to the concatenation path.
func renderLoneField(field FieldToken, schema types.InputSchema, params map[string]any) (bool, []string) {
	prop := schema.Properties[normalizeName(field.Name)]

	if prop.Type == "array" {
		v, ok := lookupParam(params, field.Name)
		if !ok {
			return true, nil
		}
		elems, _ := asStringSlice(v)
		return true, elems
	}

	if !field.Required {
		v, ok := lookupParam(params, field.Name)
		if prop.Type == "boolean" {
			if ok && v == true {
				flag := field.OriginalFlag
				if flag == "" {
					flag = "-" + field.Name
				}
				return true, []string{flag}
			}
			return true, nil
		}
		if !ok {
			return true, nil
		}
		if s := coerceString(v); s != "" {
			return true, []string{s}
		}
		return true, nil
	}

	return false, nil
}
