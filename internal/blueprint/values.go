// SPDX-License-Identifier: AGPL-3.0-or-later
package blueprint

import (
	"fmt"
	"strings"
)

// lookupParam resolves a field name against the supplied parameters,
// trying the exact name, then the name with dashes replaced by
// underscores, then (when the name contains underscores) underscores
// replaced by dashes. First match wins. Both the schema merge and the
// renderer resolve names through this one helper.
func lookupParam(params map[string]any, name string) (any, bool) {
	candidates := []string{name}
	if strings.Contains(name, "-") {
		candidates = append(candidates, strings.ReplaceAll(name, "-", "_"))
	}
	if strings.Contains(name, "_") {
		candidates = append(candidates, strings.ReplaceAll(name, "_", "-"))
	}
	for _, key := range candidates {
		if v, ok := params[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// meaningful reports whether a supplied value counts as present for
// word-inclusion purposes: non-empty strings, true booleans and
// non-empty sequences qualify; any other value qualifies when non-nil.
func meaningful(v any) bool {
	switch t := v.(type) {
	case string:
		return t != ""
	case bool:
		return t
	case []string:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return v != nil
	}
}

// coerceString converts a resolved value to its argument string form.
// Booleans render as the literal "true"/"false"; this path is only
// reachable for non-flag boolean usage and must not fail.
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// asStringSlice normalizes sequence values: []string passes through and
// []any coerces element-wise. ok is false for non-sequence values.
func asStringSlice(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, len(t))
		for i, e := range t {
			out[i] = coerceString(e)
		}
		return out, true
	default:
		return nil, false
	}
}
