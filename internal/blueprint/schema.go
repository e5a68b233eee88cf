// SPDX-License-Identifier: AGPL-3.0-or-later
package blueprint

import (
	"fmt"
	"strings"

	"github.com/shellmcp-org/shellmcp/internal/types"
)

const descArrayDefault = "Additional command line arguments"

// normalizeName maps a field name to its schema key: dashes become
// underscores.
func normalizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// InputSchema derives the parameter schema from the template. The
// derivation is a pure function of the token lists: calling it twice on
// the same Blueprint yields identical output. Repeated field names
// merge: the first occurrence fixes the type, later occurrences may
// backfill a missing description, and required-ness is monotonic (once
// required, a name stays required).
func (bp *Blueprint) InputSchema() types.InputSchema {
	schema := types.InputSchema{
		Type:       "object",
		Properties: make(map[string]types.Property),
	}

	for _, tokens := range bp.ShellWords {
		for _, tok := range tokens {
			field, ok := tok.(FieldToken)
			if !ok {
				continue
			}
			name := normalizeName(field.Name)

			if prop, seen := schema.Properties[name]; seen {
				if prop.Description == "" && field.Description != "" {
					prop.Description = field.Description
					schema.Properties[name] = prop
				}
				if field.Required && !containsName(schema.Required, name) {
					schema.Required = append(schema.Required, name)
				}
				continue
			}

			var prop types.Property
			switch {
			case field.OriginalFlag != "":
				prop.Type = "boolean"
				prop.Description = field.Description
				if prop.Description == "" {
					prop.Description = fmt.Sprintf("Enable %s flag", field.OriginalFlag)
				}
			case field.IsArray:
				prop.Type = "array"
				prop.Items = &types.PropertyItems{Type: "string"}
				prop.Description = field.Description
				if prop.Description == "" {
					prop.Description = descArrayDefault
				}
			default:
				prop.Type = "string"
				prop.Description = field.Description
			}
			schema.Properties[name] = prop

			if field.Required && !containsName(schema.Required, name) {
				schema.Required = append(schema.Required, name)
			}
		}
	}

	return schema
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
