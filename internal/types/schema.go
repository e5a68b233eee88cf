// SPDX-License-Identifier: AGPL-3.0-or-later
package types

// Property describes one parameter advertised for a tool.
type Property struct {
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Items       *PropertyItems `json:"items,omitempty"`
}

// PropertyItems constrains the element type of array properties.
type PropertyItems struct {
	Type string `json:"type"`
}

// InputSchema is the JSON-schema object shape advertised to clients.
// Properties is always non-nil so parameterless tools marshal as {}.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}
