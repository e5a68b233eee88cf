// SPDX-License-Identifier: AGPL-3.0-or-later

// Package blueprint parses command templates into token lists, derives
// parameter schemas from them and renders concrete argument vectors.
package blueprint

// Token is one fragment of a tokenized shell word. Exactly two variants
// exist: TextToken and FieldToken.
type Token interface {
	// Format returns the canonical display form of the fragment, used
	// when describing the command to a client.
	Format() string
}

// TextToken is an immutable literal fragment, rendered verbatim.
type TextToken struct {
	Value string
}

func (t TextToken) Format() string { return t.Value }

// FieldToken is one placeholder occurrence within a template word.
type FieldToken struct {
	Name        string
	Description string
	Required    bool
	IsArray     bool
	// OriginalFlag holds the literal flag spelling (e.g. "--force") when
	// the field is a boolean flag; empty otherwise.
	OriginalFlag string
}

// Format renders the field in its documentation form: {{name}} for
// required fields, [name] for optional ones. Boolean flags keep their
// original dash spelling and array fields keep the "..." suffix.
func (t FieldToken) Format() string {
	display := t.Name
	if t.OriginalFlag != "" {
		display = t.OriginalFlag
	}
	if t.IsArray {
		display += "..."
	}
	if t.Required {
		return "{{" + display + "}}"
	}
	return "[" + display + "]"
}
