// SPDX-License-Identifier: AGPL-3.0-or-later
package blueprint

import (
	"fmt"
	"strings"
)

// tokenizeShellWord splits one raw argument into tokens with a single
// left-to-right scan. The result is never empty: input without any
// recognizable placeholder becomes a single TextToken.
func tokenizeShellWord(word string) []Token {
	var tokens []Token
	pos := 0

	for pos < len(word) {
		m := nextPlaceholder(word, pos)
		if m == nil {
			if pos < len(word) {
				tokens = append(tokens, TextToken{Value: word[pos:]})
			}
			break
		}

		if m.start > pos {
			tokens = append(tokens, TextToken{Value: word[pos:m.start]})
		}

		span := word[m.start:m.end]
		if tok := parseField(span); tok != nil {
			tokens = append(tokens, tok)
		} else {
			// Not a valid field (empty name): the span stays literal and
			// scanning continues after it.
			tokens = append(tokens, TextToken{Value: span})
		}

		pos = m.end
	}

	if len(tokens) == 0 {
		tokens = append(tokens, TextToken{Value: word})
	}
	return tokens
}

// placeholderMatch locates one delimited span within a word, delimiters
// included.
type placeholderMatch struct {
	start int
	end   int
}

// nextPlaceholder finds the earliest opening marker at or after startPos
// together with its matching closer. A "{{" and a "{" starting at the
// same offset resolve to "{{". An opener whose closer never appears
// abandons templating for the remainder of the word: nil is returned and
// the caller emits everything from startPos onward as literal text.
func nextPlaceholder(word string, startPos int) *placeholderMatch {
	remaining := word[startPos:]

	startDouble := strings.Index(remaining, "{{")
	startSingle := strings.Index(remaining, "{")
	startOptional := strings.Index(remaining, "[")
	if startSingle != -1 && startSingle == startDouble {
		startSingle = -1
	}

	next := -1
	closer := ""
	for _, c := range []struct {
		idx    int
		closer string
	}{
		{startDouble, "}}"},
		{startSingle, "}"},
		{startOptional, "]"},
	} {
		if c.idx != -1 && (next == -1 || c.idx < next) {
			next = c.idx
			closer = c.closer
		}
	}
	if next == -1 {
		return nil
	}

	endIdx := strings.Index(remaining[next:], closer)
	if endIdx == -1 {
		return nil
	}

	return &placeholderMatch{
		start: startPos + next,
		end:   startPos + next + endIdx + len(closer),
	}
}

// parseField interprets one delimited span, delimiters included. It
// returns nil when the span is not a valid field (empty name), in which
// case the caller keeps the whole span as literal text.
func parseField(span string) Token {
	var content string
	var required bool

	switch {
	case strings.HasPrefix(span, "{{") && strings.HasSuffix(span, "}}"):
		content = span[2 : len(span)-2]
		required = true
	case strings.HasPrefix(span, "{") && strings.HasSuffix(span, "}"):
		content = span[1 : len(span)-1]
		required = true
	case strings.HasPrefix(span, "[") && strings.HasSuffix(span, "]"):
		content = span[1 : len(span)-1]
	default:
		return nil
	}

	name := content
	description := ""
	if i := strings.Index(content, "#"); i != -1 {
		name = content[:i]
		description = strings.TrimSpace(content[i+1:])
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	isArray := false
	if strings.HasSuffix(name, "...") {
		isArray = true
		name = strings.TrimSpace(strings.TrimSuffix(name, "..."))
	}

	var originalFlag string
	if !required && strings.HasPrefix(name, "-") {
		originalFlag = name
		name = strings.TrimLeft(name, "-")
		if description == "" {
			description = fmt.Sprintf("Enable %s flag", originalFlag)
		}
	}

	return FieldToken{
		Name:         name,
		Description:  description,
		Required:     required,
		IsArray:      isArray,
		OriginalFlag: originalFlag,
	}
}
