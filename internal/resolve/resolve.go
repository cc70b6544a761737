// Package resolve commits variant spans back to plain text.
//
// Resolving replaces each span with its active candidate, permanently
// discarding the alternatives. Text without spans passes through
// untouched, and resolving is idempotent: the output contains no span
// syntax, so a second pass is a no-op.
package resolve

import (
	"strings"

	"github.com/dshills/textvar/internal/codec"
	"github.com/dshills/textvar/internal/textbuf"
)

// One resolves a single span to its active candidate text. A span
// whose active index is out of range is re-emitted verbatim rather
// than guessed at; corrupted spans pass through, they are not
// repaired.
func One(span codec.Span) string {
	if text, ok := span.Active(); ok {
		return text
	}
	return span.Serialize()
}

// All resolves every span in text in a single left-to-right pass.
// Unmatched text is appended verbatim, so plain text is returned
// unchanged.
func All(text string) string {
	matches := codec.Scan(text)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Start])
		if active, ok := m.Span.Active(); ok {
			b.WriteString(active)
		} else {
			b.WriteString(m.Raw)
		}
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// AllIn resolves every span inside the given range of a surface,
// replacing the range's text in place. It returns the end point of
// the resolved text.
func AllIn(surface textbuf.Surface, r textbuf.PointRange) (textbuf.Point, error) {
	text, err := surface.TextRange(r)
	if err != nil {
		return textbuf.Point{}, err
	}

	resolved := All(text)
	if resolved == text {
		return r.End, nil
	}
	return surface.ReplaceRange(r, resolved)
}
