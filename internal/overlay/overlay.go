// Package overlay computes presentational decoration hints for variant
// spans: which parts of a span's text a host should conceal and which
// part is the active candidate to render inline and editable.
//
// Decorations are cosmetic. The authoritative content is always the
// underlying document text; a host that cannot render decorations
// simply shows the raw span syntax.
package overlay

import (
	"github.com/dshills/textvar/internal/codec"
	"github.com/dshills/textvar/internal/textbuf"
)

// Kind represents the kind of decoration.
type Kind uint8

const (
	// KindConceal marks span syntax and inactive candidates that the
	// host should render invisible or zero-width.
	KindConceal Kind = iota

	// KindActive marks the active candidate's text, rendered inline
	// and editable in place.
	KindActive
)

// String returns the string representation of the decoration kind.
func (k Kind) String() string {
	switch k {
	case KindConceal:
		return "conceal"
	case KindActive:
		return "active"
	default:
		return "unknown"
	}
}

// Priority represents the rendering priority of decorations.
// Higher priority decorations are rendered on top.
type Priority uint8

const (
	PriorityLow    Priority = 50
	PriorityNormal Priority = 100
	PriorityHigh   Priority = 150
)

// Decoration is one visual hint over a document range.
type Decoration struct {
	Kind     Kind
	Range    textbuf.PointRange
	Priority Priority
}

// ForSpan computes the decorations for a span occupying spanRange in
// the document. The range must be single-line (spans always are).
// The result conceals the leading syntax and any candidates before the
// active one, marks the active candidate's own text, then conceals the
// rest.
func ForSpan(spanRange textbuf.PointRange, span codec.Span) []Decoration {
	if !spanRange.IsSingleLine() {
		return nil
	}

	line := spanRange.Start.Line
	base := spanRange.Start.Column
	width := spanRange.End.Column - base

	start, end := codec.ActiveOffsets(span)
	if uint32(end) > width {
		// Range and span disagree; refuse to decorate rather than
		// point the host at the wrong text.
		return nil
	}

	var decs []Decoration
	if start > 0 {
		decs = append(decs, Decoration{
			Kind:     KindConceal,
			Range:    textbuf.LineRange(line, base, base+uint32(start)),
			Priority: PriorityNormal,
		})
	}
	decs = append(decs, Decoration{
		Kind:     KindActive,
		Range:    textbuf.LineRange(line, base+uint32(start), base+uint32(end)),
		Priority: PriorityHigh,
	})
	if uint32(end) < width {
		decs = append(decs, Decoration{
			Kind:     KindConceal,
			Range:    textbuf.LineRange(line, base+uint32(end), base+width),
			Priority: PriorityNormal,
		})
	}
	return decs
}
