// Package locate maps a user selection to the variant span it targets.
//
// Given a single-line selection, the locator either finds an existing
// span (the selection matches one exactly, or merely touches one, in
// which case the selection grows to the span's bounds) or decides that
// a new span must be created from the selected plain text. Only one
// span can be targeted per invocation.
package locate

import (
	"errors"
	"strings"

	"github.com/dshills/textvar/internal/codec"
	"github.com/dshills/textvar/internal/textbuf"
	"github.com/dshills/textvar/internal/variantset"
)

// Validation failures reported to the user. The document is left
// untouched when these are returned.
var (
	ErrMultiLineSelection = errors.New("locate: selection spans multiple lines")
	ErrEmptySelection     = errors.New("locate: selection is empty")
)

// Mode distinguishes creating a new span from editing an existing one.
// The distinction only affects user-facing labels, not the encoding.
type Mode uint8

const (
	ModeCreating Mode = iota
	ModeEditingExisting
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCreating:
		return "creating"
	case ModeEditingExisting:
		return "editing"
	default:
		return "unknown"
	}
}

// Target is the resolved editing target for a selection.
type Target struct {
	// Set holds the initial working state: the existing span's
	// candidates, or the selected text as the sole entry.
	Set *variantset.Set

	// Range covers the text the session tracks and rewrites. For an
	// existing span this is the full span bounds, which may be wider
	// than the original selection.
	Range textbuf.PointRange

	// Mode reports whether the target is a new or existing span.
	Mode Mode
}

// Find resolves the selection on the given surface to an editing
// target. Multi-line and empty selections are rejected.
func Find(surface textbuf.Surface, sel textbuf.PointRange) (Target, error) {
	if !sel.IsSingleLine() {
		return Target{}, ErrMultiLineSelection
	}
	if sel.IsEmpty() {
		return Target{}, ErrEmptySelection
	}

	line := sel.Start.Line
	lineText := surface.LineText(line)
	from := int(sel.Start.Column)
	to := int(sel.End.Column)
	if to > len(lineText) {
		to = len(lineText)
	}
	if from > to {
		from = to
	}
	selected := lineText[from:to]

	// Exact full-span selection parses directly.
	if span, ok := codec.Parse(selected); ok {
		return Target{
			Set:   setFromSpan(span),
			Range: textbuf.LineRange(line, uint32(from), uint32(to)),
			Mode:  ModeEditingExisting,
		}, nil
	}

	// Otherwise the first span the selection touches wins, and the
	// working range grows to the span's bounds.
	for _, m := range codec.Scan(lineText) {
		if !overlaps(from, to, m.Start, m.End) {
			continue
		}
		return Target{
			Set:   setFromSpan(m.Span),
			Range: textbuf.LineRange(line, uint32(m.Start), uint32(m.End)),
			Mode:  ModeEditingExisting,
		}, nil
	}

	// No span touched: the literal selection seeds a new one.
	return Target{
		Set:   variantset.NewFromText(selected, 0),
		Range: textbuf.LineRange(line, uint32(from), uint32(to)),
		Mode:  ModeCreating,
	}, nil
}

// overlaps tests the selection [from, to) against a match
// [start, end): the selection start falling inside the match, the
// selection end falling inside it, or the selection containing the
// match entirely.
func overlaps(from, to, start, end int) bool {
	if from >= start && from < end {
		return true
	}
	if to > start && to <= end {
		return true
	}
	return from <= start && to >= end
}

// setFromSpan seeds the working set from a parsed span. Empty
// placeholder candidates from hand-edited spans are dropped, with the
// active index following its candidate to the filtered position. An
// active index that is out of range or points at a dropped candidate
// falls back to the first candidate.
func setFromSpan(span codec.Span) *variantset.Set {
	kept := make([]string, 0, len(span.Candidates))
	active := 0
	for i, c := range span.Candidates {
		if c == "" {
			continue
		}
		if i == span.ActiveIndex {
			active = len(kept)
		}
		kept = append(kept, c)
	}
	return variantset.NewFromText(strings.Join(kept, "|"), active)
}
