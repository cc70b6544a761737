package overlay

import (
	"testing"

	"github.com/dshills/textvar/internal/codec"
	"github.com/dshills/textvar/internal/textbuf"
)

func TestForSpanMiddleCandidate(t *testing.T) {
	// Line: "x {{a|bb|c}}^1 y", span at columns [2, 14).
	span := codec.Span{Candidates: []string{"a", "bb", "c"}, ActiveIndex: 1}
	spanRange := textbuf.LineRange(0, 2, 14)

	decs := ForSpan(spanRange, span)
	if len(decs) != 3 {
		t.Fatalf("expected 3 decorations, got %d", len(decs))
	}

	// "{{a|" concealed, "bb" active, "|c}}^1" concealed.
	if decs[0].Kind != KindConceal || decs[0].Range != textbuf.LineRange(0, 2, 6) {
		t.Errorf("unexpected leading conceal: %s %s", decs[0].Kind, decs[0].Range)
	}
	if decs[1].Kind != KindActive || decs[1].Range != textbuf.LineRange(0, 6, 8) {
		t.Errorf("unexpected active range: %s %s", decs[1].Kind, decs[1].Range)
	}
	if decs[2].Kind != KindConceal || decs[2].Range != textbuf.LineRange(0, 8, 14) {
		t.Errorf("unexpected trailing conceal: %s %s", decs[2].Kind, decs[2].Range)
	}
}

func TestForSpanActiveAboveConceal(t *testing.T) {
	span := codec.Span{Candidates: []string{"a", "b"}, ActiveIndex: 0}
	decs := ForSpan(textbuf.LineRange(0, 0, 9), span)

	for _, d := range decs {
		if d.Kind == KindActive && d.Priority <= PriorityNormal {
			t.Error("active decoration should outrank conceal decorations")
		}
	}
}

func TestForSpanRejectsMultiLine(t *testing.T) {
	span := codec.Span{Candidates: []string{"a", "b"}, ActiveIndex: 0}
	r := textbuf.NewPointRange(textbuf.Point{Line: 0, Column: 0}, textbuf.Point{Line: 1, Column: 2})

	if decs := ForSpan(r, span); decs != nil {
		t.Errorf("expected nil for multi-line range, got %v", decs)
	}
}

func TestForSpanRejectsMismatchedRange(t *testing.T) {
	span := codec.Span{Candidates: []string{"abcdef", "ghijkl"}, ActiveIndex: 1}
	// Far too narrow for the span's serialized text.
	if decs := ForSpan(textbuf.LineRange(0, 0, 4), span); decs != nil {
		t.Errorf("expected nil for mismatched range, got %v", decs)
	}
}

func TestForSpanCoversWholeRange(t *testing.T) {
	span := codec.Span{Candidates: []string{"one", "two"}, ActiveIndex: 1}
	text := span.Serialize()
	decs := ForSpan(textbuf.LineRange(3, 10, 10+uint32(len(text))), span)

	var covered uint32 = 10
	for _, d := range decs {
		if d.Range.Start.Column != covered {
			t.Fatalf("gap in coverage at column %d", covered)
		}
		covered = d.Range.End.Column
	}
	if covered != 10+uint32(len(text)) {
		t.Errorf("decorations stop at %d, expected %d", covered, 10+len(text))
	}
}
