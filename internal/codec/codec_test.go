package codec

import (
	"reflect"
	"testing"
)

func TestParseSimple(t *testing.T) {
	span, ok := Parse("{{quick|fast}}^1")
	if !ok {
		t.Fatal("expected parse to succeed")
	}

	want := []string{"quick", "fast"}
	if !reflect.DeepEqual(span.Candidates, want) {
		t.Errorf("expected candidates %v, got %v", want, span.Candidates)
	}

	if span.ActiveIndex != 1 {
		t.Errorf("expected active index 1, got %d", span.ActiveIndex)
	}
}

func TestParseSingleCandidate(t *testing.T) {
	span, ok := Parse("{{only}}^0")
	if !ok {
		t.Fatal("expected parse to succeed")
	}

	if len(span.Candidates) != 1 || span.Candidates[0] != "only" {
		t.Errorf("expected [only], got %v", span.Candidates)
	}
}

func TestParsePreservesEmptyCandidates(t *testing.T) {
	span, ok := Parse("{{a||b}}^0")
	if !ok {
		t.Fatal("expected parse to succeed")
	}

	want := []string{"a", "", "b"}
	if !reflect.DeepEqual(span.Candidates, want) {
		t.Errorf("expected %v, got %v", want, span.Candidates)
	}
}

func TestParseRejectsPartial(t *testing.T) {
	cases := []string{
		"",
		"plain text",
		"{{a|b}}",
		"{{a|b}}^",
		"{{a|b}}^x",
		"{{}}^0",
		"x {{a|b}}^0",
		"{{a|b}}^0 y",
		"{{a|{{b}}^0",
	}

	for _, tc := range cases {
		if _, ok := Parse(tc); ok {
			t.Errorf("expected parse of %q to fail", tc)
		}
	}
}

func TestParseOutOfRangeIndex(t *testing.T) {
	// Structurally valid; consumers clamp or fall back.
	span, ok := Parse("{{a|b}}^7")
	if !ok {
		t.Fatal("expected parse to succeed")
	}

	if span.ActiveIndex != 7 {
		t.Errorf("expected active index 7, got %d", span.ActiveIndex)
	}

	if _, ok := span.Active(); ok {
		t.Error("expected Active to report out of range")
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		candidates []string
		active     int
	}{
		{[]string{"a", "b"}, 0},
		{[]string{"a", "b"}, 1},
		{[]string{"quick", "fast", "speedy"}, 2},
		{[]string{"with space", "x"}, 0},
		{[]string{"a", "", "b"}, 0},
	}

	for _, tc := range cases {
		text := Serialize(tc.candidates, tc.active)
		span, ok := Parse(text)
		if !ok {
			t.Fatalf("round trip parse of %q failed", text)
		}
		if !reflect.DeepEqual(span.Candidates, tc.candidates) {
			t.Errorf("round trip candidates: expected %v, got %v", tc.candidates, span.Candidates)
		}
		if span.ActiveIndex != tc.active {
			t.Errorf("round trip active: expected %d, got %d", tc.active, span.ActiveIndex)
		}
	}
}

func TestScan(t *testing.T) {
	text := "start {{a|b}}^0 middle {{c|d}}^1 end"

	matches := Scan(text)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	first := matches[0]
	if first.Raw != "{{a|b}}^0" {
		t.Errorf("expected raw {{a|b}}^0, got %q", first.Raw)
	}
	if text[first.Start:first.End] != first.Raw {
		t.Errorf("offsets do not slice back to raw text")
	}

	second := matches[1]
	if second.Span.ActiveIndex != 1 {
		t.Errorf("expected second active index 1, got %d", second.Span.ActiveIndex)
	}
	if second.Start <= first.End {
		t.Errorf("matches overlap: first end %d, second start %d", first.End, second.Start)
	}
}

func TestScanNoMatches(t *testing.T) {
	if m := Scan("no spans here"); m != nil {
		t.Errorf("expected nil, got %v", m)
	}
}

func TestScanAdjacentSpans(t *testing.T) {
	matches := Scan("{{a|b}}^0{{c|d}}^1")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
}

func TestActiveOffsets(t *testing.T) {
	cases := []struct {
		candidates []string
		active     int
		wantText   string
	}{
		{[]string{"quick", "fast"}, 0, "quick"},
		{[]string{"quick", "fast"}, 1, "fast"},
		{[]string{"a", "bb", "ccc"}, 2, "ccc"},
		{[]string{"a", "bb", "ccc"}, 9, "a"}, // out of range clamps to 0
	}

	for _, tc := range cases {
		span := Span{Candidates: tc.candidates, ActiveIndex: tc.active}
		start, end := ActiveOffsets(span)
		text := span.Serialize()
		if got := text[start:end]; got != tc.wantText {
			t.Errorf("ActiveOffsets(%v, %d): expected %q, got %q", tc.candidates, tc.active, tc.wantText, got)
		}
	}
}

func TestContainsDelimiter(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"plain", false},
		{"has | pipe", true},
		{"open {{", true},
		{"close }}", true},
		{"single { brace", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ContainsDelimiter(tc.text); got != tc.want {
			t.Errorf("ContainsDelimiter(%q): expected %v, got %v", tc.text, tc.want, got)
		}
	}
}
