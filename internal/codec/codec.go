package codec

import (
	"regexp"
	"strconv"
	"strings"
)

// Syntax fragments of the serialized form.
const (
	openDelim  = "{{"
	closeDelim = "}}^"
	sepDelim   = "|"
)

// spanPattern matches one variant span: double-braced candidate list
// followed by a caret and the active index digits. The inner class
// excludes braces so spans never match across each other.
var spanPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}\^(\d+)`)

// fullPattern anchors spanPattern to the whole input.
var fullPattern = regexp.MustCompile(`^\{\{[^{}]+\}\}\^\d+$`)

// Span is the decoded form of one variant span.
type Span struct {
	// Candidates in serialized order. Splitting preserves empty
	// candidates; callers filter if they need to.
	Candidates []string

	// ActiveIndex selects the current candidate. May be out of range
	// for hand-edited text; see Active.
	ActiveIndex int
}

// Active returns the active candidate text and true, or "" and false
// when ActiveIndex is out of range.
func (s Span) Active() (string, bool) {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Candidates) {
		return "", false
	}
	return s.Candidates[s.ActiveIndex], true
}

// Serialize encodes the span back to its textual form.
func (s Span) Serialize() string {
	return Serialize(s.Candidates, s.ActiveIndex)
}

// Match is one span found by Scan, with its byte offsets in the
// scanned text. Start is inclusive, End exclusive.
type Match struct {
	Span  Span
	Start int
	End   int
	Raw   string
}

// Parse decodes text that is exactly one variant span. It returns
// false when text is not a full match; partial or embedded spans are
// found with Scan instead.
func Parse(text string) (Span, bool) {
	if !fullPattern.MatchString(text) {
		return Span{}, false
	}
	m := spanPattern.FindStringSubmatch(text)
	return decode(m[1], m[2]), true
}

// Scan finds every variant span in text, left to right. Matches never
// overlap: scanning resumes after the end of each match, so spans do
// not nest.
func Scan(text string) []Match {
	locs := spanPattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		inner := text[loc[2]:loc[3]]
		digits := text[loc[4]:loc[5]]
		matches = append(matches, Match{
			Span:  decode(inner, digits),
			Start: loc[0],
			End:   loc[1],
			Raw:   text[loc[0]:loc[1]],
		})
	}
	return matches
}

// Serialize encodes a candidate list and active index as span text.
// Candidates must be delimiter-free; Serialize does not validate.
func Serialize(candidates []string, activeIndex int) string {
	var b strings.Builder
	b.WriteString(openDelim)
	for i, c := range candidates {
		if i > 0 {
			b.WriteString(sepDelim)
		}
		b.WriteString(c)
	}
	b.WriteString(closeDelim)
	b.WriteString(strconv.Itoa(activeIndex))
	return b.String()
}

// ActiveOffsets returns the byte range [start, end) that the active
// candidate's own text occupies within the serialized span. An
// out-of-range active index is treated as index 0.
func ActiveOffsets(s Span) (start, end int) {
	idx := s.ActiveIndex
	if idx < 0 || idx >= len(s.Candidates) {
		idx = 0
	}
	start = len(openDelim)
	for i := 0; i < idx; i++ {
		start += len(s.Candidates[i]) + len(sepDelim)
	}
	return start, start + len(s.Candidates[idx])
}

// ContainsDelimiter reports whether s contains any reserved delimiter
// sequence. Input surfaces use this to reject candidate text that
// would corrupt the span on serialization.
func ContainsDelimiter(s string) bool {
	return strings.Contains(s, openDelim) ||
		strings.Contains(s, "}}") ||
		strings.Contains(s, sepDelim)
}

// decode builds a Span from the captured inner text and digit group.
func decode(inner, digits string) Span {
	// The digit group is bounded by the regexp, so this only fails on
	// absurdly long indexes; treat those as 0.
	idx, err := strconv.Atoi(digits)
	if err != nil {
		idx = 0
	}
	return Span{
		Candidates:  strings.Split(inner, sepDelim),
		ActiveIndex: idx,
	}
}
