package variantset

import (
	"strings"

	"github.com/dshills/textvar/internal/codec"
)

// IndexedEntry pairs an entry's text with its original position in the
// set, for views that filter entries out.
type IndexedEntry struct {
	Index int
	Text  string
}

// Set is the mutable model behind one span being edited.
type Set struct {
	entries            []string
	activeIndex        int
	lastNonEmptyActive int
}

// New creates a set with a single blank entry.
func New() *Set {
	return &Set{entries: []string{""}}
}

// NewFromText creates a set from initial text. Text containing the '|'
// separator is treated as an already-delimited candidate list (empty
// pieces dropped); anything else becomes the sole entry. The active
// index is clamped into range.
func NewFromText(text string, active int) *Set {
	var entries []string
	if strings.Contains(text, "|") {
		for _, piece := range strings.Split(text, "|") {
			if piece != "" {
				entries = append(entries, piece)
			}
		}
	}
	if len(entries) == 0 {
		entries = []string{text}
	}

	if active < 0 || active >= len(entries) {
		active = 0
	}

	s := &Set{entries: entries, activeIndex: active}
	if s.eligible(active) {
		s.lastNonEmptyActive = active
	}
	return s
}

// Len returns the number of entries, including blank ones.
func (s *Set) Len() int {
	return len(s.entries)
}

// Entry returns the text at index i, or "" when i is out of range.
func (s *Set) Entry(i int) string {
	if i < 0 || i >= len(s.entries) {
		return ""
	}
	return s.entries[i]
}

// Entries returns a copy of all entries in order.
func (s *Set) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Active returns the index of the currently active entry.
func (s *Set) Active() int {
	return s.activeIndex
}

// SetEntryText replaces the text at index i verbatim. Leading and
// trailing whitespace is kept so in-progress typing survives; only
// emptiness checks use a trimmed view. Out-of-range indexes are
// ignored.
func (s *Set) SetEntryText(i int, text string) {
	if i < 0 || i >= len(s.entries) {
		return
	}
	s.entries[i] = text
}

// EnsureTrailingEmptyRow appends a blank entry when the last entry has
// text, so an interactive surface always has one spare row to type a
// new variant into. The trailing blank never serializes.
func (s *Set) EnsureTrailingEmptyRow() {
	if !blank(s.entries[len(s.entries)-1]) {
		s.entries = append(s.entries, "")
	}
}

// SetActive selects the entry at index i (clamped into range). When
// the entry is non-blank, or is entry 0, it also becomes the fallback
// for serialization should the active entry later be emptied.
func (s *Set) SetActive(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(s.entries) {
		i = len(s.entries) - 1
	}
	s.activeIndex = i
	if s.eligible(i) {
		s.lastNonEmptyActive = i
	}
}

// InsertAt inserts text at index i (clamped into [0, Len]). Both
// selectors shift to keep pointing at the entry they pointed at.
func (s *Set) InsertAt(i int, text string) {
	if i < 0 {
		i = 0
	}
	if i > len(s.entries) {
		i = len(s.entries)
	}
	s.entries = append(s.entries, "")
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = text

	if s.activeIndex >= i {
		s.activeIndex++
	}
	if s.lastNonEmptyActive >= i {
		s.lastNonEmptyActive++
	}
}

// RemoveAt deletes the entry at index i. Selectors pointing past the
// deleted entry shift down; deleting the active entry itself selects
// the entry before it. Removing the final entry leaves a single blank
// placeholder so the set is never empty.
func (s *Set) RemoveAt(i int) {
	if i < 0 || i >= len(s.entries) {
		return
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)

	if len(s.entries) == 0 {
		s.entries = []string{""}
		s.activeIndex = 0
		s.lastNonEmptyActive = 0
		return
	}

	s.activeIndex = remapAfterRemove(s.activeIndex, i)
	s.lastNonEmptyActive = remapAfterRemove(s.lastNonEmptyActive, i)
}

// MoveEntry moves the entry at from to position to, shifting the
// entries between them. Selectors follow their logical entries.
func (s *Set) MoveEntry(from, to int) {
	n := len(s.entries)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}

	entry := s.entries[from]
	if from < to {
		copy(s.entries[from:], s.entries[from+1:to+1])
	} else {
		copy(s.entries[to+1:], s.entries[to:from])
	}
	s.entries[to] = entry

	s.activeIndex = remapAfterMove(s.activeIndex, from, to)
	s.lastNonEmptyActive = remapAfterMove(s.lastNonEmptyActive, from, to)
}

// NonEmpty returns the entries with non-blank text, each paired with
// its original index.
func (s *Set) NonEmpty() []IndexedEntry {
	var out []IndexedEntry
	for i, e := range s.entries {
		if !blank(e) {
			out = append(out, IndexedEntry{Index: i, Text: e})
		}
	}
	return out
}

// Serializable reduces the set to span form. It returns false when
// fewer than two entries have text; such a set must be written back as
// plain text, never as span syntax.
//
// The active index is re-derived over the filtered list so that an
// empty row never becomes the serialized active candidate, while
// typing into a fresh trailing row does not jump the selection away
// from what the user is typing.
func (s *Set) Serializable() (codec.Span, bool) {
	ne := s.NonEmpty()
	if len(ne) < 2 {
		return codec.Span{}, false
	}

	candidates := make([]string, len(ne))
	for i, e := range ne {
		candidates[i] = e.Text
	}

	want := -1
	if s.eligible(s.activeIndex) {
		want = s.activeIndex
	} else {
		want = s.lastNonEmptyActive
	}

	for i, e := range ne {
		if e.Index == want {
			return codec.Span{Candidates: candidates, ActiveIndex: i}, true
		}
	}

	// Neither selector survives filtering. An active selector on the
	// final entry means the user is typing in the trailing row, so
	// stay at the end of the list rather than snapping to the top.
	if s.activeIndex == len(s.entries)-1 {
		return codec.Span{Candidates: candidates, ActiveIndex: len(ne) - 1}, true
	}
	return codec.Span{Candidates: candidates, ActiveIndex: 0}, true
}

// Replace swaps in a whole new entry list and active index, as
// delivered by an input surface's update event. The non-empty
// fallback selector is kept when it still points at an eligible entry,
// otherwise re-seeded from the new active index.
func (s *Set) Replace(entries []string, active int) {
	if len(entries) == 0 {
		entries = []string{""}
	}
	s.entries = make([]string, len(entries))
	copy(s.entries, entries)

	if active < 0 {
		active = 0
	}
	if active >= len(s.entries) {
		active = len(s.entries) - 1
	}
	s.activeIndex = active

	if !s.eligible(s.lastNonEmptyActive) {
		if s.eligible(active) {
			s.lastNonEmptyActive = active
		} else {
			s.lastNonEmptyActive = 0
		}
	}
}

// eligible reports whether index i may serve as the non-empty
// fallback. Entry 0 is the original text and always qualifies.
func (s *Set) eligible(i int) bool {
	if i == 0 {
		return true
	}
	if i < 0 || i >= len(s.entries) {
		return false
	}
	return !blank(s.entries[i])
}

func blank(text string) bool {
	return strings.TrimSpace(text) == ""
}

func remapAfterRemove(sel, removed int) int {
	switch {
	case sel > removed:
		return sel - 1
	case sel == removed:
		if removed > 0 {
			return removed - 1
		}
		return 0
	default:
		return sel
	}
}

func remapAfterMove(sel, from, to int) int {
	switch {
	case sel == from:
		return to
	case from < to && sel > from && sel <= to:
		return sel - 1
	case to < from && sel >= to && sel < from:
		return sel + 1
	default:
		return sel
	}
}
