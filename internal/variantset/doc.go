// Package variantset holds the working state of one variant span while
// it is being edited.
//
// A Set is an ordered list of entries plus two selectors: the active
// index and the last index that pointed at a non-empty entry. Entries
// may be blank while the user types; serialization filters blanks and
// re-derives a sensible active index from the selectors, so the span
// written back to the document never activates an empty candidate.
//
// Structural edits (insert, remove, move) re-map both selectors to keep
// following the same logical entry, not the same numeric position.
// Entry 0 is the original text and is never removed by ordinary edits;
// every operation leaves at least one entry in place.
package variantset
