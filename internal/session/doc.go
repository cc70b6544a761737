// Package session orchestrates live variant editing against an editor
// surface.
//
// A Coordinator owns at most one editing session per surface key.
// Opening a session locates the target span from the current
// selection, seeds the working set, and tracks the span's document
// range. Every model mutation re-serializes the set and, when it
// forms a valid span, writes it back over the tracked range; the
// range's end follows the new text's length while the start stays
// put.
//
// Text edits coalesce through a debounce: each keystroke restarts a
// single deadline and the write lands after a quiet period, so rapid
// typing causes one document mutation instead of many. Structural
// edits (insert, remove, reorder, active change) are discrete actions
// and write through synchronously.
//
// Committing replaces the tracked range with the active candidate's
// plain text. Abandoning leaves the last valid span in place, or,
// when fewer than two candidates remain, strips the span syntax and
// leaves plain text. Opening a session over a surface that already
// has one abandons the old session first.
package session
