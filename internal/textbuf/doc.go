// Package textbuf provides the editor-surface collaborator the variant
// core talks to: a thread-safe line-indexed text buffer with point and
// range primitives, selection tracking, and range replacement.
//
// The core depends only on the Surface interface, so any host editor
// exposing selection, line access, and range replacement can stand in.
// Buffer is the in-repo implementation, used by the CLI and tests.
//
// Positions are Points: 0-indexed line and column, with the column
// measured in bytes from the start of the line. Ranges are [Start, End)
// with Start <= End lexicographically by line then column.
package textbuf
