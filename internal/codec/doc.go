// Package codec parses and serializes inline variant spans.
//
// A variant span embeds several alternative texts for one stretch of a
// document directly in the document itself:
//
//	{{quick|fast|speedy}}^1
//
// The candidates are joined by '|' inside double braces, and the trailing
// '^n' records which candidate is currently active (here "fast"). Spans
// are single-line and never nest.
//
// The package provides:
//
//   - Parse: decode a string that is exactly one span
//   - Scan: find every span inside a larger text, left to right
//   - Serialize: encode a candidate list and active index
//   - ActiveOffsets: locate the active candidate inside the serialized form
//
// All functions are pure; the codec holds no state and performs no I/O.
// Empty candidates produced by splitting are preserved here - filtering
// them is the variantset package's job. An active index beyond the
// candidate count is structurally valid; consumers clamp it or fall back
// to the raw span text.
//
// The delimiter characters "{{", "}}" and "|" are reserved. There is no
// escaping mechanism: a candidate containing them corrupts the span.
// Input surfaces should reject them up front via ContainsDelimiter.
package codec
