package textbuf

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrRangeInvalid   = errors.New("textbuf: invalid range")
	ErrLineOutOfRange = errors.New("textbuf: line out of range")
)

// Surface is the narrow editor interface the variant core consumes.
// Any host editor exposing these primitives can host variant editing;
// Buffer is the in-repo implementation.
type Surface interface {
	// Selection returns the current selection range.
	Selection() PointRange

	// SetSelection replaces the current selection range.
	SetSelection(r PointRange)

	// LineCount returns the number of lines.
	LineCount() uint32

	// LineText returns the text of a line without its newline.
	LineText(line uint32) string

	// TextRange returns the text within the given range.
	TextRange(r PointRange) (string, error)

	// ReplaceRange replaces the text within the range and returns the
	// end point of the replacement text.
	ReplaceRange(r PointRange, text string) (Point, error)
}

// Buffer is a thread-safe line-indexed text buffer implementing
// Surface. All methods are safe for concurrent use.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	selection  PointRange
	revisionID RevisionID
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		lines:      []string{""},
		revisionID: NewRevisionID(),
	}
}

// NewBufferFromString creates a buffer with initial content.
// Line endings are normalized to LF.
func NewBufferFromString(s string) *Buffer {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return &Buffer{
		lines:      strings.Split(s, "\n"),
		revisionID: NewRevisionID(),
	}
}

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lines))
}

// LineText returns the text of a specific line (without newline).
// Out-of-range lines return "".
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// LineLen returns the length of a specific line in bytes.
func (b *Buffer) LineLen(line uint32) int {
	return len(b.LineText(line))
}

// Selection returns the current selection range.
func (b *Buffer) Selection() PointRange {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selection
}

// SetSelection replaces the current selection range.
func (b *Buffer) SetSelection(r PointRange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection = r
}

// TextRange returns the text within the given range.
func (b *Buffer) TextRange(r PointRange) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkRange(r); err != nil {
		return "", err
	}

	if r.IsSingleLine() {
		return b.lines[r.Start.Line][r.Start.Column:r.End.Column], nil
	}

	var sb strings.Builder
	sb.WriteString(b.lines[r.Start.Line][r.Start.Column:])
	for line := r.Start.Line + 1; line < r.End.Line; line++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[line])
	}
	sb.WriteByte('\n')
	sb.WriteString(b.lines[r.End.Line][:r.End.Column])
	return sb.String(), nil
}

// ReplaceRange replaces the text within the range and returns the end
// point of the replacement text.
func (b *Buffer) ReplaceRange(r PointRange, text string) (Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRange(r); err != nil {
		return Point{}, err
	}

	prefix := b.lines[r.Start.Line][:r.Start.Column]
	suffix := b.lines[r.End.Line][r.End.Column:]

	newLines := strings.Split(prefix+text+suffix, "\n")
	end := Point{
		Line:   r.Start.Line + uint32(len(newLines)-1),
		Column: uint32(len(newLines[len(newLines)-1]) - len(suffix)),
	}

	replaced := make([]string, 0, len(b.lines)-int(r.End.Line-r.Start.Line)-1+len(newLines))
	replaced = append(replaced, b.lines[:r.Start.Line]...)
	replaced = append(replaced, newLines...)
	replaced = append(replaced, b.lines[r.End.Line+1:]...)
	b.lines = replaced

	b.revisionID = NewRevisionID()
	return end, nil
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// checkRange validates a range against the current content.
// Caller must hold at least a read lock.
func (b *Buffer) checkRange(r PointRange) error {
	if !r.IsValid() {
		return ErrRangeInvalid
	}
	if int(r.End.Line) >= len(b.lines) {
		return ErrLineOutOfRange
	}
	if int(r.Start.Column) > len(b.lines[r.Start.Line]) ||
		int(r.End.Column) > len(b.lines[r.End.Line]) {
		return ErrRangeInvalid
	}
	return nil
}

// Ensure Buffer implements Surface.
var _ Surface = (*Buffer)(nil)
