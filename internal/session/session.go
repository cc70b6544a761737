package session

import (
	"errors"
	"time"

	"github.com/dshills/textvar/internal/codec"
	"github.com/dshills/textvar/internal/event"
	"github.com/dshills/textvar/internal/locate"
	"github.com/dshills/textvar/internal/overlay"
	"github.com/dshills/textvar/internal/textbuf"
	"github.com/dshills/textvar/internal/variantset"
)

// Session errors.
var (
	// ErrSessionClosed indicates the session already committed or was
	// abandoned.
	ErrSessionClosed = errors.New("session: session is closed")
)

// State is the lifecycle state of a session.
type State uint8

const (
	// StateEditing is the live state between open and close.
	StateEditing State = iota

	// StateCommitted means the span was resolved to its active
	// candidate.
	StateCommitted

	// StateAbandoned means editing ended without a commit.
	StateAbandoned
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateCommitted:
		return "committed"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Session is one live editing interaction with a single span. All
// methods are safe for concurrent use; they lock through the owning
// coordinator so write-back and range tracking stay consistent.
type Session struct {
	coord   *Coordinator
	id      string
	key     string
	surface textbuf.Surface

	set  *variantset.Set
	mode locate.Mode

	// tracked is the document range holding the span's text. Only the
	// end moves; the start is stable for the session's lifetime.
	tracked     textbuf.PointRange
	lastWritten string

	state State

	// Pending debounced write.
	dirty    bool
	deadline time.Time
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Mode reports whether the session is creating a new span or editing
// an existing one. This only affects user-facing labels.
func (s *Session) Mode() locate.Mode {
	return s.mode
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()
	return s.state
}

// Tracked returns the document range currently holding the span.
func (s *Session) Tracked() textbuf.PointRange {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()
	return s.tracked
}

// Entries returns the working entry list.
func (s *Session) Entries() []string {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()
	return s.set.Entries()
}

// ActiveIndex returns the working active entry index.
func (s *Session) ActiveIndex() int {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()
	return s.set.Active()
}

// SetEntryText replaces one entry's text. The write-back is
// debounced: it lands after the configured quiet period, and each
// call restarts the period.
func (s *Session) SetEntryText(i int, text string) error {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()

	if s.state != StateEditing {
		return ErrSessionClosed
	}
	s.set.SetEntryText(i, text)
	if s.coord.cfg.TrailingRow {
		s.set.EnsureTrailingEmptyRow()
	}
	s.dirty = true
	s.deadline = s.coord.now().Add(s.coord.cfg.Debounce)
	return nil
}

// SetActive selects the active entry and writes through immediately.
func (s *Session) SetActive(i int) error {
	return s.structural(func() { s.set.SetActive(i) })
}

// InsertAt inserts an entry and writes through immediately.
func (s *Session) InsertAt(i int, text string) error {
	return s.structural(func() { s.set.InsertAt(i, text) })
}

// RemoveAt deletes an entry and writes through immediately.
func (s *Session) RemoveAt(i int) error {
	return s.structural(func() { s.set.RemoveAt(i) })
}

// MoveEntry reorders entries and writes through immediately.
// Reordering is a single discrete drop, so it is not debounced.
func (s *Session) MoveEntry(from, to int) error {
	return s.structural(func() { s.set.MoveEntry(from, to) })
}

// ApplyUpdate applies a full-state update from an input surface.
// Updates represent typing, so the write-back is debounced; commit
// and abandon actions go through Commit and Abandon instead.
func (s *Session) ApplyUpdate(entries []string, active int) error {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()

	if s.state != StateEditing {
		return ErrSessionClosed
	}
	s.set.Replace(entries, active)
	if s.coord.cfg.TrailingRow {
		s.set.EnsureTrailingEmptyRow()
	}
	s.dirty = true
	s.deadline = s.coord.now().Add(s.coord.cfg.Debounce)
	return nil
}

// ApplyStructural applies a full-state update representing a discrete
// structural change such as a reorder, delete, or active selection.
// Unlike ApplyUpdate it writes through to the document immediately,
// the same as SetActive, InsertAt, RemoveAt, and MoveEntry.
func (s *Session) ApplyStructural(entries []string, active int) error {
	return s.structural(func() { s.set.Replace(entries, active) })
}

// Flush forces any pending debounced write to land now.
func (s *Session) Flush() error {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()

	if s.state != StateEditing {
		return ErrSessionClosed
	}
	return s.flushLocked()
}

// Commit replaces the tracked range with the active candidate's plain
// text and closes the session. A set that never grew to two live
// candidates commits to its sole candidate's text with no span
// syntax.
func (s *Session) Commit() error {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()

	if s.state != StateEditing {
		return ErrSessionClosed
	}

	text := s.plainText()
	end, err := s.surface.ReplaceRange(s.tracked, text)
	if err != nil {
		return err
	}
	s.tracked.End = end
	s.lastWritten = text
	s.dirty = false
	s.state = StateCommitted
	s.coord.drop(s.key, s)

	s.coord.bus.Publish(event.Event{
		Topic:     event.TopicSpanCommitted,
		SessionID: s.id,
		Range:     s.tracked,
		Text:      text,
	})
	return nil
}

// Abandon closes the session without committing. When the set still
// serializes to a valid span, the last write-back stands (after
// flushing anything pending); otherwise the span syntax is stripped
// and the sole candidate's plain text remains.
func (s *Session) Abandon() error {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()
	return s.abandonLocked()
}

func (s *Session) abandonLocked() error {
	if s.state != StateEditing {
		return ErrSessionClosed
	}

	if _, ok := s.set.Serializable(); ok {
		if err := s.flushLocked(); err != nil {
			return err
		}
	} else if codec.Scan(s.lastWritten) != nil {
		// The document holds span syntax that must not survive.
		text := s.plainText()
		end, err := s.surface.ReplaceRange(s.tracked, text)
		if err != nil {
			return err
		}
		s.tracked.End = end
		s.lastWritten = text
	}

	s.dirty = false
	s.state = StateAbandoned
	s.coord.drop(s.key, s)

	s.coord.bus.Publish(event.Event{
		Topic:     event.TopicSessionAbandoned,
		SessionID: s.id,
		Range:     s.tracked,
		Text:      s.lastWritten,
	})
	return nil
}

// Decorations returns the presentation hints for the span as last
// written, or nil when decorations are disabled or the document holds
// plain text at the tracked range.
func (s *Session) Decorations() []overlay.Decoration {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()

	if !s.coord.cfg.Decorations {
		return nil
	}
	span, ok := codec.Parse(s.lastWritten)
	if !ok {
		return nil
	}
	return overlay.ForSpan(s.tracked, span)
}

// structural runs a discrete model edit with a synchronous write.
func (s *Session) structural(edit func()) error {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()

	if s.state != StateEditing {
		return ErrSessionClosed
	}
	edit()
	if s.coord.cfg.TrailingRow {
		s.set.EnsureTrailingEmptyRow()
	}
	return s.flushLocked()
}

// flushLocked writes the serialized set over the tracked range if it
// forms a valid span and differs from what is already there. The
// range end and the document text update together; callers never
// observe one without the other.
func (s *Session) flushLocked() error {
	s.dirty = false

	span, ok := s.set.Serializable()
	if !ok {
		return nil
	}
	text := span.Serialize()
	if text == s.lastWritten {
		return nil
	}

	end, err := s.surface.ReplaceRange(s.tracked, text)
	if err != nil {
		return err
	}
	s.tracked.End = end
	s.lastWritten = text

	s.coord.bus.Publish(event.Event{
		Topic:     event.TopicSpanUpdated,
		SessionID: s.id,
		Range:     s.tracked,
		Text:      text,
	})
	return nil
}

// plainText is the commit/strip form of the current set: the active
// candidate when the set serializes, otherwise the first live entry,
// falling back to the original entry's text.
func (s *Session) plainText() string {
	if span, ok := s.set.Serializable(); ok {
		if active, ok := span.Active(); ok {
			return active
		}
	}
	if ne := s.set.NonEmpty(); len(ne) > 0 {
		return ne[0].Text
	}
	return s.set.Entry(0)
}
