package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/textvar/internal/config"
	"github.com/dshills/textvar/internal/dialog"
	"github.com/dshills/textvar/internal/event"
	"github.com/dshills/textvar/internal/locate"
	"github.com/dshills/textvar/internal/textbuf"
)

// Coordinator owns the editing sessions, at most one per surface key.
// A host with several open documents keys each surface separately; a
// single-document host can use one fixed key.
type Coordinator struct {
	mu       sync.Mutex
	cfg      config.Config
	bus      *event.Bus
	sessions map[string]*Session
	clock    func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithConfig sets the configuration.
func WithConfig(cfg config.Config) Option {
	return func(c *Coordinator) {
		c.cfg = cfg
	}
}

// WithBus sets the event bus lifecycle events are published to.
func WithBus(bus *event.Bus) Option {
	return func(c *Coordinator) {
		c.bus = bus
	}
}

// WithClock sets the time source used for debounce deadlines.
// Tests inject a synthetic clock here.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.clock = now
	}
}

// NewCoordinator creates a coordinator with the given options.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		cfg:      config.Default(),
		bus:      event.NewBus(),
		sessions: make(map[string]*Session),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open starts an editing session for the surface's current selection.
// An existing session under the same key is abandoned first; only one
// session per surface may be live.
func (c *Coordinator) Open(key string, surface textbuf.Surface) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prior, ok := c.sessions[key]; ok {
		if err := prior.abandonLocked(); err != nil {
			return nil, err
		}
	}

	target, err := locate.Find(surface, surface.Selection())
	if err != nil {
		return nil, err
	}

	original, err := surface.TextRange(target.Range)
	if err != nil {
		return nil, err
	}

	if c.cfg.TrailingRow {
		target.Set.EnsureTrailingEmptyRow()
	}

	s := &Session{
		coord:       c,
		id:          uuid.NewString(),
		key:         key,
		surface:     surface,
		set:         target.Set,
		mode:        target.Mode,
		tracked:     target.Range,
		lastWritten: original,
		state:       StateEditing,
	}
	c.sessions[key] = s

	c.bus.Publish(event.Event{
		Topic:     event.TopicSessionOpened,
		SessionID: s.id,
		Range:     s.tracked,
		Text:      original,
	})
	return s, nil
}

// Get returns the live session for a surface key, if any.
func (c *Coordinator) Get(key string) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[key]
	return s, ok
}

// Tick flushes every pending debounced write whose deadline has
// passed. It returns the earliest remaining deadline, or false when
// nothing is pending. Hosts drive this from their scheduler; Run
// drives it internally.
func (c *Coordinator) Tick(now time.Time) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var next time.Time
	var pending bool
	for _, s := range c.sessions {
		if !s.dirty {
			continue
		}
		if !s.deadline.After(now) {
			// Flush errors leave the session dirty-cleared and the
			// document in its last known-good state.
			_ = s.flushLocked()
			continue
		}
		if !pending || s.deadline.Before(next) {
			next = s.deadline
			pending = true
		}
	}
	return next, pending
}

// Bus returns the coordinator's event bus.
func (c *Coordinator) Bus() *event.Bus {
	return c.bus
}

// Run opens a session and drives it from a dialog surface until the
// user commits or abandons. Pending debounced writes land on their
// deadlines while the dialog is open. The dialog closing without an
// explicit action counts as abandoning.
func (c *Coordinator) Run(key string, surface textbuf.Surface, d dialog.Surface) error {
	s, err := c.Open(key, surface)
	if err != nil {
		return err
	}

	title := "Edit variants"
	if s.Mode() == locate.ModeCreating {
		title = "New variants"
	}

	updates, err := d.Open(dialog.Seed{
		Entries:     s.Entries(),
		ActiveIndex: s.ActiveIndex(),
		Title:       title,
	})
	if err != nil {
		_ = s.Abandon()
		return err
	}

	for {
		var timerC <-chan time.Time
		var timer *time.Timer
		if deadline, ok := c.Tick(c.clock()); ok {
			timer = time.NewTimer(deadline.Sub(c.clock()))
			timerC = timer.C
		}

		select {
		case u, ok := <-updates:
			if timer != nil {
				timer.Stop()
			}
			if !ok {
				if s.State() == StateEditing {
					return s.Abandon()
				}
				return nil
			}
			switch {
			case u.Commit:
				return s.Commit()
			case u.Abandon:
				return s.Abandon()
			case u.Structural:
				if err := s.ApplyStructural(u.Entries, u.ActiveIndex); err != nil {
					return err
				}
			default:
				if err := s.ApplyUpdate(u.Entries, u.ActiveIndex); err != nil {
					return err
				}
			}

		case <-timerC:
			// Tick at the top of the loop flushed anything due.
		}
	}
}

// now returns the coordinator's current time.
func (c *Coordinator) now() time.Time {
	return c.clock()
}

// drop removes a closed session from the registry. Caller holds mu.
func (c *Coordinator) drop(key string, s *Session) {
	if c.sessions[key] == s {
		delete(c.sessions, key)
	}
}
