package dialog

// Script is a Surface that replays a fixed sequence of updates, for
// tests and non-interactive drivers.
type Script struct {
	// Updates are delivered in order after Open.
	Updates []Update

	// Seed records what the surface was opened with.
	Seed Seed

	opened bool
}

// Open replays the scripted updates on a fresh channel.
func (s *Script) Open(seed Seed) (<-chan Update, error) {
	s.Seed = seed
	s.opened = true

	ch := make(chan Update, len(s.Updates))
	for _, u := range s.Updates {
		ch <- u
	}
	close(ch)
	return ch, nil
}

// Opened reports whether Open was called.
func (s *Script) Opened() bool {
	return s.opened
}

// Ensure Script implements Surface.
var _ Surface = (*Script)(nil)
