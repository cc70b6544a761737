// Package config loads textvar settings from a TOML file and supports
// live reload through a file watcher.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunable behavior of the variant editing core.
type Config struct {
	// Debounce is the quiet period before a text edit is written back
	// to the document. Structural edits write immediately.
	Debounce time.Duration

	// TrailingRow keeps one spare blank row at the end of the editing
	// surface to type a new variant into.
	TrailingRow bool

	// Decorations enables active-candidate decoration hints.
	Decorations bool

	// RejectDelimiters makes input surfaces refuse candidate text
	// containing the reserved delimiter sequences.
	RejectDelimiters bool
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Debounce:         300 * time.Millisecond,
		TrailingRow:      true,
		Decorations:      true,
		RejectDelimiters: true,
	}
}

// fileConfig is the on-disk TOML shape. Durations are milliseconds.
type fileConfig struct {
	DebounceMS       *int  `toml:"debounce_ms"`
	TrailingRow      *bool `toml:"trailing_row"`
	Decorations      *bool `toml:"decorations"`
	RejectDelimiters *bool `toml:"reject_delimiters"`
}

// Load reads configuration from path, applying file values over the
// defaults. A missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.DebounceMS != nil && *fc.DebounceMS >= 0 {
		cfg.Debounce = time.Duration(*fc.DebounceMS) * time.Millisecond
	}
	if fc.TrailingRow != nil {
		cfg.TrailingRow = *fc.TrailingRow
	}
	if fc.Decorations != nil {
		cfg.Decorations = *fc.Decorations
	}
	if fc.RejectDelimiters != nil {
		cfg.RejectDelimiters = *fc.RejectDelimiters
	}
	return cfg, nil
}
