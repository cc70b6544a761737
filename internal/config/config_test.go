package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}

	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textvar.toml")
	content := "debounce_ms = 150\ntrailing_row = false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Debounce != 150*time.Millisecond {
		t.Errorf("expected 150ms debounce, got %v", cfg.Debounce)
	}
	if cfg.TrailingRow {
		t.Error("expected trailing_row disabled")
	}

	// Unset keys keep their defaults.
	if !cfg.Decorations {
		t.Error("expected decorations default to survive")
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("debounce_ms = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "textvar.toml")
	if err := os.WriteFile(path, []byte("debounce_ms = 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan Config, 1)
	w, err := Watch(path, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("debounce_ms = 250\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Debounce != 250*time.Millisecond {
			t.Errorf("expected reloaded 250ms, got %v", cfg.Debounce)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "textvar.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path, func(Config) {})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("first close failed: %v", err)
	}
	if err := w.Close(); err != ErrWatcherClosed {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
}
