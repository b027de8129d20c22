package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReloadOnChange(t *testing.T) {
	path := writeConfig(t, "log:\n  file: a.log\n")

	w := NewWatcher(path, 20*time.Millisecond)
	reloaded := make(chan *Config, 4)

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(testContext(t), func(cfg *Config) {
			reloaded <- cfg
		})
	}()

	// Give the watcher time to register before rewriting.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("log:\n  file: b.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Log.File != "b.log" {
			t.Errorf("reloaded file = %q, want b.log", cfg.Log.File)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("reload callback never fired")
	}

	w.Stop()
	if err := <-done; err != nil {
		t.Fatalf("Watch returned %v", err)
	}
}

func TestWatcher_InvalidReloadKeepsPrevious(t *testing.T) {
	path := writeConfig(t, "log:\n  file: a.log\n")

	w := NewWatcher(path, 20*time.Millisecond)
	reloaded := make(chan *Config, 4)

	go func() {
		_ = w.Watch(testContext(t), func(cfg *Config) {
			reloaded <- cfg
		})
	}()
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	// A config that fails validation must not reach the callback.
	if err := os.WriteFile(path, []byte("log:\n  done_chunk_shape: banana\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		t.Fatalf("invalid config reached callback: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ganymede.yaml")
	if err := os.WriteFile(path, []byte("log:\n  file: a.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(path, 20*time.Millisecond)
	reloaded := make(chan *Config, 4)

	go func() {
		_ = w.Watch(testContext(t), func(cfg *Config) {
			reloaded <- cfg
		})
	}()
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Fatal("sibling file change triggered a reload")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := writeConfig(t, "log:\n  file: a.log\n")

	w := NewWatcher(path, 20*time.Millisecond)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(testContext(t), func(*Config) {})
	}()

	time.Sleep(100 * time.Millisecond)
	w.Stop()
	w.Stop()

	if err := <-done; err != nil {
		t.Fatalf("Watch returned %v after Stop", err)
	}
}

func TestWatcher_DoubleStartRejected(t *testing.T) {
	path := writeConfig(t, "log:\n  file: a.log\n")

	w := NewWatcher(path, 20*time.Millisecond)
	go func() {
		_ = w.Watch(testContext(t), func(*Config) {})
	}()
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	if err := w.Watch(testContext(t), func(*Config) {}); err == nil {
		t.Fatal("second Watch on a running watcher should fail")
	}
}

// testContext mirrors t.Context (Go 1.24+): a context cancelled at test cleanup.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
