package aisle

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte("- keyword: garlic\n  aisle: Produce\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewDefault()
	if err := c.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, c, path, logger)

	time.Sleep(100 * time.Millisecond)

	updated := "- keyword: garlic\n  aisle: Produce\n- keyword: dragonfruit\n  aisle: Exotic\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return c.Classify("dragonfruit") == "Exotic"
	}, "updated rules file not reloaded by watcher")
}

func TestWatch_BadReloadKeepsTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte("- keyword: garlic\n  aisle: Produce\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewDefault()
	if err := c.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, c, path, logger)

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("not: [valid, rules"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Give the debounced reload time to fire, then confirm the old table held.
	time.Sleep(600 * time.Millisecond)
	if got := c.Classify("garlic"); got != "Produce" {
		t.Errorf("Classify(garlic) = %q, want Produce after failed reload", got)
	}
}

func TestWatch_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte("- keyword: garlic\n  aisle: Produce\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewDefault()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, c, path, logger) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned error on cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after context cancel")
	}
}
