package rules

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	watcher, err := NewWatcher(store)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = watcher.Run(ctx) }()

	// Give the watcher a moment to establish the directory watch.
	time.Sleep(100 * time.Millisecond)

	modified := DefaultTable()
	modified.Limits.AnnualDeductible = 2400
	if err := writeTable(t, path, modified); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		if store.Table().Limits.AnnualDeductible == 2400 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("Watcher did not reload the table in time")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestNewWatcher_RequiresBackingFile(t *testing.T) {
	store := NewStore(DefaultTable(), "")

	if _, err := NewWatcher(store); err == nil {
		t.Error("Expected an error for a store without a backing file")
	}
}
