package cache

import (
	"testing"
	"time"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key("payload", "fp1")
	b := Key("payload", "fp1")

	if a != b {
		t.Error("Expected identical keys for identical inputs")
	}
}

func TestKey_FingerprintInvalidates(t *testing.T) {
	a := Key("payload", "fp1")
	b := Key("payload", "fp2")

	if a == b {
		t.Error("Expected a rules change to produce a different key")
	}
}

func TestKey_PayloadSeparation(t *testing.T) {
	// The separator prevents ("ab", "c") and ("a", "bc") from colliding.
	if Key("ab", "c") == Key("b", "ca") {
		t.Error("Expected distinct keys for shifted payload boundaries")
	}
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Expected hit with value v, got %q (found=%v)", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Expected hit with value v, got %q (found=%v)", val, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected an expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	// Write through another disk cache so only the disk layer has it.
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := layered.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Expected a disk hit, got %q (found=%v)", val, found)
	}

	// Remove the disk entry; the promoted memory copy must still hit.
	if err := disk.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := layered.Get("k"); !found {
		t.Error("Expected the promoted memory entry to hit")
	}
}

func TestLayeredCache_Clear(t *testing.T) {
	layered := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	if err := layered.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := layered.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := layered.Get("k"); found {
		t.Error("Expected miss after clear")
	}
}
