package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndNamespaced(t *testing.T) {
	k1 := Key("fetch:https://example.com")
	k2 := Key("fetch:https://example.com")
	k3 := Key("fetch:https://example.org")

	if k1 != k2 {
		t.Error("same input should produce same key")
	}
	if k1 == k3 {
		t.Error("different inputs should produce different keys")
	}
	if !strings.HasPrefix(k1, "claimlens:v1:") {
		t.Errorf("key missing namespace prefix: %s", k1)
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("value"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found {
		t.Fatal("expected hit after set")
	}
	if string(val) != "value" {
		t.Errorf("expected 'value', got %q", val)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Minute)

	if err := c.Delete("a"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("expected miss after delete")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, found := c.Get("b"); found {
		t.Error("expected miss after clear")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found {
		t.Fatal("expected hit after set")
	}
	if string(val) != "payload" {
		t.Errorf("expected 'payload', got %q", val)
	}
}

func TestDiskCache_Expiration(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
	// Expired entries are removed on read
	if _, found := c.Get("k"); found {
		t.Error("expected entry to stay gone")
	}
}

func TestDiskCache_DefaultTTL(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	// ttl of 0 falls back to the cache default
	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, found := c.Get("k"); !found {
		t.Error("expected hit with default TTL")
	}
}

func TestDiskCache_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first := NewDiskCache(dir, time.Hour)
	if err := first.Set("k", []byte("persisted"), time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	second := NewDiskCache(dir, time.Hour)
	val, found := second.Get("k")
	if !found {
		t.Fatal("expected entry to survive reopen")
	}
	if string(val) != "persisted" {
		t.Errorf("expected 'persisted', got %q", val)
	}
}

func TestLayeredCache_PromotesToMemory(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer only, then read through a fresh layered cache
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("k", []byte("from-disk"), time.Hour); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := layered.Get("k")
	if !found {
		t.Fatal("expected disk hit through layered cache")
	}
	if string(val) != "from-disk" {
		t.Errorf("expected 'from-disk', got %q", val)
	}

	// Remove the disk copy; the promoted memory copy should still serve
	if err := disk.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := layered.Get("k"); !found {
		t.Error("expected memory hit after promotion")
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := layered.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	disk := NewDiskCache(dir, time.Hour)
	if _, found := disk.Get("k"); !found {
		t.Error("expected set to reach the disk layer")
	}
}

func TestLayeredCache_DeleteAndClear(t *testing.T) {
	layered := NewLayeredCache(time.Minute, t.TempDir(), time.Hour)
	layered.Set("k", []byte("v"), time.Hour)

	if err := layered.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := layered.Get("k"); found {
		t.Error("expected miss after delete")
	}

	layered.Set("a", []byte("1"), time.Hour)
	if err := layered.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, found := layered.Get("a"); found {
		t.Error("expected miss after clear")
	}
}
