package cache

import (
	"strings"
	"testing"
	"time"
)

func TestContentKey(t *testing.T) {
	a := ContentKey([]byte("0 HEAD\n0 TRLR\n"))
	b := ContentKey([]byte("0 HEAD\n0 TRLR\n"))
	c := ContentKey([]byte("0 HEAD\n0 TRLR"))

	if a != b {
		t.Error("identical content must produce identical keys")
	}
	if a == c {
		t.Error("different content must produce different keys")
	}
	if !strings.HasPrefix(a, "readgedcom:v1:") {
		t.Errorf("key %q missing version prefix", a)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache reported a hit")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted key still present")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	if err := c.Set("k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expired entry still present")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh instance over the same directory sees the entry.
	c2 := NewDiskCache(dir, time.Minute)
	if val, found := c2.Get("k"); !found || string(val) != "v" {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted key still present")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	if err := c.Set("k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expired entry still present")
	}
}

func TestLayeredCache_Promotion(t *testing.T) {
	dir := t.TempDir()

	// Seed only the disk layer, then read through a fresh layered cache.
	if err := NewDiskCache(dir, time.Minute).Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	c := NewLayeredCache(time.Minute, dir, time.Minute)
	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Fatalf("Get = %q, %v", val, found)
	}

	// After promotion the memory layer holds the value on its own.
	if err := NewDiskCache(dir, time.Minute).Clear(); err != nil {
		t.Fatalf("clear disk: %v", err)
	}
	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Errorf("promoted entry lost: %q, %v", val, found)
	}
}

func TestLayeredCache_SetAndDelete(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Errorf("Get = %q, %v", val, found)
	}
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted key still present")
	}
}
