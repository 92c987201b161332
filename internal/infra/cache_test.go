package infra

import (
	"fmt"
	"testing"
	"time"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache(10)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache should miss")
	}

	c.Set("clusters:list", []string{"a", "b"}, time.Minute)
	v, ok := c.Get("clusters:list")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got := v.([]string); len(got) != 2 {
		t.Errorf("cached value = %v, want 2 elements", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10)
	c.Set("k", "v", -time.Second)

	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should miss")
	}
	if c.Size() != 0 {
		t.Errorf("Size = %d after expired Get, want 0", c.Size())
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(3)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i, time.Minute)
	}

	// Touch k1 and k2 so k0 is the least recently used.
	time.Sleep(time.Millisecond)
	c.Get("k1")
	c.Get("k2")

	c.Set("k3", 3, time.Minute)

	if c.Size() != 3 {
		t.Errorf("Size = %d, want 3", c.Size())
	}
	if _, ok := c.Get("k0"); ok {
		t.Error("k0 should have been evicted as least recently used")
	}
	if _, ok := c.Get("k3"); !ok {
		t.Error("k3 should be present after insert")
	}
}

func TestCacheDeletePrefix(t *testing.T) {
	c := NewCache(10)
	c.Set("jobs:list:p1", 1, time.Minute)
	c.Set("jobs:list:p2", 2, time.Minute)
	c.Set("clusters:list", 3, time.Minute)

	c.DeletePrefix("jobs:")

	if _, ok := c.Get("jobs:list:p1"); ok {
		t.Error("prefixed entry should be gone")
	}
	if _, ok := c.Get("clusters:list"); !ok {
		t.Error("unrelated entry should survive")
	}
}

func TestCacheDelete(t *testing.T) {
	c := NewCache(10)
	c.Set("k", "v", time.Minute)
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Error("deleted entry should miss")
	}
}
