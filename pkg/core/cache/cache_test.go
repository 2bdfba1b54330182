package cache

import (
	"errors"
	"testing"
)

func TestGetSet(t *testing.T) {
	c := New[string](DefaultConfig())

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}
	c.Set("a", "alpha")
	val, ok := c.Get("a")
	if !ok || val != "alpha" {
		t.Errorf("Expected alpha, got %q (found=%v)", val, ok)
	}

	c.Set("a", "again")
	if val, _ := c.Get("a"); val != "again" {
		t.Errorf("Expected overwritten value, got %q", val)
	}
	if c.Size() != 1 {
		t.Errorf("Expected size 1, got %d", c.Size())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](Config{MaxItems: 2})
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("Expected b to be evicted")
	}
	for _, key := range []string{"a", "c"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("Expected %s to be kept", key)
		}
	}
}

func TestGetOrSet(t *testing.T) {
	c := New[int](DefaultConfig())
	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		val, err := c.GetOrSet("answer", compute)
		if err != nil || val != 42 {
			t.Fatalf("Expected 42, got %d (%v)", val, err)
		}
	}
	if calls != 1 {
		t.Errorf("Expected 1 computation, got %d", calls)
	}

	failure := errors.New("boom")
	if _, err := c.GetOrSet("bad", func() (int, error) { return 0, failure }); !errors.Is(err, failure) {
		t.Errorf("Expected boom, got %v", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("Expected failed computation not to be stored")
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New[int](DefaultConfig())
	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Expected a to be deleted")
	}
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Expected empty cache, got %d items", c.Size())
	}
}

func TestStats(t *testing.T) {
	c := New[int](DefaultConfig())
	c.Set("a", 1)
	c.Get("a")
	c.Get("b")

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
	if rate != 50 {
		t.Errorf("Expected hit rate 50, got %f", rate)
	}
}
