package ui

import (
	"testing"
)

func TestComputeKey(t *testing.T) {
	if ComputeKey(uint64(7), 80, true) != ComputeKey(uint64(7), 80, true) {
		t.Error("expected same key for same inputs")
	}
	if ComputeKey(uint64(7), 80, true) == ComputeKey(uint64(8), 80, true) {
		t.Error("expected revision to change the key")
	}
	if ComputeKey(uint64(7), 80, true) == ComputeKey(uint64(7), 81, true) {
		t.Error("expected width to change the key")
	}
	if ComputeKey(uint64(7), 80, true) == ComputeKey(uint64(7), 80, false) {
		t.Error("expected focus to change the key")
	}
}

func TestRenderCache_GetOrCompute(t *testing.T) {
	rc := NewRenderCache(4)
	calls := 0
	compute := func() Rendered {
		calls++
		return Rendered{Content: "x", ActiveLine: 1, Lines: 2}
	}

	r := rc.GetOrCompute(1, compute)
	if r.Content != "x" || r.ActiveLine != 1 {
		t.Fatalf("unexpected render %+v", r)
	}
	rc.GetOrCompute(1, compute)
	if calls != 1 {
		t.Errorf("expected one computation, got %d", calls)
	}

	hits, misses := rc.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}
}

func TestRenderCache_StartsOverWhenFull(t *testing.T) {
	rc := NewRenderCache(2)
	rc.Set(1, Rendered{Content: "a"})
	rc.Set(2, Rendered{Content: "b"})
	rc.Set(2, Rendered{Content: "b2"})
	if rc.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", rc.Len())
	}

	rc.Set(3, Rendered{Content: "c"})
	if rc.Len() != 1 {
		t.Fatalf("expected cache to start over, got %d entries", rc.Len())
	}
	if _, ok := rc.Get(1); ok {
		t.Error("expected old entry to be evicted")
	}
	if r, ok := rc.Get(3); !ok || r.Content != "c" {
		t.Errorf("expected newest entry to survive, got %+v", r)
	}
}
