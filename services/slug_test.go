package services

import (
	"errors"
	"testing"
)

// memExists simulates the live store probe over a set of taken slugs.
func memExists(taken map[string]bool) SlugExists {
	return func(s string) (bool, error) {
		return taken[s], nil
	}
}

func TestAllocateBaseSlug(t *testing.T) {
	a := NewSlugAllocator(10)

	got, err := a.Allocate("Health & Wellness", memExists(map[string]bool{}))
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got != "health-wellness" {
		t.Fatalf("got %q, want %q", got, "health-wellness")
	}
}

func TestAllocateCollisionSuffix(t *testing.T) {
	a := NewSlugAllocator(10)
	taken := map[string]bool{"health-wellness": true}

	got, err := a.Allocate("Health & Wellness", memExists(taken))
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got != "health-wellness-1" {
		t.Fatalf("got %q, want %q", got, "health-wellness-1")
	}

	taken[got] = true
	got, err = a.Allocate("Health & Wellness", memExists(taken))
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got != "health-wellness-2" {
		t.Fatalf("got %q, want %q", got, "health-wellness-2")
	}
}

func TestAllocateSameNameDistinct(t *testing.T) {
	a := NewSlugAllocator(50)
	taken := map[string]bool{}
	seen := map[string]bool{}

	for i := 0; i < 20; i++ {
		got, err := a.Allocate("Gopher Meetup", memExists(taken))
		if err != nil {
			t.Fatalf("Allocate #%d: %v", i, err)
		}
		if seen[got] {
			t.Fatalf("duplicate slug %q", got)
		}
		seen[got] = true
		taken[got] = true
	}
}

func TestAllocateRetryCap(t *testing.T) {
	a := NewSlugAllocator(3)
	_, err := a.Allocate("x", func(string) (bool, error) { return true, nil })
	if !errors.Is(err, ErrSlugExhausted) {
		t.Fatalf("got %v, want ErrSlugExhausted", err)
	}
}

func TestAllocateEmptyNameFallback(t *testing.T) {
	a := NewSlugAllocator(10)
	got, err := a.Allocate("!!!", memExists(map[string]bool{}))
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got != "community" {
		t.Fatalf("got %q, want %q", got, "community")
	}
}

func TestAllocatePropagatesProbeError(t *testing.T) {
	a := NewSlugAllocator(10)
	boom := errors.New("store down")
	_, err := a.Allocate("anything", func(string) (bool, error) { return false, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want probe error", err)
	}
}
