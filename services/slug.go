package services

import (
	"fmt"

	"github.com/gosimple/slug"
)

func init() {
	// Drop ampersands instead of expanding them to "and" so
	// "Health & Wellness" becomes "health-wellness".
	slug.CustomSub = map[string]string{"&": " "}
}

// SlugExists probes the live store for a slug. It is called once per
// candidate; the unique index on communities.slug remains the authoritative
// guard against a race between concurrent identical allocations.
type SlugExists func(slug string) (bool, error)

// SlugAllocator derives URL-safe, lowercase, hyphenated identifiers from
// display names. Collisions are resolved by appending -1, -2, ... up to
// maxAttempts, after which allocation fails instead of looping unbounded.
type SlugAllocator struct {
	maxAttempts int
}

// NewSlugAllocator creates an allocator with the given retry cap.
func NewSlugAllocator(maxAttempts int) *SlugAllocator {
	if maxAttempts <= 0 {
		maxAttempts = 50
	}
	return &SlugAllocator{maxAttempts: maxAttempts}
}

// Allocate returns an unused slug for name.
func (a *SlugAllocator) Allocate(name string, exists SlugExists) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "community"
	}

	candidate := base
	for i := 0; i <= a.maxAttempts; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrSlugExhausted
}
