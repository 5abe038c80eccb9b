package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		c := NewMemory()
		if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
			t.Fatalf("Set error: %v", err)
		}

		got, err := c.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get error: %v", err)
		}
		if string(got) != "v" {
			t.Errorf("got %q, want v", got)
		}
	})

	t.Run("missing key is a miss", func(t *testing.T) {
		c := NewMemory()
		if _, err := c.Get(ctx, "absent"); !errors.Is(err, ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		c := NewMemory()
		now := time.Now()
		c.now = func() time.Time { return now }

		if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
			t.Fatalf("Set error: %v", err)
		}

		c.now = func() time.Time { return now.Add(2 * time.Hour) }
		if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss after expiry", err)
		}
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		c := NewMemory()
		now := time.Now()
		c.now = func() time.Time { return now }

		if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
			t.Fatalf("Set error: %v", err)
		}

		c.now = func() time.Time { return now.Add(1000 * time.Hour) }
		if _, err := c.Get(ctx, "k"); err != nil {
			t.Errorf("Get error: %v, want hit", err)
		}
	})

	t.Run("delete removes", func(t *testing.T) {
		c := NewMemory()
		if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
			t.Fatalf("Set error: %v", err)
		}
		if err := c.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
		if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss after delete", err)
		}

		// Deleting again is fine.
		if err := c.Delete(ctx, "k"); err != nil {
			t.Errorf("repeat Delete error: %v", err)
		}
	})
}

func TestStageKey(t *testing.T) {
	id := uuid.MustParse("6a5b2f9e-9f70-4f59-8f4a-3a2b1c0d9e8f")
	got := StageKey("analysis", id)
	want := "pipeline:analysis:6a5b2f9e-9f70-4f59-8f4a-3a2b1c0d9e8f"
	if got != want {
		t.Errorf("StageKey = %s, want %s", got, want)
	}
}
