package kv

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "resume:1", `{"id":"1"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, "resume:1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `{"id":"1"}` {
		t.Fatalf("Get = %q", got)
	}

	// Overwrite under the same key replaces the whole value.
	if err := store.Set(ctx, "resume:1", `{"id":"1","feedback":{}}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, err = store.Get(ctx, "resume:1")
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if got != `{"id":"1","feedback":{}}` {
		t.Fatalf("Get after overwrite = %q", got)
	}
}

func TestMemoryStoreHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", "v"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Set with canceled ctx err = %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Get with canceled ctx err = %v", err)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("resume:%d", n)
			if err := store.Set(ctx, key, "v"); err != nil {
				t.Errorf("Set %s: %v", key, err)
			}
			if _, err := store.Get(ctx, key); err != nil {
				t.Errorf("Get %s: %v", key, err)
			}
		}(i)
	}
	wg.Wait()
}
