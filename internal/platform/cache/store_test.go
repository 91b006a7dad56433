package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestStoreGetSetExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	current := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	ctx := context.Background()
	if _, ok := store.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for absent key")
	}

	store.Set(ctx, "fixtures:window", 42)
	value, ok := store.Get(ctx, "fixtures:window")
	if !ok {
		t.Fatalf("expected hit after Set")
	}
	if got := value.(int); got != 42 {
		t.Fatalf("value = %d, want 42", got)
	}

	current = current.Add(time.Minute + time.Second)
	if _, ok := store.Get(ctx, "fixtures:window"); ok {
		t.Fatalf("expected entry to expire after ttl")
	}
}

func TestStoreDeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, "fixtures:1", "a")
	store.Set(ctx, "fixtures:2", "b")
	store.Set(ctx, "leaderboard:top", "c")

	store.DeletePrefix(ctx, "fixtures:")

	if _, ok := store.Get(ctx, "fixtures:1"); ok {
		t.Fatalf("fixtures:1 should be gone")
	}
	if _, ok := store.Get(ctx, "fixtures:2"); ok {
		t.Fatalf("fixtures:2 should be gone")
	}
	if _, ok := store.Get(ctx, "leaderboard:top"); !ok {
		t.Fatalf("leaderboard:top should survive")
	}
}

func TestStoreGetOrLoadSharesOneLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	var (
		mu    sync.Mutex
		loads int
	)
	release := make(chan struct{})
	loader := func(context.Context) (any, error) {
		mu.Lock()
		loads++
		mu.Unlock()
		<-release
		return "payload", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := store.GetOrLoad(ctx, "key", loader)
			if err != nil {
				t.Errorf("GetOrLoad: %v", err)
				return
			}
			results[i] = value
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if loads != 1 {
		t.Fatalf("loader ran %d times, want 1", loads)
	}
	for i, value := range results {
		if value != "payload" {
			t.Fatalf("results[%d] = %v, want payload", i, value)
		}
	}
}

func TestStoreGetOrLoadErrorNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	loadErr := errors.New("upstream down")
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, loadErr
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(ctx, "key", loader); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	value, err := store.GetOrLoad(ctx, "key", loader)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if value != "ok" {
		t.Fatalf("value = %v, want ok", value)
	}
}
