package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errors.New("unexpected value")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected loader to run once, ran %d times", got)
	}
}

func TestStore_GetOrLoad_ErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32
	boom := errors.New("boom")

	loader := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", boom
		}
		return "value", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if v != "value" {
		t.Fatalf("unexpected value: %q", v)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 loader runs, got %d", got)
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore[int](30 * time.Millisecond)
	store.Set(context.Background(), "k", 7)

	if v, ok := store.Get(context.Background(), "k"); !ok || v != 7 {
		t.Fatalf("expected fresh value, got %d ok=%v", v, ok)
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected value to expire")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	store := NewStore[int](0)
	store.Set(context.Background(), "k", 7)

	time.Sleep(20 * time.Millisecond)
	if v, ok := store.Get(context.Background(), "k"); !ok || v != 7 {
		t.Fatalf("zero-ttl entry must persist, got %d ok=%v", v, ok)
	}
}

func TestStore_EmptyKeyBypassesCache(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (string, error) {
		calls.Add(1)
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		if _, err := store.GetOrLoad(context.Background(), "", loader); err != nil {
			t.Fatalf("load: %v", err)
		}
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("empty key must not cache, got %d runs", got)
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	store.Set(context.Background(), "k", 1)
	store.Delete(context.Background(), "k")
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected deleted key to be gone")
	}
}
