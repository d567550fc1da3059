package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestQuotaPerWindow(t *testing.T) {
	s := New("test", 3, 0, WithWindow(250*time.Millisecond))
	defer s.Close()

	var mu sync.Mutex
	var starts []time.Time

	ctx := context.Background()
	var results []<-chan Result
	for i := 0; i < 5; i++ {
		results = append(results, s.Submit(ctx, func(ctx context.Context) (interface{}, error) {
			mu.Lock()
			starts = append(starts, time.Now())
			mu.Unlock()
			return nil, nil
		}))
	}
	for _, ch := range results {
		if res := <-ch; res.Err != nil {
			t.Fatalf("unexpected error: %v", res.Err)
		}
	}

	if len(starts) != 5 {
		t.Fatalf("expected 5 executions, got %d", len(starts))
	}
	// first three run inside the window, the fourth waits for the reset
	if d := starts[2].Sub(starts[0]); d >= 250*time.Millisecond {
		t.Fatalf("third unit delayed past the window: %v", d)
	}
	if d := starts[3].Sub(starts[0]); d < 200*time.Millisecond {
		t.Fatalf("fourth unit started before window reset: %v", d)
	}
}

func TestFIFOOrder(t *testing.T) {
	s := New("test", 100, 0)
	defer s.Close()

	var mu sync.Mutex
	var order []int

	ctx := context.Background()
	var results []<-chan Result
	for i := 0; i < 10; i++ {
		i := i
		results = append(results, s.Submit(ctx, func(ctx context.Context) (interface{}, error) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return i, nil
		}))
	}
	for want, ch := range results {
		res := <-ch
		if res.Err != nil {
			t.Fatalf("unit %d failed: %v", want, res.Err)
		}
		if got := res.Value.(int); got != want {
			t.Fatalf("completion order broken: got %d want %d", got, want)
		}
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("execution order broken at %d: got %d", i, got)
		}
	}
}

func TestFailureDoesNotHaltQueue(t *testing.T) {
	s := New("test", 100, 0)
	defer s.Close()

	boom := errors.New("boom")
	ctx := context.Background()

	ok1 := s.Submit(ctx, func(ctx context.Context) (interface{}, error) { return "a", nil })
	bad := s.Submit(ctx, func(ctx context.Context) (interface{}, error) { return nil, boom })
	ok2 := s.Submit(ctx, func(ctx context.Context) (interface{}, error) { return "b", nil })

	if res := <-ok1; res.Err != nil || res.Value != "a" {
		t.Fatalf("first unit: %+v", res)
	}
	if res := <-bad; !errors.Is(res.Err, boom) {
		t.Fatalf("expected boom, got %v", res.Err)
	}
	if res := <-ok2; res.Err != nil || res.Value != "b" {
		t.Fatalf("unit after failure: %+v", res)
	}
}

func TestSpacingBetweenUnits(t *testing.T) {
	s := New("test", 100, 50*time.Millisecond)
	defer s.Close()

	var mu sync.Mutex
	var starts []time.Time
	ctx := context.Background()
	var results []<-chan Result
	for i := 0; i < 3; i++ {
		results = append(results, s.Submit(ctx, func(ctx context.Context) (interface{}, error) {
			mu.Lock()
			starts = append(starts, time.Now())
			mu.Unlock()
			return nil, nil
		}))
	}
	for _, ch := range results {
		<-ch
	}
	for i := 1; i < len(starts); i++ {
		if d := starts[i].Sub(starts[i-1]); d < 40*time.Millisecond {
			t.Fatalf("units %d/%d too close: %v", i-1, i, d)
		}
	}
}

func TestTypedDo(t *testing.T) {
	s := New("test", 100, 0)
	defer s.Close()

	got, err := Do(context.Background(), s, func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("unexpected: %q %v", got, err)
	}

	_, err = Do(context.Background(), s, func(ctx context.Context) (string, error) {
		return "", fmt.Errorf("nope")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestCloseFailsPending(t *testing.T) {
	s := New("test", 1, 0, WithWindow(time.Hour))

	ctx := context.Background()
	// first unit consumes the window quota
	<-s.Submit(ctx, func(ctx context.Context) (interface{}, error) { return nil, nil })
	// second unit is stuck behind the exhausted window
	pending := s.Submit(ctx, func(ctx context.Context) (interface{}, error) { return nil, nil })

	time.Sleep(20 * time.Millisecond)
	s.Close()

	if res := <-pending; !errors.Is(res.Err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", res.Err)
	}
}
