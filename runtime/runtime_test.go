package runtime

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestContextRecordOrder(t *testing.T) {
	rt := NewContext()
	rt.Record("Fetch")
	rt.Record("Enrich")
	rt.Record("Score")

	got := rt.Completed()
	want := []string{"Fetch", "Enrich", "Score"}
	if len(got) != len(want) {
		t.Fatalf("Completed() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Completed()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestContextCompletedIsCopy(t *testing.T) {
	rt := NewContext()
	rt.Record("A")
	first := rt.Completed()
	first[0] = "mutated"
	if got := rt.Completed()[0]; got != "A" {
		t.Errorf("Completed() shares internal state: got %q", got)
	}
}

func TestContextConcurrentRecord(t *testing.T) {
	rt := NewContext()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rt.Record("step")
		}()
	}
	wg.Wait()
	if got := len(rt.Completed()); got != 50 {
		t.Errorf("recorded %d completions, want 50", got)
	}
}

func TestContextValues(t *testing.T) {
	rt := NewContext()
	rt.Set("total", 42)
	v, ok := rt.Get("total")
	if !ok || v.(int) != 42 {
		t.Errorf("Get(total) = %v, %v; want 42, true", v, ok)
	}
	if _, ok := rt.Get("missing"); ok {
		t.Error("Get(missing) reported a value")
	}
}

func TestGatherCollectsResults(t *testing.T) {
	res, err := Gather(context.Background(),
		func(ctx context.Context) (any, error) { return "left", nil },
		func(ctx context.Context) (any, error) { return "right", nil },
	)
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	values, ok := res.([]any)
	if !ok || len(values) != 2 {
		t.Fatalf("Gather returned %T %v, want []any of 2", res, res)
	}
	if values[0] != "left" || values[1] != "right" {
		t.Errorf("Gather results out of branch order: %v", values)
	}
}

func TestGatherFirstError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Gather(context.Background(),
		func(ctx context.Context) (any, error) { return nil, boom },
		func(ctx context.Context) (any, error) { return "ok", nil },
	)
	if !errors.Is(err, boom) {
		t.Errorf("Gather error = %v, want %v", err, boom)
	}
}

func TestGatherCancelsSiblings(t *testing.T) {
	boom := errors.New("boom")
	_, err := Gather(context.Background(),
		func(ctx context.Context) (any, error) { return nil, boom },
		func(ctx context.Context) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	)
	if !errors.Is(err, boom) {
		t.Errorf("Gather error = %v, want the branch error, not the cancellation", err)
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []string{"halt", "continue", "retry"} {
		got, err := ParseStrategy(s)
		if err != nil || string(got) != s {
			t.Errorf("ParseStrategy(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseStrategy("explode"); err == nil {
		t.Error("ParseStrategy accepted an unknown strategy")
	}
}
