package hooks

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFilter_NoInterceptors_RunsDefault(t *testing.T) {
	f := NewFilter("len", func(ctx context.Context, s string) (int, error) {
		return len(s), nil
	})
	n, err := f.Invoke(context.Background(), "abcd")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if n != 4 {
		t.Errorf("result = %d, want 4", n)
	}
}

func TestFilter_InterceptorTransformsArgs(t *testing.T) {
	f := NewFilter("len", func(ctx context.Context, s string) (int, error) {
		return len(s), nil
	})
	f.Register(func(ctx context.Context, s string, next Next[string, int]) (int, error) {
		return next(ctx, strings.TrimSpace(s))
	})
	n, err := f.Invoke(context.Background(), " ab ")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if n != 2 {
		t.Errorf("result = %d, want 2", n)
	}
}

func TestFilter_ShortCircuit_SkipsDefault(t *testing.T) {
	defaultRan := false
	f := NewFilter("value", func(ctx context.Context, _ struct{}) (string, error) {
		defaultRan = true
		return "", errors.New("not implemented")
	})
	f.Register(func(ctx context.Context, _ struct{}, next Next[struct{}, string]) (string, error) {
		return "intercepted", nil
	})
	v, err := f.Invoke(context.Background(), struct{}{})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if v != "intercepted" {
		t.Errorf("result = %q, want intercepted", v)
	}
	if defaultRan {
		t.Error("default ran despite short-circuit")
	}
}

func TestFilter_PriorityOrder_DefaultLast(t *testing.T) {
	var calls []string
	f := NewFilter("order", func(ctx context.Context, _ struct{}) (int, error) {
		calls = append(calls, "default")
		return 0, nil
	})
	f.Register(func(ctx context.Context, a struct{}, next Next[struct{}, int]) (int, error) {
		calls = append(calls, "p10")
		return next(ctx, a)
	}, WithPriority(10))
	f.Register(func(ctx context.Context, a struct{}, next Next[struct{}, int]) (int, error) {
		calls = append(calls, "p5")
		return next(ctx, a)
	}, WithPriority(5))

	if _, err := f.Invoke(context.Background(), struct{}{}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	want := []string{"p5", "p10", "default"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}

func TestFilter_EqualPriority_IsStable(t *testing.T) {
	var calls []string
	f := NewFilter("stable", func(ctx context.Context, _ struct{}) (int, error) {
		return 0, nil
	})
	for _, name := range []string{"first", "second", "third"} {
		name := name
		f.Register(func(ctx context.Context, a struct{}, next Next[struct{}, int]) (int, error) {
			calls = append(calls, name)
			return next(ctx, a)
		})
	}
	if _, err := f.Invoke(context.Background(), struct{}{}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if calls[0] != "first" || calls[1] != "second" || calls[2] != "third" {
		t.Errorf("calls = %v, want registration order", calls)
	}
}

func TestFilter_InterceptorTransformsResult(t *testing.T) {
	f := NewFilter("double", func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	f.Register(func(ctx context.Context, n int, next Next[int, int]) (int, error) {
		r, err := next(ctx, n)
		return r * 2, err
	})
	r, err := f.Invoke(context.Background(), 21)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if r != 42 {
		t.Errorf("result = %d, want 42", r)
	}
}

func TestFilter_ErrorAbortsChain(t *testing.T) {
	boom := errors.New("boom")
	laterRan := false
	defaultRan := false
	f := NewFilter("abort", func(ctx context.Context, _ struct{}) (int, error) {
		defaultRan = true
		return 0, nil
	})
	f.Register(func(ctx context.Context, a struct{}, next Next[struct{}, int]) (int, error) {
		return 0, boom
	}, WithPriority(1))
	f.Register(func(ctx context.Context, a struct{}, next Next[struct{}, int]) (int, error) {
		laterRan = true
		return next(ctx, a)
	}, WithPriority(2))

	_, err := f.Invoke(context.Background(), struct{}{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom unchanged", err)
	}
	if laterRan || defaultRan {
		t.Error("chain continued past the failing interceptor")
	}
}

func TestFilter_DefaultErrorPropagates(t *testing.T) {
	boom := errors.New("default failed")
	f := NewFilter("deferr", func(ctx context.Context, _ struct{}) (int, error) {
		return 0, boom
	})
	f.Register(func(ctx context.Context, a struct{}, next Next[struct{}, int]) (int, error) {
		return next(ctx, a)
	})
	_, err := f.Invoke(context.Background(), struct{}{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want default error unchanged", err)
	}
}

func TestFilter_NextCalledTwice_ReplaysTail(t *testing.T) {
	defaultCalls := 0
	f := NewFilter("twice", func(ctx context.Context, n int) (int, error) {
		defaultCalls++
		return n, nil
	})
	f.Register(func(ctx context.Context, n int, next Next[int, int]) (int, error) {
		a, _ := next(ctx, n)
		b, _ := next(ctx, n+1)
		return a + b, nil
	})
	r, err := f.Invoke(context.Background(), 1)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if r != 3 {
		t.Errorf("result = %d, want 3", r)
	}
	if defaultCalls != 2 {
		t.Errorf("default ran %d times, want 2", defaultCalls)
	}
}

func TestFilter_InvokeIsDeterministic(t *testing.T) {
	var first, second []string
	sink := &first
	f := NewFilter("repeat", func(ctx context.Context, _ struct{}) (int, error) {
		*sink = append(*sink, "default")
		return 0, nil
	})
	for _, name := range []string{"a", "b"} {
		name := name
		f.Register(func(ctx context.Context, a struct{}, next Next[struct{}, int]) (int, error) {
			*sink = append(*sink, name)
			return next(ctx, a)
		})
	}
	if _, err := f.Invoke(context.Background(), struct{}{}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	sink = &second
	if _, err := f.Invoke(context.Background(), struct{}{}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("call sequences differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("call sequences differ: %v vs %v", first, second)
		}
	}
}

func TestFilter_RegisterAfterSealPanics(t *testing.T) {
	f := NewFilter("sealed", func(ctx context.Context, _ struct{}) (int, error) {
		return 0, nil
	})
	r := NewRegistry()
	r.Add(f)
	r.Build()
	defer func() {
		if recover() == nil {
			t.Error("expected panic on register after Build")
		}
	}()
	f.Register(func(ctx context.Context, a struct{}, next Next[struct{}, int]) (int, error) {
		return next(ctx, a)
	})
}

func TestFilter_ConcurrentInvoke(t *testing.T) {
	f := NewFilter("concurrent", func(ctx context.Context, n int) (int, error) {
		return n + 1, nil
	})
	f.Register(func(ctx context.Context, n int, next Next[int, int]) (int, error) {
		return next(ctx, n*2)
	})
	r := NewRegistry()
	r.Add(f)
	r.Build()

	done := make(chan error, 50)
	for i := 0; i < 50; i++ {
		go func(n int) {
			got, err := f.Invoke(context.Background(), n)
			if err == nil && got != n*2+1 {
				err = errors.New("wrong result")
			}
			done <- err
		}(i)
	}
	for i := 0; i < 50; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent Invoke: %v", err)
		}
	}
}
