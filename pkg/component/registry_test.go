package component

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/squirrel-ui/squirrel/internal/errors"
	"github.com/squirrel-ui/squirrel/pkg/atome"
	"github.com/squirrel-ui/squirrel/pkg/dom"
)

func badge(props map[string]any) atome.Config {
	return atome.Config{"class": "badge", "text": props["text"]}
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry(WithLogger(quiet()))
	r.Register("badge", badge)

	b, err := r.Resolve(context.Background(), "badge")
	if err != nil {
		t.Fatal(err)
	}
	if cfg := b(map[string]any{"text": "x"}); cfg["text"] != "x" {
		t.Errorf("builder output = %v", cfg)
	}

	_, err = r.Resolve(context.Background(), "nope")
	if !errors.IsCode(err, errors.CodeResolutionMiss) {
		t.Errorf("err = %v, want E001", err)
	}
}

func TestRegistry_Lazy(t *testing.T) {
	r := NewRegistry(WithLogger(quiet()))
	loads := 0
	r.RegisterLazy("badge", func(ctx context.Context) (Builder, error) {
		loads++
		return badge, nil
	})

	for i := 0; i < 3; i++ {
		if _, err := r.Resolve(context.Background(), "badge"); err != nil {
			t.Fatal(err)
		}
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
}

func TestRegistry_LazyFailureRetries(t *testing.T) {
	r := NewRegistry(WithLogger(quiet()))
	attempts := 0
	boom := stderrors.New("boom")
	r.RegisterLazy("flaky", func(ctx context.Context) (Builder, error) {
		attempts++
		if attempts == 1 {
			return nil, boom
		}
		return badge, nil
	})

	_, err := r.Resolve(context.Background(), "flaky")
	if !errors.IsCode(err, errors.CodeLoaderFailed) || !stderrors.Is(err, boom) {
		t.Fatalf("err = %v, want E011 wrapping boom", err)
	}
	if _, err := r.Resolve(context.Background(), "flaky"); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestRegistry_LazyNilBuilder(t *testing.T) {
	r := NewRegistry(WithLogger(quiet()))
	r.RegisterLazy("empty", func(context.Context) (Builder, error) { return nil, nil })
	if _, err := r.Resolve(context.Background(), "empty"); !errors.IsCode(err, errors.CodeLoaderFailed) {
		t.Errorf("err = %v, want E011", err)
	}
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	r := NewRegistry(WithLogger(quiet()))
	var mu sync.Mutex
	loads := 0
	r.RegisterLazy("badge", func(context.Context) (Builder, error) {
		mu.Lock()
		loads++
		mu.Unlock()
		return badge, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Resolve(context.Background(), "badge"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	r := NewRegistry(WithLogger(quiet()))
	r.Register("x", func(map[string]any) atome.Config { return atome.Config{"v": 1} })
	r.Register("x", func(map[string]any) atome.Config { return atome.Config{"v": 2} })
	b, _ := r.Resolve(context.Background(), "x")
	if b(nil)["v"] != 2 {
		t.Error("last registration should win")
	}
}

func TestRegistry_SyncAndMissing(t *testing.T) {
	r := NewRegistry(WithLogger(quiet()))
	r.Register("a", badge)
	r.Register("c", badge)
	r.Sync([]string{"c", "b", "a", "b"})

	if diff := cmp.Diff([]string{"a", "b", "c"}, r.Declared()); diff != "" {
		t.Errorf("Declared mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, r.Missing()); diff != "" {
		t.Errorf("Missing mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "c"}, r.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Build(t *testing.T) {
	r := NewRegistry(WithLogger(quiet()))
	r.Register("badge", badge)
	f := atome.NewFactory(dom.NewDocument(), nil)

	a, err := r.Build(context.Background(), f, "badge", map[string]any{"text": "new"})
	if err != nil {
		t.Fatal(err)
	}
	if !a.Node().HasClass("badge") || a.Node().Text() != "new" {
		t.Errorf("built node: classes=%v text=%q", a.Node().Classes(), a.Node().Text())
	}

	if _, err := r.Build(context.Background(), f, "missing", nil); !errors.IsCode(err, errors.CodeResolutionMiss) {
		t.Errorf("err = %v, want E001", err)
	}
}
