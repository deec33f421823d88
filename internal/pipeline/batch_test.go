package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/model"
)

// mapLoader serves input text from memory.
func mapLoader(inputs map[string]string) Loader {
	return func(source string) (string, error) {
		text, ok := inputs[source]
		if !ok {
			return "", os.ErrNotExist
		}
		return text, nil
	}
}

func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })

		if bp.concurrency != config.DefaultBatchSize {
			t.Errorf("expected default concurrency %d, got %d", config.DefaultBatchSize, bp.concurrency)
		}
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("applies options", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(5), WithWeek(3))

		if bp.concurrency != 5 {
			t.Errorf("expected concurrency 5, got %d", bp.concurrency)
		}
		if bp.week != 3 {
			t.Errorf("expected week 3, got %d", bp.week)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(0))

		if bp.concurrency != config.DefaultBatchSize {
			t.Errorf("expected default concurrency, got %d", bp.concurrency)
		}
	})
}

func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("results keep input order", func(t *testing.T) {
		t.Parallel()

		inputs := map[string]string{
			"a.txt": "slow",
			"b.txt": "fast",
			"c.txt": "medium",
		}
		delays := map[string]time.Duration{
			"slow":   30 * time.Millisecond,
			"fast":   0,
			"medium": 10 * time.Millisecond,
		}

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "sleep",
				doFunc: func(_ context.Context, card *model.Scorecard) error {
					time.Sleep(delays[card.RawText])
					return nil
				},
			})
			return p
		}, WithLoader(mapLoader(inputs)), WithConcurrency(3), WithWeek(2))

		sources := []string{"a.txt", "b.txt", "c.txt"}
		results, err := bp.ProcessBatch(context.Background(), sources)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(sources) {
			t.Fatalf("expected %d results, got %d", len(sources), len(results))
		}
		for i, src := range sources {
			if results[i].Source != src {
				t.Errorf("results[%d].Source = %q, want %q", i, results[i].Source, src)
			}
			if results[i].Week != 2 {
				t.Errorf("results[%d].Week = %d, want 2", i, results[i].Week)
			}
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int32
		var mu sync.Mutex

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "track",
				doFunc: func(_ context.Context, _ *model.Scorecard) error {
					n := current.Add(1)
					mu.Lock()
					if n > peak.Load() {
						peak.Store(n)
					}
					mu.Unlock()
					time.Sleep(10 * time.Millisecond)
					current.Add(-1)
					return nil
				},
			})
			return p
		}, WithConcurrency(2), WithLoader(func(string) (string, error) { return "", nil }))

		sources := []string{"1", "2", "3", "4", "5", "6"}
		if _, err := bp.ProcessBatch(context.Background(), sources); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak.Load() > 2 {
			t.Errorf("expected at most 2 concurrent parses, saw %d", peak.Load())
		}
	})

	t.Run("unreadable input yields a failed scorecard", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return DefaultPipeline(nil) },
			WithLoader(mapLoader(map[string]string{"ok.txt": rawSample})))

		results, err := bp.ProcessBatch(context.Background(), []string{"missing.txt", "ok.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !errors.Is(results[0].Error, os.ErrNotExist) {
			t.Errorf("expected read error on first scorecard, got %v", results[0].Error)
		}
		if results[1].Error != nil || len(results[1].Records) != 3 {
			t.Errorf("second scorecard should parse: err=%v records=%d", results[1].Error, len(results[1].Records))
		}
	})

	t.Run("failing pipeline keeps going", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "fail",
				doFunc: func(_ context.Context, _ *model.Scorecard) error {
					calls.Add(1)
					return errors.New("boom")
				},
			})
			return p
		}, WithLoader(func(string) (string, error) { return "x", nil }))

		results, err := bp.ProcessBatch(context.Background(), []string{"a", "b"})
		if err != nil {
			t.Fatalf("step failures must not fail the batch, got %v", err)
		}
		if calls.Load() != 2 {
			t.Errorf("expected both inputs processed, got %d", calls.Load())
		}
		for _, r := range results {
			if r.ErrorMessage != "boom" {
				t.Errorf("expected recorded error, got %q", r.ErrorMessage)
			}
		}
	})

	t.Run("cancelled batch returns context error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(func() *Pipeline { return New() },
			WithLoader(func(string) (string, error) { return "", nil }))

		_, err := bp.ProcessBatch(ctx, []string{"a", "b", "c"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestFileLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "card.txt")
	if err := os.WriteFile(path, []byte("43(+13) 12.4 Beachy"), 0o600); err != nil {
		t.Fatal(err)
	}

	load := FileLoader(strings.NewReader("from stdin"))

	text, err := load(path)
	if err != nil || text != "43(+13) 12.4 Beachy" {
		t.Errorf("load(file) = %q, %v", text, err)
	}

	text, err = load(StdinSource)
	if err != nil || text != "from stdin" {
		t.Errorf("load(stdin) = %q, %v", text, err)
	}

	if _, err := load(filepath.Join(dir, "nope.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestSourceName(t *testing.T) {
	t.Parallel()

	if got := sourceName(StdinSource); got != "stdin" {
		t.Errorf("sourceName(-) = %q", got)
	}
	if got := sourceName("week1.txt"); got != "week1.txt" {
		t.Errorf("sourceName(file) = %q", got)
	}
}
