package taskgraph

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder appends task names as they run.
type recorder struct {
	mu  sync.Mutex
	ran []string
}

func (r *recorder) task(name string, err error) Func {
	return func(context.Context) error {
		r.mu.Lock()
		r.ran = append(r.ran, name)
		r.mu.Unlock()
		return err
	}
}

func (r *recorder) index(name string) int {
	for i, n := range r.ran {
		if n == name {
			return i
		}
	}
	return -1
}

func TestOrder(t *testing.T) {
	g := New()
	g.Add("manifest", []string{"component", "module"}, nil)
	g.Add("metadata", nil, nil)
	g.Add("skeleton", []string{"metadata"}, nil)
	g.Add("module", []string{"metadata", "skeleton"}, nil)
	g.Add("component", []string{"skeleton"}, nil)

	got, err := g.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	want := []string{"metadata", "skeleton", "module", "component", "manifest"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
}

func TestAddDuplicate(t *testing.T) {
	g := New()
	if err := g.Add("a", nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := g.Add("a", nil, nil); err == nil {
		t.Error("expected error for duplicate task")
	}
}

func TestUnknownDependency(t *testing.T) {
	g := New()
	g.Add("a", []string{"ghost"}, nil)
	if err := g.Run(context.Background()); err == nil {
		t.Error("expected error for unknown dependency")
	}
}

func TestCycle(t *testing.T) {
	var r recorder
	g := New()
	g.Add("root", nil, r.task("root", nil))
	g.Add("a", []string{"root", "b"}, r.task("a", nil))
	g.Add("b", []string{"a"}, r.task("b", nil))

	err := g.Run(context.Background())
	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CycleError", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, ce.Tasks); diff != "" {
		t.Errorf("cycle tasks mismatch (-want +got):\n%s", diff)
	}
	if len(r.ran) != 0 {
		t.Errorf("tasks ran despite cycle: %v", r.ran)
	}
}

func TestRunRespectsDependencies(t *testing.T) {
	var r recorder
	g := New()
	g.Add("metadata", nil, r.task("metadata", nil))
	g.Add("skeleton", []string{"metadata"}, r.task("skeleton", nil))
	g.Add("artifacts", []string{"skeleton"}, r.task("artifacts", nil))
	g.Add("template", []string{"skeleton"}, r.task("template", nil))
	g.Add("model", []string{"artifacts", "template"}, r.task("model", nil))

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(r.ran) != 5 {
		t.Fatalf("ran %v, want 5 tasks", r.ran)
	}
	for _, edge := range [][2]string{
		{"metadata", "skeleton"},
		{"skeleton", "artifacts"},
		{"skeleton", "template"},
		{"artifacts", "model"},
		{"template", "model"},
	} {
		if r.index(edge[0]) > r.index(edge[1]) {
			t.Errorf("%s ran after %s: %v", edge[0], edge[1], r.ran)
		}
	}
}

type kindError struct{}

func (kindError) Error() string { return "boom" }

func TestRunStopsOnFailure(t *testing.T) {
	var r recorder
	g := New()
	g.Add("metadata", nil, r.task("metadata", nil))
	g.Add("skeleton", []string{"metadata"}, r.task("skeleton", kindError{}))
	g.Add("template", []string{"skeleton"}, r.task("template", nil))
	g.Add("model", []string{"template"}, r.task("model", nil))

	err := g.Run(context.Background())
	var ke kindError
	if !errors.As(err, &ke) {
		t.Fatalf("err = %v, want kindError", err)
	}
	if diff := cmp.Diff([]string{"metadata", "skeleton"}, r.ran); diff != "" {
		t.Errorf("ran mismatch (-want +got):\n%s", diff)
	}
}

func TestRunConcurrentBranches(t *testing.T) {
	// Each branch waits for the other to start, so a sequential runner would
	// deadlock.
	var wg sync.WaitGroup
	wg.Add(2)
	branch := func(context.Context) error {
		wg.Done()
		wg.Wait()
		return nil
	}

	g := New()
	g.Add("root", nil, func(context.Context) error { return nil })
	g.Add("left", []string{"root"}, branch)
	g.Add("right", []string{"root"}, branch)

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
