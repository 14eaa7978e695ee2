package taskgraph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Func is the work of one task.
type Func func(ctx context.Context) error

type task struct {
	name string
	deps []string
	fn   Func
}

// CycleError reports tasks that depend on each other.
type CycleError struct {
	Tasks []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("task graph has a cycle through %s", strings.Join(e.Tasks, ", "))
}

// Graph is a set of named tasks and their dependencies. It is not safe for
// concurrent modification.
type Graph struct {
	tasks map[string]*task
	names []string // insertion order
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{tasks: make(map[string]*task)}
}

// Add registers a task that runs fn after every task in deps succeeded.
func (g *Graph) Add(name string, deps []string, fn Func) error {
	if _, ok := g.tasks[name]; ok {
		return fmt.Errorf("task %q already added", name)
	}
	g.tasks[name] = &task{name: name, deps: deps, fn: fn}
	g.names = append(g.names, name)
	return nil
}

// Order returns the task names in an order where each task follows its
// dependencies, ties broken by insertion order. It fails on unknown
// dependencies and on cycles.
func (g *Graph) Order() ([]string, error) {
	indegree := make(map[string]int, len(g.tasks))
	dependents := make(map[string][]string)
	for _, name := range g.names {
		t := g.tasks[name]
		for _, d := range t.deps {
			if _, ok := g.tasks[d]; !ok {
				return nil, fmt.Errorf("task %q depends on unknown task %q", name, d)
			}
			indegree[name]++
			dependents[d] = append(dependents[d], name)
		}
	}

	var ready, order []string
	for _, name := range g.names {
		if indegree[name] == 0 {
			ready = append(ready, name)
		}
	}
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		for _, d := range dependents[name] {
			indegree[d]--
			if indegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(order) < len(g.names) {
		var stuck []string
		for name, n := range indegree {
			if n > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, &CycleError{Tasks: stuck}
	}
	return order, nil
}

// Run executes the graph and returns the first task error unchanged. Tasks
// whose dependencies did not all succeed are not started; running tasks are
// waited for.
func (g *Graph) Run(ctx context.Context) error {
	order, err := g.Order()
	if err != nil {
		return err
	}

	done := make(map[string]chan struct{}, len(order))
	for _, name := range order {
		done[name] = make(chan struct{})
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, name := range order {
		t := g.tasks[name]
		eg.Go(func() error {
			for _, d := range t.deps {
				select {
				case <-done[d]:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			// A dependency may have finished as a sibling failed.
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := t.fn(ctx); err != nil {
				return err
			}
			close(done[t.name])
			return nil
		})
	}
	return eg.Wait()
}
