// Package executor compresses every project of a model, dependencies first,
// on a bounded pool of workers.
package executor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/varzip/internal/compress"
	"github.com/vk/varzip/internal/config"
	"github.com/vk/varzip/internal/ctxlog"
	"github.com/vk/varzip/internal/plan"
	"github.com/vk/varzip/internal/projectgraph"
	"github.com/vk/varzip/internal/resultstore"
	"golang.org/x/sync/errgroup"
)

// task is one project waiting for its dependencies.
type task struct {
	path       string
	depCount   atomic.Int32
	dependents []*task
}

// Executor walks a project graph and stores one compression result per
// project. An Executor runs once.
type Executor struct {
	model      *config.Model
	graph      *projectgraph.Graph
	results    resultstore.Store
	compressor *compress.Compressor
	numWorkers int

	mu        sync.Mutex
	decisions map[string][]compress.Decision
}

// New creates an executor. A numWorkers below one runs a single worker.
func New(
	model *config.Model,
	graph *projectgraph.Graph,
	results resultstore.Store,
	compressor *compress.Compressor,
	numWorkers int,
) *Executor {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if compressor == nil {
		compressor = compress.New(nil)
	}
	return &Executor{
		model:      model,
		graph:      graph,
		results:    results,
		compressor: compressor,
		numWorkers: numWorkers,
		decisions:  make(map[string][]compress.Decision),
	}
}

// Run compresses every project and returns the resulting plan. The first
// failure cancels the remaining work and is returned.
func (e *Executor) Run(ctx context.Context) (*plan.Plan, error) {
	logger := ctxlog.FromContext(ctx)

	tasks, err := e.buildTasks()
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		logger.Info("No projects to compress.")
		return plan.New(), nil
	}

	readyChan := make(chan *task, len(tasks))
	var remaining atomic.Int32
	remaining.Store(int32(len(tasks)))

	logger.Debug("Initializing executor, finding root projects...")
	rootCount := 0
	for _, t := range tasks {
		if t.depCount.Load() == 0 {
			readyChan <- t
			rootCount++
		}
	}
	logger.Debug("Found all root projects.", "count", rootCount)

	g, gctx := errgroup.WithContext(ctx)
	logger.Debug("Starting worker pool.", "workers", e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		workerID := i
		g.Go(func() error {
			return e.worker(gctx, readyChan, &remaining, workerID)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("All projects compressed.", "projects", len(tasks))

	return e.buildPlan(ctx)
}

// buildTasks returns the tasks in dependency order, so roots are queued
// deterministically and every dependent exists before it is linked.
func (e *Executor) buildTasks() ([]*task, error) {
	order, err := e.graph.Order()
	if err != nil {
		return nil, fmt.Errorf("ordering projects: %w", err)
	}

	byPath := make(map[string]*task, len(order))
	tasks := make([]*task, 0, len(order))
	for _, path := range order {
		t := &task{path: path}
		byPath[path] = t
		tasks = append(tasks, t)
	}
	for _, t := range tasks {
		deps, err := e.graph.Dependencies(t.path)
		if err != nil {
			return nil, err
		}
		t.depCount.Store(int32(len(deps)))

		dependents, err := e.graph.Dependents(t.path)
		if err != nil {
			return nil, err
		}
		for _, dependent := range dependents {
			t.dependents = append(t.dependents, byPath[dependent])
		}
	}
	return tasks, nil
}

func (e *Executor) buildPlan(ctx context.Context) (*plan.Plan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if stored := e.results.Len(ctx); stored != e.graph.Len() {
		return nil, fmt.Errorf("stored %d results for %d projects", stored, e.graph.Len())
	}

	projects := make([]*plan.ProjectPlan, 0, e.graph.Len())
	for _, path := range e.graph.Paths() {
		result, ok := e.results.Get(ctx, path)
		if !ok {
			return nil, fmt.Errorf("no result stored for project %s", path)
		}
		project := e.model.Projects[path]
		buildTypes := make(map[string]string, len(project.Variants))
		for name := range project.Variants {
			buildTypes[name] = project.BuildTypeOf(name)
		}
		projects = append(projects, &plan.ProjectPlan{
			Path:       path,
			BaseName:   project.BaseName(),
			Result:     result,
			Decisions:  e.decisions[path],
			BuildTypes: buildTypes,
			Undefined:  e.graph.Dangling(path),
		})
	}
	return plan.New(projects...), nil
}
