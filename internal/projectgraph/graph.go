// Package projectgraph holds the project dependency graph. Edges point from
// a dependency to its dependents so that a topological order visits every
// dependency before the projects that use it.
package projectgraph

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dominikbraun/graph"
	"github.com/vk/varzip/internal/config"
	"github.com/vk/varzip/internal/ctxlog"
)

// Graph is an immutable, acyclic project graph.
type Graph struct {
	g graph.Graph[string, string]

	deps       map[string][]string
	dependents map[string][]string
	dangling   map[string][]string
}

// Build creates one vertex per project and one edge per project dependency.
// Dependencies on projects missing from the model are recorded as dangling
// and logged; they are not an error.
func Build(ctx context.Context, model *config.Model) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)

	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	paths := model.ProjectPaths()
	for _, path := range paths {
		if err := g.AddVertex(path); err != nil {
			return nil, fmt.Errorf("adding project %s: %w", path, err)
		}
	}

	dangling := make(map[string][]string)
	for _, path := range paths {
		for _, dep := range model.Projects[path].ProjectDeps() {
			if dep == path {
				return nil, cycleError([]string{path, path})
			}
			if _, ok := model.Projects[dep]; !ok {
				logger.Warn("Project depends on a project that is not defined.", "project", path, "dependency", dep)
				dangling[path] = append(dangling[path], dep)
				continue
			}
			if err := g.AddEdge(dep, path); err != nil {
				switch {
				case errors.Is(err, graph.ErrEdgeCreatesCycle):
					return nil, cycleError(cyclePath(g, path, dep))
				case errors.Is(err, graph.ErrEdgeAlreadyExists):
					continue
				default:
					return nil, fmt.Errorf("linking %s to %s: %w", dep, path, err)
				}
			}
		}
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	predecessors, err := g.PredecessorMap()
	if err != nil {
		return nil, err
	}

	pg := &Graph{
		g:          g,
		deps:       sortedKeys(predecessors),
		dependents: sortedKeys(adjacency),
		dangling:   dangling,
	}
	logger.Debug("Project graph built.", "projects", len(paths), "edges", pg.Size(), "dangling", len(dangling))
	return pg, nil
}

// cyclePath names the loop closed by the rejected edge dep -> dependent:
// dependent reaches dep through existing edges.
func cyclePath(g graph.Graph[string, string], dependent, dep string) []string {
	path, err := graph.ShortestPath(g, dependent, dep)
	if err != nil || len(path) == 0 {
		return []string{dep, dependent, dep}
	}
	return append(path, dependent)
}

func sortedKeys(m map[string]map[string]graph.Edge[string]) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, edges := range m {
		out[k] = slices.Sorted(maps.Keys(edges))
	}
	return out
}

// Len returns the number of projects.
func (pg *Graph) Len() int {
	return len(pg.deps)
}

// Size returns the number of dependency edges.
func (pg *Graph) Size() int {
	n := 0
	for _, deps := range pg.deps {
		n += len(deps)
	}
	return n
}

// Paths returns every project path in sorted order.
func (pg *Graph) Paths() []string {
	return slices.Sorted(maps.Keys(pg.deps))
}

// Dependencies returns the projects path directly depends on, sorted.
func (pg *Graph) Dependencies(path string) ([]string, error) {
	deps, ok := pg.deps[path]
	if !ok {
		return nil, unknownProject(path)
	}
	return deps, nil
}

// Dependents returns the projects directly depending on path, sorted.
func (pg *Graph) Dependents(path string) ([]string, error) {
	dependents, ok := pg.dependents[path]
	if !ok {
		return nil, unknownProject(path)
	}
	return dependents, nil
}

// Dangling returns the undefined projects path refers to.
func (pg *Graph) Dangling(path string) []string {
	return pg.dangling[path]
}

// Order returns every project with dependencies before dependents. Ties are
// broken by path so the order is stable across runs.
func (pg *Graph) Order() ([]string, error) {
	return graph.StableTopologicalSort(pg.g, func(a, b string) bool { return a < b })
}
