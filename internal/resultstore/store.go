// Package resultstore defines the interface for storing compression results
// while the executor walks the project graph.
//
// # Why Result Store Exists
//
// A project can only be compressed once the results of its direct project
// dependencies are known: phase 1 blocks build types whose dependencies
// were expanded, and phase 2 requires every dependency to be fully
// compressed. The store is the hand-off point between the worker that
// finished a dependency and the workers that later compress its dependents.
//
// # Lifecycle and Usage
//
// The store is:
//  1. **Created** once per run (ephemeral, not persistent across runs)
//  2. **Written** exactly once per project, by the worker that compressed it
//  3. **Read** by workers compressing dependents, and by the planner at the end
//
// Results are append-only. A second Put for the same project is a bug in the
// scheduler and is reported as ErrResultExists rather than silently
// overwriting what dependents may already have read.
package resultstore

import (
	"context"
	"errors"

	"github.com/vk/varzip/internal/compress"
)

// ErrResultExists is returned when a project's result is stored twice.
var ErrResultExists = errors.New("result already stored")

// Store holds one compression result per project path.
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for concurrent use: workers store results
// while other workers read the results of their dependencies.
//
// # Typical Implementation
//
// See internal/inmemoryresults for the in-memory implementation using a map
// and sync.RWMutex.
type Store interface {
	// Put records the result of path. Results of a path cannot be replaced.
	Put(ctx context.Context, path string, result *compress.Result) error

	// Get returns the result of path, if one was stored.
	Get(ctx context.Context, path string) (*compress.Result, bool)

	// ResultsFor returns the stored results of the given paths keyed by
	// path. Paths without a result are left out, which callers treat as
	// "not blocking".
	ResultsFor(ctx context.Context, paths []string) map[string]*compress.Result

	// Len returns the number of stored results.
	Len(ctx context.Context) int
}
