package inmemoryresults

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/varzip/internal/compress"
	"github.com/vk/varzip/internal/resultstore"
)

// Store implements the resultstore.Store interface using a map and a mutex
// for thread-safe concurrent access.
type Store struct {
	mu      sync.RWMutex
	results map[string]*compress.Result
}

// New creates a new, empty in-memory result store.
func New() resultstore.Store {
	return &Store{results: make(map[string]*compress.Result)}
}

// Put stores result under path.
func (s *Store) Put(ctx context.Context, path string, result *compress.Result) error {
	if result == nil {
		return fmt.Errorf("nil result for project %s", path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[path]; exists {
		return fmt.Errorf("%w: %s", resultstore.ErrResultExists, path)
	}
	s.results[path] = result
	return nil
}

// Get retrieves the result of a single project.
func (s *Store) Get(ctx context.Context, path string) (*compress.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[path]
	return r, ok
}

// ResultsFor returns the results stored for paths.
func (s *Store) ResultsFor(ctx context.Context, paths []string) map[string]*compress.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*compress.Result, len(paths))
	for _, p := range paths {
		if r, ok := s.results[p]; ok {
			out[p] = r
		}
	}
	return out
}

// Len returns the number of stored results.
func (s *Store) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
