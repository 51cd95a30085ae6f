package projectgraph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCycle is returned when projects depend on each other in a loop.
	ErrCycle = errors.New("dependency cycle detected")
	// ErrUnknownProject is returned when a lookup names a project outside the graph.
	ErrUnknownProject = errors.New("unknown project")
)

// GraphError wraps deterministic graph validation failures.
type GraphError struct {
	Kind error
	Msg  string
}

func (e *GraphError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *GraphError) Unwrap() error { return e.Kind }

func cycleError(path []string) error {
	msg := "cycle"
	if len(path) > 0 {
		msg = "cycle: " + strings.Join(path, " -> ")
	}
	return &GraphError{Kind: ErrCycle, Msg: msg}
}

func unknownProject(path string) error {
	return &GraphError{Kind: ErrUnknownProject, Msg: path}
}
