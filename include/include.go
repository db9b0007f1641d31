// Package include implements the Include Resolver: file !include expansion
// with cycle detection, behind an externally supplied Loader so this
// package performs no file I/O of its own.
package include

import (
	"fmt"
)

// Loader abstracts file access for include resolution. The
// parser assumes only that Canonicalize is idempotent and that Load is
// side-effect-free with respect to parser state; sandboxing, caching, or
// mocking are entirely the implementation's concern.
type Loader interface {
	// Load returns the contents of path, and whether it could be loaded.
	// A non-nil error is wrapped and returned by Resolver.Enter. A false ok
	// with a nil error (a missing file, or the host declining the load)
	// makes Enter return ok=false with a nil error, so no error is
	// recorded for that include.
	Load(path string) (content string, ok bool, err error)

	// Canonicalize returns a normalized form of path suitable for use as a
	// cycle-detection and already-visited key.
	Canonicalize(path string) string
}

// CycleError is returned by Resolver.Enter when path is already on the
// current resolution stack.
type CycleError struct {
	Path  string
	Stack []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular include detected: %s (via %v)", e.Path, e.Stack)
}

// Resolver tracks the set of canonical paths already visited and the
// current resolution stack, guaranteeing include expansion terminates
// even in the presence of a cycle.
type Resolver struct {
	loader  Loader
	visited map[string]bool
	stack   []string
}

// NewResolver returns a Resolver over loader. loader may be nil, in which
// case every Enter call returns ok=false with a nil error and the caller
// should leave the corresponding IncludeDirective unexpanded with no
// diagnostic.
func NewResolver(loader Loader) *Resolver {
	return &Resolver{
		loader:  loader,
		visited: make(map[string]bool),
	}
}

// HasLoader reports whether a Loader was supplied.
func (r *Resolver) HasLoader() bool {
	return r.loader != nil
}

// AlreadyVisited reports whether the canonical form of path has already
// been entered, including a path whose resolution is still in progress
// (used to implement idempotent re-expansion).
func (r *Resolver) AlreadyVisited(path string) bool {
	return r.visited[r.loader.Canonicalize(path)]
}

// Enter begins resolving path: it checks for a cycle against the current
// resolution stack, and if none is found, loads the file and pushes path
// onto the stack. The returned leave function must be called (typically via
// defer) to pop the stack regardless of how resolution of path concludes.
//
// If path is already fully visited (not just on the stack), Enter returns
// ok=false with a nil error and a no-op leave: the caller should skip
// re-parsing it, since first-definition-wins.
func (r *Resolver) Enter(path string) (content string, ok bool, leave func(), err error) {
	if r.loader == nil {
		return "", false, func() {}, nil
	}

	canon := r.loader.Canonicalize(path)

	for _, onStack := range r.stack {
		if onStack == canon {
			return "", false, func() {}, &CycleError{Path: path, Stack: append([]string{}, r.stack...)}
		}
	}

	if r.visited[canon] {
		return "", false, func() {}, nil
	}

	data, loaded, loadErr := r.loader.Load(path)
	if loadErr != nil {
		return "", false, func() {}, fmt.Errorf("loading include %q: %w", path, loadErr)
	}
	if !loaded {
		return "", false, func() {}, nil
	}

	r.stack = append(r.stack, canon)
	r.visited[canon] = true

	leave = func() {
		if len(r.stack) > 0 {
			r.stack = r.stack[:len(r.stack)-1]
		}
	}
	return data, true, leave, nil
}
