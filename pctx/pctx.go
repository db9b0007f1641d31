// Package pctx implements the parser-wide Context Stack: scoped
// acquisition of nested parse contexts, released on every exit path
// including error recovery.
package pctx

import "strings"

// Context is a single nested parse scope. Name identifies the kind of
// block ("workspace", "model", "softwareSystem", …); Data carries whatever
// a sub-parser needs to make scope-aware decisions. The parser stores
// "currentElementID" in the context of a person or softwareSystem body and
// "identifierScheme" for an "!identifiers" directive; it sets no
// "currentElement" or "parentId" entries.
type Context struct {
	Name  string
	Label string // e.g. an element id, used only for the diagnostic breadcrumb
	Data  map[string]any
}

// Get returns Data[key] and whether it was present.
func (c Context) Get(key string) (any, bool) {
	v, ok := c.Data[key]
	return v, ok
}

// Set stores value under key in Data, allocating Data if necessary.
func (c *Context) Set(key string, value any) {
	if c.Data == nil {
		c.Data = make(map[string]any)
	}
	c.Data[key] = value
}

// breadcrumb renders the context for inclusion in a diagnostic's
// ContextPath, e.g. "softwareSystem[banking]".
func (c Context) breadcrumb() string {
	if c.Label == "" {
		return c.Name
	}
	return c.Name + "[" + c.Label + "]"
}

// Stack is a LIFO stack of Contexts. It is not safe for concurrent use;
// a Stack is exclusively owned by one Parser instance.
type Stack struct {
	contexts []Context
}

// Push acquires a new scope.
func (s *Stack) Push(c Context) {
	s.contexts = append(s.contexts, c)
}

// Pop releases the innermost scope. It is a no-op on an empty stack, which
// should never happen in correct caller code but must not panic: a caller
// recovering from a bug-induced fatal diagnostic may still call Pop once
// too many while unwinding.
func (s *Stack) Pop() {
	if len(s.contexts) == 0 {
		return
	}
	s.contexts = s.contexts[:len(s.contexts)-1]
}

// Current returns the innermost Context and whether the stack is non-empty.
// The returned Context is a copy; mutate Data through Set on the pointer
// returned by CurrentPtr if in-place mutation is required.
func (s *Stack) Current() (Context, bool) {
	if len(s.contexts) == 0 {
		return Context{}, false
	}
	return s.contexts[len(s.contexts)-1], true
}

// CurrentPtr returns a pointer to the innermost Context for in-place
// mutation (e.g. Set), or nil if the stack is empty.
func (s *Stack) CurrentPtr() *Context {
	if len(s.contexts) == 0 {
		return nil
	}
	return &s.contexts[len(s.contexts)-1]
}

// IsEmpty reports whether the stack has no contexts.
func (s *Stack) IsEmpty() bool {
	return len(s.contexts) == 0
}

// Size returns the number of contexts currently pushed.
func (s *Stack) Size() int {
	return len(s.contexts)
}

// Clear drops every context, resetting the stack to empty.
func (s *Stack) Clear() {
	s.contexts = nil
}

// Path renders the full breadcrumb trail, deepest context last, for use as
// a Diagnostic's ContextPath.
func (s *Stack) Path() string {
	parts := make([]string, len(s.contexts))
	for i, c := range s.contexts {
		parts[i] = c.breadcrumb()
	}
	return strings.Join(parts, "/")
}

// Scope pushes ctx and returns a function that pops it. Callers use it with
// defer to guarantee release on every exit path:
//
//	defer stack.Scope(pctx.Context{Name: "model"})()
func (s *Stack) Scope(c Context) func() {
	s.Push(c)
	return s.Pop
}
