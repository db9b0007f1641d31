package pctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_pushPopOrder(t *testing.T) {
	var s Stack
	assert.True(t, s.IsEmpty())

	s.Push(Context{Name: "workspace"})
	s.Push(Context{Name: "model"})
	s.Push(Context{Name: "softwareSystem", Label: "banking"})

	require.Equal(t, 3, s.Size())
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "softwareSystem", cur.Name)
	assert.Equal(t, "workspace/model/softwareSystem[banking]", s.Path())

	s.Pop()
	cur, ok = s.Current()
	require.True(t, ok)
	assert.Equal(t, "model", cur.Name)
}

func TestStack_scopeReleasesOnDefer(t *testing.T) {
	var s Stack
	func() {
		pop := s.Scope(Context{Name: "element"})
		defer pop()
		assert.Equal(t, 1, s.Size())
	}()
	assert.Equal(t, 0, s.Size())
}

func TestStack_popOnEmptyIsNoop(t *testing.T) {
	var s Stack
	assert.NotPanics(t, func() { s.Pop() })
	assert.Equal(t, 0, s.Size())
}

func TestContext_getSetViaCurrentPtr(t *testing.T) {
	var s Stack
	s.Push(Context{Name: "directive"})
	ptr := s.CurrentPtr()
	require.NotNil(t, ptr)
	ptr.Set("identifierScheme", "hierarchical")

	cur, _ := s.Current()
	v, ok := cur.Get("identifierScheme")
	require.True(t, ok)
	assert.Equal(t, "hierarchical", v)
}

func TestStack_clear(t *testing.T) {
	var s Stack
	s.Push(Context{Name: "a"})
	s.Push(Context{Name: "b"})
	s.Clear()
	assert.True(t, s.IsEmpty())
}
