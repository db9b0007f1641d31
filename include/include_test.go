package include

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	files map[string]string
}

func (f *fakeLoader) Load(path string) (string, bool, error) {
	content, ok := f.files[path]
	return content, ok, nil
}

func (f *fakeLoader) Canonicalize(path string) string {
	return path
}

func TestResolver_noLoaderDeclinesSilently(t *testing.T) {
	r := NewResolver(nil)
	assert.False(t, r.HasLoader())
	_, ok, leave, err := r.Enter("shared.dsl")
	defer leave()
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestResolver_loadsFileOnce(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{"shared.dsl": "person \"User\""}}
	r := NewResolver(loader)

	content, ok, leave, err := r.Enter("shared.dsl")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "person \"User\"", content)
	leave()

	assert.True(t, r.AlreadyVisited("shared.dsl"))

	_, ok, leave2, err := r.Enter("shared.dsl")
	defer leave2()
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestResolver_detectsCycle(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{
		"a.dsl": "!include b.dsl",
		"b.dsl": "!include a.dsl",
	}}
	r := NewResolver(loader)

	_, ok, leaveA, err := r.Enter("a.dsl")
	require.NoError(t, err)
	require.True(t, ok)
	defer leaveA()

	_, ok, leaveB, err := r.Enter("b.dsl")
	require.NoError(t, err)
	require.True(t, ok)
	defer leaveB()

	_, ok, leaveCycle, err := r.Enter("a.dsl")
	defer leaveCycle()
	assert.False(t, ok)
	require.Error(t, err)
	var cycleErr *CycleError
	assert.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, "a.dsl", cycleErr.Path)
}

func TestResolver_missingFileReportsNoError(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{}}
	r := NewResolver(loader)
	_, ok, leave, err := r.Enter("missing.dsl")
	defer leave()
	assert.False(t, ok)
	assert.NoError(t, err)
}
