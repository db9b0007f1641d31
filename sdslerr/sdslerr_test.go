package sdslerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewf_formatsMessage(t *testing.T) {
	err := Newf("expected %s, got %d tokens", "identifier", 3)
	assert.Equal(t, "expected identifier, got 3 tokens", err.Error())
}

func TestExpectedf_populatesExpectedAndFound(t *testing.T) {
	err := Expectedf("'}'", "EOF", "closing %s body", "element")
	assert.Equal(t, "expected '}', found EOF", err.Error())
	assert.Equal(t, "closing element body", err.Detail)
	assert.Equal(t, "'}'", err.Expected)
	assert.Equal(t, "EOF", err.Found)
}

func TestWrap_preservesUnwrapChain(t *testing.T) {
	base := errors.New("root cause")
	wrapped := Wrap(base, "failed to parse relationship")

	assert.Equal(t, "failed to parse relationship", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))

	var target *SyntaxError
	require.True(t, errors.As(wrapped, &target))
	assert.Same(t, wrapped, target)
}
