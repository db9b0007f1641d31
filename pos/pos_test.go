package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStart_isLineOneColumnOne(t *testing.T) {
	p := Start()
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, p)
	assert.False(t, p.IsZero())
}

func TestZero_isZeroValue(t *testing.T) {
	assert.True(t, Zero.IsZero())
	assert.True(t, Position{}.IsZero())
}

func TestString_rendersLineColonColumn(t *testing.T) {
	p := Position{Line: 3, Column: 7, Offset: 42}
	assert.Equal(t, "3:7", p.String())
}
