package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	p := Page{}.Normalize()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, DefaultPageSize, p.Size)

	p = Page{Number: -3, Size: 100000}.Normalize()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, MaxPageSize, p.Size)
}

func TestPageOffsetLimit(t *testing.T) {
	p := Page{Number: 3, Size: 25}
	assert.Equal(t, 50, p.Offset())
	assert.Equal(t, 25, p.Limit())
}
