package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		page, size          int
		wantOffset, wantLim int
	}{
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{0, 0, 0, DefaultPageSize},
		{2, 500, DefaultPageSize, DefaultPageSize},
	}
	for _, tt := range tests {
		off, lim := Calculate(tt.page, tt.size)
		assert.Equal(t, tt.wantOffset, off)
		assert.Equal(t, tt.wantLim, lim)
	}
}

func TestCalculateHugePage(t *testing.T) {
	for _, page := range []int{math.MaxInt, math.MaxInt/10 + 1, 922337203685477581} {
		off, lim := Calculate(page, 10)
		assert.Equal(t, 10, lim)
		assert.GreaterOrEqual(t, off, 0)
		assert.GreaterOrEqual(t, off+lim, off, "offset+limit overflowed for page %d", page)
	}
}

func TestMeta(t *testing.T) {
	m := Meta(2, 10, 10, 25)
	assert.Equal(t, int64(3), m["total_pages"])
	assert.Equal(t, true, m["has_prev"])
	assert.Equal(t, true, m["has_next"])

	m = Meta(3, 20, 10, 25)
	assert.Equal(t, false, m["has_next"])
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("7", 1))
	assert.Equal(t, 1, ParseIntDefault("x", 1))

	v, err := ParseFloatPtr("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseFloatPtr("12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, *v)

	_, err = ParseFloatPtr("abc")
	assert.Error(t, err)
}
