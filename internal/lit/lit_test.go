package lit

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromInts(t *testing.T) {
	l := must.M1(FromInts(dtypes.Int32, []int{1, 6}))
	assert.Equal(t, "(Int32)[2]", l.Shape.String())
	assert.Equal(t, []int{1, 6}, must.M1(l.Ints()))

	l = must.M1(FromInts(dtypes.Int64, []int{-1, 1 << 40}))
	assert.Equal(t, []int{-1, 1 << 40}, must.M1(l.Ints()))

	// Empty literal: the shape tensor of a full collapse to rank 0.
	l = must.M1(FromInts(dtypes.Int32, nil))
	assert.Equal(t, 0, l.Shape.Size())
	assert.Empty(t, must.M1(l.Ints()))

	_, err := FromInts(dtypes.Float32, []int{1})
	require.Error(t, err)
}

func TestFromFloats(t *testing.T) {
	l := must.M1(FromFloats(dtypes.Float32, []float64{1.5, -2}))
	assert.Equal(t, []float64{1.5, -2}, must.M1(l.Floats()))

	l = must.M1(FromFloats(dtypes.Float64, []float64{0.25}))
	assert.Equal(t, []float64{0.25}, must.M1(l.Floats()))

	// Float16 round-trips exactly for values representable in half precision.
	l = must.M1(FromFloats(dtypes.Float16, []float64{1, -0.5, 1024}))
	assert.Equal(t, []float64{1, -0.5, 1024}, must.M1(l.Floats()))

	_, err := FromFloats(dtypes.Int32, []float64{1})
	require.Error(t, err)
}

func TestString(t *testing.T) {
	l := must.M1(FromInts(dtypes.Int32, []int{2, 3}))
	assert.Equal(t, "(Int32)[2]{2, 3}", l.String())
}

func TestMismatchedDecode(t *testing.T) {
	l := must.M1(FromInts(dtypes.Int64, []int{1}))
	_, err := l.Floats()
	require.Error(t, err)
}
