package trace

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelkesagar29/TensorRT-Incubator/flatir"
	"github.com/shelkesagar29/TensorRT-Incubator/shapes"
)

func countOps(fn *flatir.Function, opType flatir.OpType) int {
	count := 0
	for _, stmt := range fn.Statements {
		if stmt.OpType == opType {
			count++
		}
	}
	return count
}

func TestLowerStaticReshape(t *testing.T) {
	tr := New("main")
	x := tr.Input("x", dtypes.Float32, 2, 3)
	out, err := Reshape(x, Dim(1), Dim(6))
	require.NoError(t, err)

	fn, err := tr.Lower(out)
	require.NoError(t, err)
	want := "func main(%x: (Float32)[2, 3]) {\n" +
		"  %1 = constant[value=(Int32)[2]{1, 6}]() : (Int32)[2]\n" +
		"  %2 = dynamic_reshape(%x, %1) : (Float32)[1, 6]\n" +
		"  return(%2)\n" +
		"}\n"
	assert.Equal(t, want, fn.String())
}

func TestLowerIdempotent(t *testing.T) {
	tr := New("main")
	x := tr.Input("x", dtypes.Float32, shapes.DimUnknown, 4)
	y, err := Reshape(x, Dim(1), Wildcard())
	require.NoError(t, err)
	z, err := Squeeze(y, 0)
	require.NoError(t, err)

	first, err := tr.Lower(z)
	require.NoError(t, err)
	second, err := tr.Lower(z)
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
}

func TestLowerSymbolicWildcard(t *testing.T) {
	tr := New("main")
	x := tr.Input("x", dtypes.Float32, shapes.DimUnknown, 4)
	out, err := Reshape(x, Dim(2), Wildcard())
	require.NoError(t, err)

	fn, err := tr.Lower(out)
	require.NoError(t, err)

	// The wildcard size lowers to element_count / known_product, with the
	// element count multiplied out of the runtime shape.
	assert.Equal(t, 1, countOps(fn, flatir.ShapeOfOp))
	assert.Equal(t, 2, countOps(fn, flatir.SliceScalarOp))
	assert.Equal(t, 1, countOps(fn, flatir.MultiplyOp))
	assert.Equal(t, 1, countOps(fn, flatir.DivideOp))
	assert.Equal(t, 1, countOps(fn, flatir.ConcatenateOp))
	assert.Equal(t, 1, countOps(fn, flatir.DynamicReshapeOp))
}

func TestLowerTensorEntry(t *testing.T) {
	tr := New("main")
	x := tr.Input("x", dtypes.Float32, 2, 3)
	n := tr.Input("n", dtypes.Int32)
	out, err := Reshape(x, DimOf(n), Wildcard())
	require.NoError(t, err)

	fn, err := tr.Lower(out)
	require.NoError(t, err)

	// The scalar entry is lifted once and shared between the concatenated
	// target and the wildcard quotient; the static element count folds into
	// a constant instead of a runtime shape_of chain.
	assert.Equal(t, 1, countOps(fn, flatir.ExpandDimsOp))
	assert.Equal(t, 0, countOps(fn, flatir.ShapeOfOp))
	assert.Equal(t, 1, countOps(fn, flatir.DivideOp))
	assert.Equal(t, 1, countOps(fn, flatir.DynamicReshapeOp))
}

func TestLowerReshapeToScalar(t *testing.T) {
	// A rank-0 target has no entries; the shape tensor is the empty constant.
	tr := New("main")
	x := tr.Input("x", dtypes.Float32, 1, 1)
	out, err := Reshape(x)
	require.NoError(t, err)

	fn, err := tr.Lower(out)
	require.NoError(t, err)
	want := "func main(%x: (Float32)[1, 1]) {\n" +
		"  %1 = constant[value=(Int32)[0]{}]() : (Int32)[0]\n" +
		"  %2 = dynamic_reshape(%x, %1) : (Float32)[]\n" +
		"  return(%2)\n" +
		"}\n"
	assert.Equal(t, want, fn.String())
}

func TestLowerReshapeShaped(t *testing.T) {
	tr := New("main")
	x := tr.Input("x", dtypes.Float32, 2, 3)
	s := tr.ShapeInput("s", 2)
	out, err := ReshapeShaped(x, s)
	require.NoError(t, err)

	fn, err := tr.Lower(out)
	require.NoError(t, err)
	want := "func main(%x: (Float32)[2, 3], %s: (Int32)[2]) {\n" +
		"  %2 = dynamic_reshape(%x, %s) : (Float32)[?, ?]\n" +
		"  return(%2)\n" +
		"}\n"
	assert.Equal(t, want, fn.String())
}

func TestLowerSqueezeStatic(t *testing.T) {
	tr := New("main")
	x := tr.Input("x", dtypes.Float32, 1, 2, 1)
	out, err := Squeeze(x)
	require.NoError(t, err)

	fn, err := tr.Lower(out)
	require.NoError(t, err)
	want := "func main(%x: (Float32)[1, 2, 1]) {\n" +
		"  %1 = constant[value=(Int32)[1]{2}]() : (Int32)[1]\n" +
		"  %2 = dynamic_reshape(%x, %1) : (Float32)[2]\n" +
		"  return(%2)\n" +
		"}\n"
	assert.Equal(t, want, fn.String())
}

func TestLowerSqueezeExplicitAxes(t *testing.T) {
	// Explicit axes slice the retained sizes out of the runtime shape even
	// when the input is fully static; only remove-all folds to a constant.
	tr := New("main")
	x := tr.Input("x", dtypes.Float32, 1, 2, 1)
	out, err := Squeeze(x, 0, 2)
	require.NoError(t, err)

	fn, err := tr.Lower(out)
	require.NoError(t, err)
	assert.Equal(t, 1, countOps(fn, flatir.ShapeOfOp))
	assert.Equal(t, 1, countOps(fn, flatir.SliceScalarOp))
	assert.Equal(t, 0, countOps(fn, flatir.ConstantOp))
	assert.Equal(t, 1, countOps(fn, flatir.DynamicReshapeOp))
}

func TestLowerSqueezeDynamic(t *testing.T) {
	tr := New("main")
	x := tr.Input("x", dtypes.Float32, 1, shapes.DimUnknown)
	out, err := Squeeze(x, 0)
	require.NoError(t, err)

	fn, err := tr.Lower(out)
	require.NoError(t, err)
	want := "func main(%x: (Float32)[1, ?]) {\n" +
		"  %1 = shape_of(%x) : (Int32)[2]\n" +
		"  %2 = slice_scalar[index=1](%1) : (Int32)[1]\n" +
		"  %3 = dynamic_reshape(%x, %2) : (Float32)[?]\n" +
		"  return(%3)\n" +
		"}\n"
	assert.Equal(t, want, fn.String())
}

func TestLowerSqueezeToScalar(t *testing.T) {
	tr := New("main")
	x := tr.Input("x", dtypes.Float32, 1, 1)
	out, err := Squeeze(x)
	require.NoError(t, err)

	fn, err := tr.Lower(out)
	require.NoError(t, err)

	// Full collapse: the target shape is the empty constant.
	require.Equal(t, 1, countOps(fn, flatir.ConstantOp))
	constant := fn.Statements[0]
	assert.Equal(t, flatir.ConstantOp, constant.OpType)
	assert.Equal(t, "(Int32)[0]", constant.Outputs[0].Shape().String())
}

func TestLowerMultipleOutputs(t *testing.T) {
	tr := New("main")
	x := tr.Input("x", dtypes.Float32, 2, 3)
	s, err := ShapeOf(x)
	require.NoError(t, err)
	y, err := Reshape(x, Dim(6))
	require.NoError(t, err)

	fn, err := tr.Lower(s, y, x)
	require.NoError(t, err)
	ret := fn.Statements[len(fn.Statements)-1]
	assert.Equal(t, flatir.ReturnOp, ret.OpType)
	require.Len(t, ret.Inputs, 3)
	assert.Equal(t, "%x", ret.Inputs[2].String())
}

func TestLowerErrors(t *testing.T) {
	tr := New("main")
	tr.Input("x", dtypes.Float32, 2, 3)

	_, err := tr.Lower()
	require.Error(t, err)

	other := New("other")
	foreign := other.Input("y", dtypes.Float32, 2)
	_, err = tr.Lower(foreign)
	require.Error(t, err)
}

func BenchmarkTraceBuild(b *testing.B) {
	for range b.N {
		tr := New("bench")
		x := tr.Input("x", dtypes.Float32, 1, 32, 1)
		y, err := Reshape(x, Dim(1), Dim(32), Wildcard())
		if err != nil {
			b.Fatal(err)
		}
		if _, err := Squeeze(y, 0, 2); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLower(b *testing.B) {
	tr := New("bench")
	x := tr.Input("x", dtypes.Float32, shapes.DimUnknown, 4)
	y, err := Reshape(x, Dim(1), Wildcard())
	if err != nil {
		b.Fatal(err)
	}
	z, err := Squeeze(y, 0)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for range b.N {
		if _, err := tr.Lower(z); err != nil {
			b.Fatal(err)
		}
	}
}
