package flatir

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/shelkesagar29/TensorRT-Incubator/internal/lit"
	"github.com/shelkesagar29/TensorRT-Incubator/shapes"
)

// Builders for the primitive op set. None of these validate their operands:
// the trace ops emitting them already have.

// Constant materializes a literal.
func (fn *Function) Constant(literal lit.Literal) *Value {
	output := fn.NewValue(literal.Shape)
	fn.addOp(ConstantOp, nil, []*Value{output}, map[string]any{"value": literal})
	return output
}

// ConstantInts materializes a rank-1 integer constant. An empty values list
// produces the empty shape tensor.
func (fn *Function) ConstantInts(dtype dtypes.DType, values []int) *Value {
	literal, err := lit.FromInts(dtype, values)
	if err != nil {
		exceptions.Panicf("flatir.ConstantInts: %v", err)
	}
	return fn.Constant(literal)
}

// ConstantFloats materializes a rank-1 float constant.
func (fn *Function) ConstantFloats(dtype dtypes.DType, values []float64) *Value {
	literal, err := lit.FromFloats(dtype, values)
	if err != nil {
		exceptions.Panicf("flatir.ConstantFloats: %v", err)
	}
	return fn.Constant(literal)
}

// ShapeOf returns the runtime shape of x as a rank-1 Int32 tensor.
func (fn *Function) ShapeOf(x *Value) *Value {
	output := fn.NewValue(shapes.Make(dtypes.Int32, x.shape.Rank()))
	fn.addOp(ShapeOfOp, []*Value{x}, []*Value{output}, nil)
	return output
}

// SliceScalar slices the single size at index out of the rank-1 tensor x,
// keeping the result rank-1 so it can be concatenated.
func (fn *Function) SliceScalar(x *Value, index int) *Value {
	output := fn.NewValue(shapes.Make(x.shape.DType, 1))
	fn.addOp(SliceScalarOp, []*Value{x}, []*Value{output}, map[string]any{"index": index})
	return output
}

// Concatenate joins rank-1 tensors along their single axis.
func (fn *Function) Concatenate(xs ...*Value) *Value {
	size := 0
	for _, x := range xs {
		dim := x.shape.Dimensions[0]
		if dim == shapes.DimUnknown || size == shapes.DimUnknown {
			size = shapes.DimUnknown
			continue
		}
		size += dim
	}
	output := fn.NewValue(shapes.MakeDynamic(xs[0].shape.DType, size))
	fn.addOp(ConcatenateOp, xs, []*Value{output}, nil)
	return output
}

// ExpandDims lifts a scalar to a one-element rank-1 tensor, so it can join a
// Concatenate building a shape tensor.
func (fn *Function) ExpandDims(x *Value) *Value {
	output := fn.NewValue(shapes.Make(x.shape.DType, 1))
	fn.addOp(ExpandDimsOp, []*Value{x}, []*Value{output}, nil)
	return output
}

// Multiply is the element-wise product of two same-shaped tensors.
func (fn *Function) Multiply(lhs, rhs *Value) *Value {
	output := fn.NewValue(lhs.shape.Clone())
	fn.addOp(MultiplyOp, []*Value{lhs, rhs}, []*Value{output}, nil)
	return output
}

// Divide is the element-wise quotient of two same-shaped tensors.
func (fn *Function) Divide(lhs, rhs *Value) *Value {
	output := fn.NewValue(lhs.shape.Clone())
	fn.addOp(DivideOp, []*Value{lhs, rhs}, []*Value{output}, nil)
	return output
}

// DynamicReshape reshapes data to the runtime sizes held by the rank-1 shape
// tensor, binding the result to the pre-allocated output value.
func (fn *Function) DynamicReshape(data, shape *Value, output *Value) *Statement {
	return fn.addOp(DynamicReshapeOp, []*Value{data, shape}, []*Value{output}, nil)
}

// Return terminates the function with the given results. Adding further
// statements after Return is a caller bug and panics.
func (fn *Function) Return(results ...*Value) *Statement {
	if fn.returned {
		exceptions.Panicf("flatir: function %q already returned", fn.Name)
	}
	fn.returned = true
	return fn.addOp(ReturnOp, results, nil, nil)
}
