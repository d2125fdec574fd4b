package trace

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/pkg/support/sets"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/shelkesagar29/TensorRT-Incubator/flatir"
	"github.com/shelkesagar29/TensorRT-Incubator/shapes"
)

// squeeze removes size-1 axes from its input.
type squeeze struct {
	baseOp

	// axes to remove, sorted ascending. Empty means every size-1 axis of the
	// (fully static) input shape was removed.
	axes []int

	// outShape has one entry per remaining axis, shapes.DimUnknown where the
	// size is not statically known. Fully static on the remove-all path.
	outShape []int
}

// Squeeze builds a tensor with the contents of x and the given size-1 axes
// removed. With no axes, every size-1 axis is removed, which requires the
// shape of x to be statically known.
//
// An axis whose size is statically known and is not 1 fails with
// StaticShapeViolation. Axes whose size is only known at execution time are
// assumed to hold.
func Squeeze(x *Tensor, axes ...int) (output *Tensor, err error) {
	catchErr := exceptions.TryCatch[error](func() { output, err = buildSqueeze(x, axes) })
	if catchErr != nil {
		return nil, catchErr
	}
	return output, err
}

func buildSqueeze(x *Tensor, axes []int) (*Tensor, error) {
	inputDims := TraceShape(x)
	var sorted, outShape []int
	if len(axes) == 0 {
		// Which axes get removed depends on the actual sizes, so the output
		// rank is only well-defined for a fully static input.
		if !isStaticDims(inputDims) {
			return nil, shapeInferenceErrorf(
				"squeeze of %q with no axes requires a statically known shape, got %v",
				x.name, inputDims)
		}
		for _, size := range inputDims {
			if size != 1 {
				outShape = append(outShape, size)
			}
		}
	} else {
		seen := sets.Make[int]()
		for _, axis := range axes {
			if axis < 0 || axis >= x.rank {
				return nil, userArgumentErrorf("squeeze axis %d is out of range for %q of rank %d",
					axis, x.name, x.rank)
			}
			if seen.Has(axis) {
				return nil, userArgumentErrorf("squeeze axis %d given more than once for %q",
					axis, x.name)
			}
			seen.Insert(axis)
		}
		sorted = slices.Clone(axes)
		slices.Sort(sorted)
		for _, axis := range sorted {
			if size := inputDims[axis]; size != shapes.DimUnknown && size != 1 {
				return nil, staticShapeViolation(axis, size)
			}
		}
		removeIdx := 0
		for axis, size := range inputDims {
			if removeIdx < len(sorted) && sorted[removeIdx] == axis {
				removeIdx++
				continue
			}
			outShape = append(outShape, size)
		}
	}

	op := &squeeze{
		baseOp:   x.trace.newBaseOp(SqueezeOp, 1, 1, x),
		axes:     sorted,
		outShape: outShape,
	}
	if err := x.trace.finishOp(op); err != nil {
		return nil, err
	}
	return op.outputs[0], nil
}

func (op *squeeze) Type() OpType { return SqueezeOp }

func (op *squeeze) inferDType() { op.outputs[0].dtype = op.inputs[0].dtype }

func (op *squeeze) inferRank() error {
	output := op.outputs[0]
	output.rank = len(op.outShape)
	output.dims = op.outShape
	return nil
}

// A squeezed Shape would drop its defining rank-1 layout only when the input
// is rank 1 already, in which case squeezing produces a scalar. Either way
// the tag never survives.
func (op *squeeze) propagatesShape() bool {
	return shapeTagNever(op.inputs[0], op.outputs[0].rank)
}

func (op *squeeze) inferLen() int { return LenUnknown }

func (op *squeeze) lower(fn *flatir.Function, values map[*Tensor]*flatir.Value) ([]*flatir.Value, error) {
	data := values[op.inputs[0]]
	var shapeValue *flatir.Value
	if len(op.axes) == 0 {
		// Remove-all path: the retained sizes were fully resolved at
		// construction.
		shapeValue = fn.ConstantInts(dtypes.Int32, op.outShape)
	} else {
		// Explicit-axes path: sizes come from the input at execution time,
		// one slice per retained axis.
		var retained []int
		removeIdx := 0
		for axis := range op.inputs[0].rank {
			if removeIdx < len(op.axes) && op.axes[removeIdx] == axis {
				removeIdx++
				continue
			}
			retained = append(retained, axis)
		}
		if len(retained) == 0 {
			// Full collapse to rank 0: the empty shape tensor.
			shapeValue = fn.ConstantInts(dtypes.Int32, nil)
		} else {
			inputShape := fn.ShapeOf(data)
			entries := make([]*flatir.Value, len(retained))
			for ii, axis := range retained {
				entries[ii] = fn.SliceScalar(inputShape, axis)
			}
			if len(entries) == 1 {
				shapeValue = entries[0]
			} else {
				shapeValue = fn.Concatenate(entries...)
			}
		}
	}
	output := fn.NewValue(op.outputs[0].Shape())
	fn.DynamicReshape(data, shapeValue, output)
	return []*flatir.Value{output}, nil
}
