package trace

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/shelkesagar29/TensorRT-Incubator/flatir"
	"github.com/shelkesagar29/TensorRT-Incubator/shapes"
)

type dimKind int

const (
	dimStatic dimKind = iota
	dimWildcard
	dimTensor
	dimInferred // Wildcard whose size is only computable at execution time.
)

// DimExpr is one entry of a reshape target shape: a literal size, the
// wildcard, or a scalar tensor whose runtime value gives the size.
type DimExpr struct {
	kind   dimKind
	size   int
	tensor *Tensor
}

// Dim is a literal target size. Dim(-1) is the wildcard, as a convenience.
func Dim(size int) DimExpr {
	if size == -1 {
		return Wildcard()
	}
	return DimExpr{kind: dimStatic, size: size}
}

// Dims converts literal sizes into target entries: Dims(1, -1, 3).
func Dims(sizes ...int) []DimExpr {
	entries := make([]DimExpr, len(sizes))
	for ii, size := range sizes {
		entries[ii] = Dim(size)
	}
	return entries
}

// Wildcard is the single target entry whose size is derived so the total
// element count is preserved.
func Wildcard() DimExpr {
	return DimExpr{kind: dimWildcard, size: -1}
}

// DimOf is a target entry given by an Int32 scalar tensor, i.e. a size only
// known at execution time.
func DimOf(t *Tensor) DimExpr {
	return DimExpr{kind: dimTensor, tensor: t}
}

// String implements fmt.Stringer.
func (d DimExpr) String() string {
	switch d.kind {
	case dimStatic:
		return strconv.Itoa(d.size)
	case dimWildcard:
		return "-1"
	case dimTensor:
		return d.tensor.name
	default:
		return "?"
	}
}

func formatTarget(target []DimExpr) string {
	parts := make([]string, len(target))
	for ii, entry := range target {
		parts[ii] = entry.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// reshape changes the shape of its data input while preserving the total
// element count and the element order.
type reshape struct {
	baseOp

	// outputRank is the explicit output rank, or RankUnknown when it must be
	// derived from the static length of a shape operand.
	outputRank int

	// outputLen is the known entry count when the output is itself a Shape,
	// otherwise LenUnknown.
	outputLen int

	// target holds the resolved target-shape entries; empty for a rank-0
	// target. Unused when shaped is set.
	target []DimExpr

	// shaped marks the ReshapeShaped form: the target is the tensor operand
	// at inputs[1] instead of literal entries.
	shaped bool
}

// Reshape builds a tensor with the contents of x in the target shape.
//
// Each target entry is a literal size (Dim), the wildcard (Wildcard or
// Dim(-1)) whose size is derived from the other entries so the element count
// is preserved, or an Int32 scalar tensor (DimOf). At most one entry may be
// the wildcard.
func Reshape(x *Tensor, target ...DimExpr) (output *Tensor, err error) {
	catchErr := exceptions.TryCatch[error](func() { output, err = buildReshape(x, target) })
	if catchErr != nil {
		return nil, catchErr
	}
	return output, err
}

func buildReshape(x *Tensor, target []DimExpr) (*Tensor, error) {
	for ii, entry := range target {
		switch entry.kind {
		case dimStatic:
			if entry.size < 0 {
				return nil, userArgumentErrorf("reshape target entry #%d is negative (%d) in shape=%s",
					ii, entry.size, formatTarget(target))
			}
		case dimTensor:
			t := entry.tensor
			if t == nil || t.rank != 0 || t.dtype != dtypes.Int32 {
				return nil, userArgumentErrorf("reshape target entry #%d must be an Int32 scalar tensor in shape=%s",
					ii, formatTarget(target))
			}
		}
	}
	resolved, err := resolveWildcard(x, target)
	if err != nil {
		return nil, err
	}

	// The entry count of a Shape output is only derivable for a static rank-1
	// target; anything else would require evaluating runtime values.
	outputLen := LenUnknown
	if x.IsShape() && len(resolved) == 1 && resolved[0].kind == dimStatic {
		outputLen = resolved[0].size
	}

	inputs := []*Tensor{x}
	for _, entry := range resolved {
		if entry.kind == dimTensor {
			inputs = append(inputs, entry.tensor)
		}
	}
	op := &reshape{
		baseOp:     x.trace.newBaseOp(ReshapeOp, len(inputs), 1, inputs...),
		outputRank: len(resolved),
		outputLen:  outputLen,
		target:     resolved,
	}
	if err := x.trace.finishOp(op); err != nil {
		return nil, err
	}
	return op.outputs[0], nil
}

// ReshapeShaped builds a tensor with the contents of x in the shape given by
// a rank-1 integer shape operand, whose values are only known at execution
// time. The output rank comes from the operand's statically-known length.
func ReshapeShaped(x, shapeOperand *Tensor) (output *Tensor, err error) {
	catchErr := exceptions.TryCatch[error](func() { output, err = buildReshapeShaped(x, shapeOperand) })
	if catchErr != nil {
		return nil, catchErr
	}
	return output, err
}

func buildReshapeShaped(x, shapeOperand *Tensor) (*Tensor, error) {
	if shapeOperand == nil || !shapeOperand.dtype.IsInt() {
		return nil, userArgumentErrorf("reshape shape operand must be an integer tensor")
	}
	op := &reshape{
		baseOp:     x.trace.newBaseOp(ReshapeOp, 2, 1, x, shapeOperand),
		outputRank: RankUnknown,
		outputLen:  LenUnknown,
		shaped:     true,
	}
	if err := x.trace.finishOp(op); err != nil {
		return nil, err
	}
	return op.outputs[0], nil
}

// resolveWildcard substitutes the single wildcard entry, if present, with the
// input's element count divided by the product of the explicit entries. The
// arithmetic is symbolic: quantities not statically known resolve to an entry
// computed during lowering instead of a guessed value.
func resolveWildcard(x *Tensor, target []DimExpr) ([]DimExpr, error) {
	wildcardIdx := -1
	for ii, entry := range target {
		if entry.kind != dimWildcard {
			continue
		}
		if wildcardIdx != -1 {
			return nil, userArgumentErrorf("reshape size operand can have only one dimension as -1, got shape=%s",
				formatTarget(target))
		}
		wildcardIdx = ii
	}
	if wildcardIdx == -1 {
		return target, nil
	}

	knownProduct := 1
	productIsStatic := true
	for ii, entry := range target {
		if ii == wildcardIdx {
			continue
		}
		if entry.kind == dimStatic {
			knownProduct *= entry.size
		} else {
			productIsStatic = false
		}
	}
	totalElements := elementCount(TraceShape(x))

	resolved := slices.Clone(target)
	if productIsStatic && totalElements != shapes.DimUnknown {
		if knownProduct == 0 || totalElements%knownProduct != 0 {
			return nil, userArgumentErrorf("reshape cannot infer the -1 dimension: %d elements do not divide evenly over shape=%s",
				totalElements, formatTarget(target))
		}
		resolved[wildcardIdx] = DimExpr{kind: dimStatic, size: totalElements / knownProduct}
	} else {
		resolved[wildcardIdx] = DimExpr{kind: dimInferred}
	}
	return resolved, nil
}

func (op *reshape) Type() OpType { return ReshapeOp }

// Output dtype is a pass-through from the data input.
func (op *reshape) inferDType() { op.outputs[0].dtype = op.inputs[0].dtype }

func (op *reshape) inferRank() error {
	output := op.outputs[0]
	if op.outputRank == RankUnknown {
		// The rank comes from the static length of the shape operand, never
		// from its values.
		operandShape := TraceShape(op.inputs[1])
		if len(operandShape) != 1 {
			return shapeInferenceErrorf("reshape shape operand %q must be rank 1, got rank %d",
				op.inputs[1].name, len(operandShape))
		}
		if operandShape[0] < 0 {
			return shapeInferenceErrorf("reshape output rank cannot be derived: the length of shape operand %q is not statically known",
				op.inputs[1].name)
		}
		output.rank = operandShape[0]
		return nil
	}
	output.rank = op.outputRank
	dims := make([]int, len(op.target))
	for ii, entry := range op.target {
		if entry.kind == dimStatic {
			dims[ii] = entry.size
		} else {
			dims[ii] = shapes.DimUnknown
		}
	}
	output.dims = dims
	return nil
}

func (op *reshape) propagatesShape() bool {
	return shapeTagIfRank1(op.inputs[0], op.outputs[0].rank)
}

func (op *reshape) inferLen() int { return op.outputLen }

func (op *reshape) lower(fn *flatir.Function, values map[*Tensor]*flatir.Value) ([]*flatir.Value, error) {
	data := values[op.inputs[0]]
	var shapeValue *flatir.Value
	if op.shaped {
		shapeValue = values[op.inputs[1]]
	} else {
		shapeValue = op.lowerTargetShape(fn, values)
	}
	output := fn.NewValue(op.outputs[0].Shape())
	fn.DynamicReshape(data, shapeValue, output)
	return []*flatir.Value{output}, nil
}

// lowerTargetShape materializes the resolved target entries as one rank-1
// shape tensor. Runs of consecutive static entries fold into a single
// constant.
func (op *reshape) lowerTargetShape(fn *flatir.Function, values map[*Tensor]*flatir.Value) *flatir.Value {
	if len(op.target) == 0 {
		// Rank-0 target: the empty shape tensor.
		return fn.ConstantInts(dtypes.Int32, nil)
	}

	// Scalar tensor entries lift to rank 1 once, shared between the segment
	// list and the inferred-entry quotient.
	expanded := make([]*flatir.Value, len(op.target))
	for ii, entry := range op.target {
		if entry.kind == dimTensor {
			expanded[ii] = fn.ExpandDims(values[entry.tensor])
		}
	}

	var segments []*flatir.Value
	var pendingStatic []int
	flush := func() {
		if len(pendingStatic) > 0 {
			segments = append(segments, fn.ConstantInts(dtypes.Int32, pendingStatic))
			pendingStatic = nil
		}
	}
	for ii, entry := range op.target {
		switch entry.kind {
		case dimStatic:
			pendingStatic = append(pendingStatic, entry.size)
		case dimTensor:
			flush()
			segments = append(segments, expanded[ii])
		case dimInferred:
			flush()
			segments = append(segments, op.lowerInferredEntry(fn, values, expanded))
		}
	}
	flush()
	if len(segments) == 1 {
		return segments[0]
	}
	return fn.Concatenate(segments...)
}

// lowerInferredEntry computes the wildcard size at execution time: the
// input's element count divided by the product of the other entries.
func (op *reshape) lowerInferredEntry(fn *flatir.Function, values map[*Tensor]*flatir.Value,
	expanded []*flatir.Value) *flatir.Value {
	input := op.inputs[0]
	var numerator *flatir.Value
	if total := elementCount(TraceShape(input)); total != shapes.DimUnknown {
		numerator = fn.ConstantInts(dtypes.Int32, []int{total})
	} else {
		inputShape := fn.ShapeOf(values[input])
		for axis := range input.rank {
			size := fn.SliceScalar(inputShape, axis)
			if numerator == nil {
				numerator = size
			} else {
				numerator = fn.Multiply(numerator, size)
			}
		}
	}

	staticProduct := 1
	var denominator *flatir.Value
	for ii, entry := range op.target {
		switch entry.kind {
		case dimStatic:
			staticProduct *= entry.size
		case dimTensor:
			if denominator == nil {
				denominator = expanded[ii]
			} else {
				denominator = fn.Multiply(denominator, expanded[ii])
			}
		}
	}
	if staticProduct != 1 {
		c := fn.ConstantInts(dtypes.Int32, []int{staticProduct})
		if denominator == nil {
			denominator = c
		} else {
			denominator = fn.Multiply(denominator, c)
		}
	}
	if denominator == nil {
		return numerator
	}
	return fn.Divide(numerator, denominator)
}
