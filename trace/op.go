package trace

import (
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/shelkesagar29/TensorRT-Incubator/flatir"
)

// OpType enumerates the trace op kinds. The set is closed: inference and
// lowering are only defined for the ops below.
type OpType int

const (
	// InvalidOp - zero value, never built.
	InvalidOp OpType = iota

	// ReshapeOp - reshape to a target shape with optional wildcard entry.
	ReshapeOp

	// SqueezeOp - removal of size-1 axes.
	SqueezeOp

	// ShapeOfOp - a tensor's shape as a Shape-tagged rank-1 tensor.
	ShapeOfOp
)

// String returns a human-readable name for the op kind.
func (o OpType) String() string {
	switch o {
	case ReshapeOp:
		return "reshape"
	case SqueezeOp:
		return "squeeze"
	case ShapeOfOp:
		return "shape_of"
	default:
		return "invalid"
	}
}

// Op is a node of the trace graph. Concrete ops supply the per-kind inference
// steps and the lowering into flat IR; the shared construction machinery in
// finishOp drives them in a fixed order so an op is only ever observed fully
// inferred.
type Op interface {
	// Type identifies the op kind.
	Type() OpType

	// Inputs returns the op's input tensors. An op never mutates its inputs.
	Inputs() []*Tensor

	// Outputs returns the op's output tensors.
	Outputs() []*Tensor

	// inferDType sets the output dtypes from the fully-resolved inputs.
	inferDType()

	// inferRank resolves the output ranks, and any static dimension
	// information derivable alongside. It runs after inferDType.
	inferRank() error

	// propagatesShape is the Shape-tag policy for the output, a pure function
	// of the input tags and the resolved output rank. It runs after inferRank.
	propagatesShape() bool

	// inferLen reports the known entry count for a Shape-tagged output, or
	// LenUnknown. Only consulted when propagatesShape returned true.
	inferLen() int

	// lower emits the primitive IR for this op and returns the flat IR values
	// of its outputs, in order. It must not mutate the op and must emit
	// identical IR every time it runs.
	lower(fn *flatir.Function, values map[*Tensor]*flatir.Value) ([]*flatir.Value, error)
}

// baseOp holds the input/output plumbing shared by every op kind.
type baseOp struct {
	trace   *Trace
	inputs  []*Tensor
	outputs []*Tensor
}

func (op *baseOp) Inputs() []*Tensor  { return op.inputs }
func (op *baseOp) Outputs() []*Tensor { return op.outputs }

// newBaseOp checks the fixed arity of the op kind and allocates the output
// placeholder tensors, still uninferred.
func (tr *Trace) newBaseOp(opType OpType, numInputs, numOutputs int, inputs ...*Tensor) baseOp {
	if len(inputs) != numInputs {
		exceptions.Panicf("%s expects %d inputs, got %d", opType, numInputs, len(inputs))
	}
	for ii, input := range inputs {
		if input == nil {
			exceptions.Panicf("%s: input #%d is nil", opType, ii)
		}
		if input.trace != tr {
			exceptions.Panicf("%s: input #%d (%s) belongs to a different trace", opType, ii, input.name)
		}
	}
	outputs := make([]*Tensor, numOutputs)
	for ii := range outputs {
		outputs[ii] = tr.newTensor("")
	}
	return baseOp{trace: tr, inputs: inputs, outputs: outputs}
}

// finishOp runs the inference stages in their fixed order -- dtype, rank,
// shape-tag, then len for Shape-tagged outputs -- and registers the op. On any
// failure the op is discarded and its placeholders never escape.
func (tr *Trace) finishOp(op Op) error {
	op.inferDType()
	if err := op.inferRank(); err != nil {
		return err
	}
	for _, output := range op.Outputs() {
		if output.rank < 0 {
			exceptions.Panicf("%s inferred an invalid rank %d", op.Type(), output.rank)
		}
	}
	output := op.Outputs()[0]
	output.isShape = op.propagatesShape()
	if output.isShape {
		output.shapeLen = op.inferLen()
	}
	output.producer = op
	tr.ops = append(tr.ops, op)
	klog.V(1).Infof("trace %q: built %s -> %s", tr.name, op.Type(), output)
	return nil
}

// Shape-tag policies, keyed by op kind through each op's propagatesShape.

// shapeTagNever: the output is never treated as shape-describing.
func shapeTagNever(*Tensor, int) bool { return false }

// shapeTagIfRank1: the tag survives only when the input carried it and the
// resolved output rank is 1, so the output can still describe a shape.
func shapeTagIfRank1(input *Tensor, outputRank int) bool {
	return input.IsShape() && outputRank == 1
}

// shapeTagAlways: the op is itself a producer of shape-describing tensors.
func shapeTagAlways(*Tensor, int) bool { return true }
