package trace

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/shelkesagar29/TensorRT-Incubator/flatir"
)

// shapeOf materializes the runtime shape of its input as an Int32 rank-1
// tensor with one entry per axis.
type shapeOf struct {
	baseOp
}

// ShapeOf builds the runtime shape of x as a Shape tensor: Int32, rank 1,
// with x.Rank() entries.
func ShapeOf(x *Tensor) (output *Tensor, err error) {
	catchErr := exceptions.TryCatch[error](func() { output, err = buildShapeOf(x) })
	if catchErr != nil {
		return nil, catchErr
	}
	return output, err
}

func buildShapeOf(x *Tensor) (*Tensor, error) {
	op := &shapeOf{
		baseOp: x.trace.newBaseOp(ShapeOfOp, 1, 1, x),
	}
	if err := x.trace.finishOp(op); err != nil {
		return nil, err
	}
	return op.outputs[0], nil
}

func (op *shapeOf) Type() OpType { return ShapeOfOp }

func (op *shapeOf) inferDType() { op.outputs[0].dtype = dtypes.Int32 }

func (op *shapeOf) inferRank() error {
	output := op.outputs[0]
	output.rank = 1
	output.dims = []int{op.inputs[0].rank}
	return nil
}

func (op *shapeOf) propagatesShape() bool {
	return shapeTagAlways(op.inputs[0], op.outputs[0].rank)
}

func (op *shapeOf) inferLen() int { return op.inputs[0].rank }

func (op *shapeOf) lower(fn *flatir.Function, values map[*Tensor]*flatir.Value) ([]*flatir.Value, error) {
	return []*flatir.Value{fn.ShapeOf(values[op.inputs[0]])}, nil
}
