package trace

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/shelkesagar29/TensorRT-Incubator/flatir"
)

// Lower converts the trace into a flat IR function returning the given
// tensors. Every recorded op lowers in construction order, so each op sees
// the flat IR values of all of its inputs.
func (tr *Trace) Lower(outputs ...*Tensor) (fn *flatir.Function, err error) {
	catchErr := exceptions.TryCatch[error](func() { fn, err = tr.lower(outputs) })
	if catchErr != nil {
		return nil, catchErr
	}
	return fn, err
}

func (tr *Trace) lower(outputs []*Tensor) (*flatir.Function, error) {
	if len(outputs) == 0 {
		return nil, errors.Errorf("trace %q cannot be lowered with no outputs", tr.name)
	}
	for _, out := range outputs {
		if out == nil || out.trace != tr {
			return nil, errors.Errorf("output tensor does not belong to trace %q", tr.name)
		}
	}

	fn := flatir.NewFunction(tr.name)
	values := make(map[*Tensor]*flatir.Value, len(tr.inputs)+len(tr.ops))
	for _, input := range tr.inputs {
		values[input] = fn.Parameter(input.name, input.Shape())
	}

	for opIdx, op := range tr.ops {
		lowered, err := op.lower(fn, values)
		if err != nil {
			return nil, errors.WithMessagef(err, "while lowering op #%d (%s) of trace %q",
				opIdx, op.Type(), tr.name)
		}
		for ii, out := range op.Outputs() {
			values[out] = lowered[ii]
		}
	}

	results := make([]*flatir.Value, len(outputs))
	for ii, out := range outputs {
		value, found := values[out]
		if !found {
			return nil, errors.Errorf("output tensor %q was not produced by trace %q", out.name, tr.name)
		}
		results[ii] = value
	}
	fn.Return(results...)
	klog.V(1).Infof("lowered trace %q: %d ops, %d outputs", tr.name, len(tr.ops), len(outputs))
	return fn, nil
}
