// Package trace implements the graph-construction-time IR of the compiler
// frontend: symbolic tensors, the trace-op contract, and the shape-manipulating
// ops (reshape, squeeze, shape-of) with their inference and lowering logic.
//
//   - New creates a Trace; Trace.Input and Trace.ShapeInput declare inputs.
//   - Reshape, ReshapeShaped, Squeeze and ShapeOf build ops into the trace,
//     running dtype, rank and shape-tag inference eagerly at construction.
//   - Trace.Lower emits the equivalent flat IR, a pure read-only pass that can
//     run any number of times.
//
// Trace construction is single-threaded: each trace is owned by the context
// that builds it and must not be shared across goroutines until finalized.
package trace

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/shelkesagar29/TensorRT-Incubator/shapes"
)

// Trace owns the tensors and ops of one computation being traced, in program
// order.
type Trace struct {
	name   string
	device Device
	inputs []*Tensor
	ops    []Op
	nextID int
}

// New creates an empty trace. Tensors default to DeviceGPU; see WithDevice.
func New(name string) *Trace {
	return &Trace{name: name, device: DeviceGPU}
}

// WithDevice sets the device assigned to tensors created from now on.
// It returns the trace to allow chaining.
func (tr *Trace) WithDevice(device Device) *Trace {
	tr.device = device
	return tr
}

// Name returns the trace's name.
func (tr *Trace) Name() string { return tr.name }

// Ops returns the ops built so far, in program order.
func (tr *Trace) Ops() []Op { return tr.ops }

// Inputs returns the declared inputs, in declaration order.
func (tr *Trace) Inputs() []*Tensor { return tr.inputs }

// newTensor allocates a tensor owned by this trace. The rank starts as
// RankUnknown for op outputs until inference resolves it.
func (tr *Trace) newTensor(name string) *Tensor {
	t := &Tensor{
		trace:    tr,
		id:       tr.nextID,
		name:     name,
		rank:     RankUnknown,
		device:   tr.device,
		shapeLen: LenUnknown,
	}
	if name == "" {
		t.name = fmt.Sprintf("t%d", t.id)
	}
	tr.nextID++
	return t
}

// Input declares a trace input of the given dtype and static dimensions.
// Axes whose size is only known at execution time take shapes.DimUnknown.
func (tr *Trace) Input(name string, dtype dtypes.DType, dims ...int) *Tensor {
	for _, dim := range dims {
		if dim < 0 && dim != shapes.DimUnknown {
			exceptions.Panicf("trace.Input(%q): dimensions must be >= 0 or shapes.DimUnknown, got %v", name, dims)
		}
	}
	t := tr.newTensor(name)
	t.dtype = dtype
	t.rank = len(dims)
	t.dims = append([]int(nil), dims...)
	tr.inputs = append(tr.inputs, t)
	return t
}

// ShapeInput declares a rank-1 Int32 input already tagged as a Shape with the
// given number of entries, i.e. a shape fed to the trace as first-class data.
func (tr *Trace) ShapeInput(name string, length int) *Tensor {
	if length < 0 {
		exceptions.Panicf("trace.ShapeInput(%q): length must be >= 0, got %d", name, length)
	}
	t := tr.Input(name, dtypes.Int32, length)
	t.isShape = true
	t.shapeLen = length
	return t
}
