package trace

import (
	"fmt"
	"slices"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/shelkesagar29/TensorRT-Incubator/shapes"
)

// Device identifies where a tensor's data lives during execution.
type Device string

const (
	// DeviceGPU is the default device of traced tensors.
	DeviceGPU Device = "gpu"

	// DeviceCPU keeps a tensor in host memory.
	DeviceCPU Device = "cpu"
)

const (
	// RankUnknown marks a rank not yet resolved by inference.
	RankUnknown = -1

	// LenUnknown marks a Shape-tagged tensor whose entry count is not known
	// without evaluating runtime values.
	LenUnknown = -1
)

// Tensor is a symbolic value of the trace graph. It is created either as a
// trace input or as the output placeholder of an op, and is immutable once the
// op that produced it finished inference.
//
// A Tensor may be tagged as a Shape, meaning its values are the dimension
// sizes of another tensor. The tag is a property of provenance: it is set by
// the producing op, never deduced from the rank alone.
type Tensor struct {
	trace    *Trace
	id       int
	name     string
	dtype    dtypes.DType
	rank     int
	device   Device
	dims     []int // Static sizes with shapes.DimUnknown markers; nil when no static info.
	isShape  bool
	shapeLen int
	producer Op // nil for trace inputs.
}

// DType returns the tensor's data type.
func (t *Tensor) DType() dtypes.DType { return t.dtype }

// Rank returns the number of axes.
func (t *Tensor) Rank() int { return t.rank }

// Device returns where the tensor's data lives during execution.
func (t *Tensor) Device() Device { return t.device }

// Name returns the tensor's name: the user-given name for inputs, an
// auto-assigned one for op outputs.
func (t *Tensor) Name() string { return t.name }

// IsShape returns whether the tensor is tagged as a Shape: a rank-1 tensor
// whose values are the dimension sizes of another tensor.
func (t *Tensor) IsShape() bool { return t.isShape }

// Len returns the number of entries of a Shape-tagged tensor, or LenUnknown
// when it cannot be derived without evaluating runtime values. It is only
// meaningful when IsShape is true.
func (t *Tensor) Len() int { return t.shapeLen }

// Producer returns the op that created this tensor, or nil for trace inputs.
func (t *Tensor) Producer() Op { return t.producer }

// StaticDims returns a copy of the statically-known per-axis sizes, with
// shapes.DimUnknown markers, or nil when no static information is recorded.
func (t *Tensor) StaticDims() []int {
	if t.dims == nil {
		return nil
	}
	return slices.Clone(t.dims)
}

// Shape returns the tensor's symbolic shape, filling axes without static
// information with shapes.DimUnknown.
func (t *Tensor) Shape() shapes.Shape {
	return shapes.MakeDynamic(t.dtype, TraceShape(t)...)
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	if t.isShape {
		return fmt.Sprintf("%s: %s shape", t.name, t.Shape())
	}
	return fmt.Sprintf("%s: %s", t.name, t.Shape())
}
