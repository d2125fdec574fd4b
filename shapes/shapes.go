// Package shapes defines the symbolic shape representation shared by the trace
// and flat IR layers.
//
// A Shape is a DType (e.g.: Float32, Int64) plus the dimension of each axis of
// a tensor. A dimension whose size is only resolved during execution is marked
// with DimUnknown. If len(Dimensions) is 0, the shape is a scalar.
package shapes

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// DimUnknown marks an axis whose size is not known at graph construction time.
const DimUnknown = -1

// Shape is a minimalistic symbolic shape representation of a tensor.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make returns a fully static Shape with the values given.
//
// All dimensions must be >= 0. Use MakeDynamic if some axes are unknown.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	s := Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
	for _, dim := range dimensions {
		if dim < 0 {
			exceptions.Panicf("shapes.Make(%s): cannot create a static shape with a negative dimension, use MakeDynamic instead", s)
		}
	}
	return s
}

// MakeDynamic returns a Shape that may contain DimUnknown axes.
func MakeDynamic(dtype dtypes.DType, dimensions ...int) Shape {
	s := Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
	for _, dim := range dimensions {
		if dim < 0 && dim != DimUnknown {
			exceptions.Panicf("shapes.MakeDynamic(%s): dimensions must be >= 0 or DimUnknown", s)
		}
	}
	return s
}

// Scalar returns the rank-0 shape of the given dtype.
func Scalar(dtype dtypes.DType) Shape {
	return Shape{DType: dtype}
}

// Rank of a shape is the number of axes. Scalar values have rank 0.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar returns whether the shape has rank 0.
func (s Shape) IsScalar() bool { return s.Rank() == 0 }

// IsFullyDefined returns whether every axis has a static size.
func (s Shape) IsFullyDefined() bool {
	for _, dim := range s.Dimensions {
		if dim < 0 {
			return false
		}
	}
	return true
}

// Size returns the total element count of the shape, or DimUnknown if any axis
// is dynamic. A scalar has size 1.
func (s Shape) Size() int {
	size := 1
	for _, dim := range s.Dimensions {
		if dim < 0 {
			return DimUnknown
		}
		size *= dim
	}
	return size
}

// Clone makes a deep copy of the shape.
func (s Shape) Clone() (newS Shape) {
	newS.DType = s.DType
	if len(s.Dimensions) > 0 {
		newS.Dimensions = slices.Clone(s.Dimensions)
	}
	return newS
}

// Equal returns whether the two shapes have the same dtype and exact same
// dimensions -- DimUnknown only equals DimUnknown.
func (s Shape) Equal(o Shape) bool {
	return s.DType == o.DType && slices.Equal(s.Dimensions, o.Dimensions)
}

// Compatible returns whether the two shapes could describe the same tensor:
// same dtype and rank, and every static axis matching. DimUnknown is
// compatible with any size.
func (s Shape) Compatible(o Shape) bool {
	if s.DType != o.DType || s.Rank() != o.Rank() {
		return false
	}
	for axis, dim := range s.Dimensions {
		otherDim := o.Dimensions[axis]
		if dim == DimUnknown || otherDim == DimUnknown {
			continue
		}
		if dim != otherDim {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer and pretty-prints the shape, with "?" for
// dynamic axes.
func (s Shape) String() string {
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)[]", s.DType)
	}
	parts := make([]string, 0, s.Rank())
	for _, dim := range s.Dimensions {
		if dim == DimUnknown {
			parts = append(parts, "?")
		} else {
			parts = append(parts, strconv.Itoa(dim))
		}
	}
	return fmt.Sprintf("(%s)[%s]", s.DType, strings.Join(parts, ", "))
}
