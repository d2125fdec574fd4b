package trace

import (
	"slices"

	"github.com/shelkesagar29/TensorRT-Incubator/shapes"
)

// TraceShape returns the best-effort statically-known shape of t as one size
// per axis, with shapes.DimUnknown for every axis whose size is only resolved
// at execution time. The result always has exactly t.Rank() entries.
func TraceShape(t *Tensor) []int {
	if t.dims != nil {
		return slices.Clone(t.dims)
	}
	dims := make([]int, t.rank)
	for axis := range dims {
		dims[axis] = shapes.DimUnknown
	}
	return dims
}

// elementCount returns the symbolic product of the given per-axis sizes:
// shapes.DimUnknown if any axis is unknown, 1 for an empty list (a scalar).
func elementCount(dims []int) int {
	total := 1
	for _, dim := range dims {
		if dim == shapes.DimUnknown {
			return shapes.DimUnknown
		}
		total *= dim
	}
	return total
}

// isStaticDims reports whether every axis has a known size.
func isStaticDims(dims []int) bool {
	for _, dim := range dims {
		if dim == shapes.DimUnknown {
			return false
		}
	}
	return true
}
