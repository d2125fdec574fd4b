// Package lit encodes flat IR constant literals into their byte representation.
//
// The trace layer materializes shape tensors and scalar sizes as flat IR
// constants; this package holds the dtype-switched encoding and decoding those
// constants need.
package lit

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/shelkesagar29/TensorRT-Incubator/shapes"
)

// Literal is a constant tensor value: its shape and the flat row-major data.
type Literal struct {
	Shape shapes.Shape
	Data  []byte
}

// FromInts creates a rank-1 literal of the given integer dtype.
//
// An empty values list is valid and produces a zero-length literal, used for
// the empty shape tensor of a full rank collapse.
func FromInts(dtype dtypes.DType, values []int) (Literal, error) {
	l := Literal{Shape: shapes.Make(dtype, len(values))}
	switch dtype {
	case dtypes.Int32:
		l.Data = make([]byte, 4*len(values))
		for ii, v := range values {
			binary.LittleEndian.PutUint32(l.Data[4*ii:], uint32(int32(v)))
		}
	case dtypes.Int64:
		l.Data = make([]byte, 8*len(values))
		for ii, v := range values {
			binary.LittleEndian.PutUint64(l.Data[8*ii:], uint64(int64(v)))
		}
	default:
		return Literal{}, errors.Errorf("lit.FromInts: unsupported dtype %s", dtype)
	}
	return l, nil
}

// FromFloats creates a rank-1 literal of the given float dtype.
func FromFloats(dtype dtypes.DType, values []float64) (Literal, error) {
	l := Literal{Shape: shapes.Make(dtype, len(values))}
	switch dtype {
	case dtypes.Float16:
		l.Data = make([]byte, 2*len(values))
		for ii, v := range values {
			binary.LittleEndian.PutUint16(l.Data[2*ii:], float16.Fromfloat32(float32(v)).Bits())
		}
	case dtypes.Float32:
		l.Data = make([]byte, 4*len(values))
		for ii, v := range values {
			binary.LittleEndian.PutUint32(l.Data[4*ii:], math.Float32bits(float32(v)))
		}
	case dtypes.Float64:
		l.Data = make([]byte, 8*len(values))
		for ii, v := range values {
			binary.LittleEndian.PutUint64(l.Data[8*ii:], math.Float64bits(v))
		}
	default:
		return Literal{}, errors.Errorf("lit.FromFloats: unsupported dtype %s", dtype)
	}
	return l, nil
}

// Ints decodes an integer literal back to Go ints.
func (l Literal) Ints() ([]int, error) {
	switch l.Shape.DType {
	case dtypes.Int32:
		values := make([]int, len(l.Data)/4)
		for ii := range values {
			values[ii] = int(int32(binary.LittleEndian.Uint32(l.Data[4*ii:])))
		}
		return values, nil
	case dtypes.Int64:
		values := make([]int, len(l.Data)/8)
		for ii := range values {
			values[ii] = int(int64(binary.LittleEndian.Uint64(l.Data[8*ii:])))
		}
		return values, nil
	}
	return nil, errors.Errorf("lit.Ints: literal has non-integer dtype %s", l.Shape.DType)
}

// Floats decodes a float literal back to Go float64 values.
func (l Literal) Floats() ([]float64, error) {
	switch l.Shape.DType {
	case dtypes.Float16:
		values := make([]float64, len(l.Data)/2)
		for ii := range values {
			values[ii] = float64(float16.Frombits(binary.LittleEndian.Uint16(l.Data[2*ii:])).Float32())
		}
		return values, nil
	case dtypes.Float32:
		values := make([]float64, len(l.Data)/4)
		for ii := range values {
			values[ii] = float64(math.Float32frombits(binary.LittleEndian.Uint32(l.Data[4*ii:])))
		}
		return values, nil
	case dtypes.Float64:
		values := make([]float64, len(l.Data)/8)
		for ii := range values {
			values[ii] = math.Float64frombits(binary.LittleEndian.Uint64(l.Data[8*ii:]))
		}
		return values, nil
	}
	return nil, errors.Errorf("lit.Floats: literal has non-float dtype %s", l.Shape.DType)
}

// String implements fmt.Stringer, printing the decoded values when possible.
func (l Literal) String() string {
	if values, err := l.Ints(); err == nil {
		return formatValues(l.Shape, values)
	}
	if values, err := l.Floats(); err == nil {
		return formatValues(l.Shape, values)
	}
	return fmt.Sprintf("%s{%d bytes}", l.Shape, len(l.Data))
}

func formatValues[T any](shape shapes.Shape, values []T) string {
	parts := make([]string, len(values))
	for ii, v := range values {
		parts[ii] = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("%s{%s}", shape, strings.Join(parts, ", "))
}
