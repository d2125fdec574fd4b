package flatir

import (
	"fmt"

	"github.com/shelkesagar29/TensorRT-Incubator/shapes"
)

// Value is an SSA-like value of the flat IR: a function parameter or the
// output of a statement.
type Value struct {
	fn          *Function
	id          int
	name        string // Set for parameters only.
	shape       shapes.Shape
	stmt        *Statement
	outputIndex int
}

// Shape returns the value's shape.
func (v *Value) Shape() shapes.Shape { return v.shape }

// Producer returns the statement that produced this value, or nil for
// parameters.
func (v *Value) Producer() *Statement { return v.stmt }

// String implements fmt.Stringer: "%name" for parameters, "%<id>" otherwise.
func (v *Value) String() string {
	if v.name != "" {
		return "%" + v.name
	}
	return fmt.Sprintf("%%%d", v.id)
}

// NewValue allocates a value not yet bound to any statement. The trace layer
// uses it to pre-allocate op outputs before emitting the producing statement.
func (fn *Function) NewValue(shape shapes.Shape) *Value {
	v := &Value{fn: fn, id: fn.nextValueID, shape: shape}
	fn.nextValueID++
	return v
}

// Parameter declares a named function parameter. The name is cosmetic but
// should be unique among the parameters.
func (fn *Function) Parameter(name string, shape shapes.Shape) *Value {
	v := fn.NewValue(shape)
	v.name = name
	fn.Parameters = append(fn.Parameters, v)
	return v
}
