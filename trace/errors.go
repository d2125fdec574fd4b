package trace

import (
	"fmt"

	"github.com/pkg/errors"
)

// Construction-time error taxonomy. Every error below is detected while a
// trace op is being built and aborts that op's construction; no partially
// inferred node is ever returned. All failures are deterministic functions of
// the traced inputs and attributes.

// UserArgumentError reports arguments that can never be valid, independent of
// any shape information: more than one wildcard entry in a reshape target,
// a wildcard that does not divide the input's element count, duplicate or
// out-of-range squeeze axes.
type UserArgumentError struct {
	msg string
}

func (e *UserArgumentError) Error() string { return e.msg }

func userArgumentErrorf(format string, args ...any) error {
	return errors.WithStack(&UserArgumentError{msg: fmt.Sprintf(format, args...)})
}

// ShapeInferenceError reports that an output's metadata cannot be statically
// derived: a reshape whose target rank must come from a shape operand of
// unknown length, or a remove-all squeeze over a tensor without a fully known
// static shape.
type ShapeInferenceError struct {
	msg string
}

func (e *ShapeInferenceError) Error() string { return e.msg }

func shapeInferenceErrorf(format string, args ...any) error {
	return errors.WithStack(&ShapeInferenceError{msg: fmt.Sprintf(format, args...)})
}

// StaticShapeViolation reports a squeeze of an axis whose static size is not 1.
// Axis and Size carry the offending dimension for diagnostics.
type StaticShapeViolation struct {
	Axis int
	Size int
}

func (e *StaticShapeViolation) Error() string {
	return fmt.Sprintf("cannot squeeze axis %d with size %d: only axes of size 1 can be removed", e.Axis, e.Size)
}

func staticShapeViolation(axis, size int) error {
	return errors.WithStack(&StaticShapeViolation{Axis: axis, Size: size})
}
