package flatir

// OpType enumerates the primitive operations of the flat IR.
//
// The set is closed: the trace layer discharges every correctness obligation
// before emitting these, so they are unconditionally well-defined.
type OpType int

const (
	// InvalidOp - zero value, never emitted.
	InvalidOp OpType = iota

	// ConstantOp - materializes a literal value.
	ConstantOp

	// ShapeOfOp - the runtime shape of a value, as a rank-1 Int32 tensor.
	ShapeOfOp

	// SliceScalarOp - one size sliced out of a rank-1 tensor, kept rank-1.
	SliceScalarOp

	// ConcatenateOp - concatenation of rank-1 tensors along their single axis.
	ConcatenateOp

	// ExpandDimsOp - a scalar value as a one-element rank-1 tensor.
	ExpandDimsOp

	// MultiplyOp - element-wise product.
	MultiplyOp

	// DivideOp - element-wise quotient.
	DivideOp

	// DynamicReshapeOp - reshape of a data tensor to a runtime shape tensor.
	DynamicReshapeOp

	// ReturnOp - terminates a function, naming its results.
	ReturnOp
)

// String returns the textual mnemonic used by the pretty-printer.
func (o OpType) String() string {
	switch o {
	case ConstantOp:
		return "constant"
	case ShapeOfOp:
		return "shape_of"
	case SliceScalarOp:
		return "slice_scalar"
	case ConcatenateOp:
		return "concatenate"
	case ExpandDimsOp:
		return "expand_dims"
	case MultiplyOp:
		return "multiply"
	case DivideOp:
		return "divide"
	case DynamicReshapeOp:
		return "dynamic_reshape"
	case ReturnOp:
		return "return"
	default:
		return "invalid"
	}
}
