// Package flatir is the primitive-level IR the trace layer lowers into.
//
// A Function holds a flat list of Statements over Values. Unlike the trace
// layer, nothing here validates its operands: all correctness obligations are
// discharged by the trace ops before a statement is emitted, so every
// statement is unconditionally well-defined.
package flatir

// Function is a flat sequence of primitive statements with named parameters.
type Function struct {
	Name       string
	Parameters []*Value
	Statements []*Statement

	nextValueID int
	returned    bool
}

// Statement is one primitive operation: an OpType, its input and output
// values, and op-specific static attributes.
type Statement struct {
	Function   *Function
	OpType     OpType
	Inputs     []*Value
	Outputs    []*Value
	Attributes map[string]any
}

// NewFunction creates an empty flat IR function.
func NewFunction(name string) *Function {
	return &Function{Name: name}
}

// addOp appends a new statement binding the given outputs.
func (fn *Function) addOp(opType OpType, inputs, outputs []*Value, attributes map[string]any) *Statement {
	stmt := &Statement{
		Function:   fn,
		OpType:     opType,
		Inputs:     inputs,
		Outputs:    outputs,
		Attributes: attributes,
	}
	for outputIdx, output := range outputs {
		output.stmt = stmt
		output.outputIndex = outputIdx
	}
	fn.Statements = append(fn.Statements, stmt)
	return stmt
}
