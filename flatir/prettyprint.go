package flatir

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// String implements fmt.Stringer, printing one statement per line.
//
// The output is stable: attributes are printed in sorted order and value
// numbering follows creation order, so two structurally identical functions
// print identically.
func (fn *Function) String() string {
	var buf bytes.Buffer
	w := func(format string, args ...any) {
		if len(args) == 0 {
			buf.WriteString(format)
		} else {
			buf.WriteString(fmt.Sprintf(format, args...))
		}
	}
	w("func %s(", fn.Name)
	for ii, param := range fn.Parameters {
		if ii > 0 {
			w(", ")
		}
		w("%s: %s", param, param.shape)
	}
	w(") {\n")
	for _, stmt := range fn.Statements {
		w("  %s\n", stmt)
	}
	w("}\n")
	return buf.String()
}

// String implements fmt.Stringer for a single statement.
func (stmt *Statement) String() string {
	var sb strings.Builder
	if len(stmt.Outputs) > 0 {
		outputs := make([]string, len(stmt.Outputs))
		for ii, output := range stmt.Outputs {
			outputs[ii] = output.String()
		}
		sb.WriteString(strings.Join(outputs, ", "))
		sb.WriteString(" = ")
	}
	sb.WriteString(stmt.OpType.String())
	if len(stmt.Attributes) > 0 {
		sb.WriteString("[")
		for ii, key := range slices.Sorted(maps.Keys(stmt.Attributes)) {
			if ii > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%s=%v", key, stmt.Attributes[key]))
		}
		sb.WriteString("]")
	}
	sb.WriteString("(")
	for ii, input := range stmt.Inputs {
		if ii > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(input.String())
	}
	sb.WriteString(")")
	if len(stmt.Outputs) > 0 {
		shapeStrs := make([]string, len(stmt.Outputs))
		for ii, output := range stmt.Outputs {
			shapeStrs[ii] = output.shape.String()
		}
		sb.WriteString(" : ")
		sb.WriteString(strings.Join(shapeStrs, ", "))
	}
	return sb.String()
}
