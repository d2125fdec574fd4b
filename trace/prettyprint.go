package trace

import (
	"bytes"
	"fmt"
	"strings"
)

// String renders the trace for debugging: declared inputs followed by the
// recorded ops in program order.
func (tr *Trace) String() string {
	buf := &bytes.Buffer{}
	w := func(format string, args ...any) { fmt.Fprintf(buf, format, args...) }

	w("Trace %q [%s]:\n", tr.name, tr.device)
	w("  Inputs:\n")
	for _, input := range tr.inputs {
		w("    %s\n", input)
	}
	if len(tr.ops) > 0 {
		w("  Ops:\n")
	}
	for _, op := range tr.ops {
		w("    %s\n", FormatOp(op))
	}
	return buf.String()
}

// FormatOp renders one op as "outputs = op_type(input_names)", with the full
// tensor description on the output side.
func FormatOp(op Op) string {
	inputNames := sliceMap(op.Inputs(), func(t *Tensor) string { return t.name })
	outputDescs := sliceMap(op.Outputs(), func(t *Tensor) string { return t.String() })
	return fmt.Sprintf("%s = %s(%s)",
		strings.Join(outputDescs, ", "), op.Type(), strings.Join(inputNames, ", "))
}

// sliceMap executes the given function sequentially for every element on in, and returns a mapped slice.
func sliceMap[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}
