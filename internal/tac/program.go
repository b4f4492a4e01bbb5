package tac

import (
	"strconv"
	"strings"
)

// Function is a single lowered function body, per spec.md §3.4: a name,
// ordered parameter names, a nominal return type string, a locals
// count, and its instruction stream.
type Function struct {
	Name       string
	Params     []string
	ReturnType string
	Locals     int
	Instrs     []Instruction
}

// String renders one `.func ... .endfunc` block per spec.md §6.
func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString(".func ")
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	sb.WriteString(strings.Join(f.Params, ", "))
	sb.WriteString(") : ")
	sb.WriteString(f.ReturnType)
	sb.WriteByte('\n')
	sb.WriteString("  .locals ")
	sb.WriteString(strconv.Itoa(f.Locals))
	sb.WriteByte('\n')
	for _, in := range f.Instrs {
		sb.WriteString("  ")
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	sb.WriteString(".endfunc\n")
	return sb.String()
}

// Program is an ordered list of lowered functions (spec.md §3.4),
// including the synthesized `main` entry for top-level statements when
// any exist.
type Program struct {
	Functions []*Function
}

// String renders every function block in declaration order, separated
// by a single blank line.
func (p *Program) String() string {
	var sb strings.Builder
	for i, fn := range p.Functions {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(fn.String())
	}
	return sb.String()
}
