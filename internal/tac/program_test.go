package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionStringFormat(t *testing.T) {
	fn := &Function{
		Name:       "add",
		Params:     []string{"%a", "%b"},
		ReturnType: "integer",
		Locals:     0,
		Instrs: []Instruction{
			Binary("+", Local("a"), Local("b"), Temp(0)),
			Ret(Temp(0)),
		},
	}

	want := ".func add(%a, %b) : integer\n" +
		"  .locals 0\n" +
		"  t0 = %a + %b\n" +
		"  ret t0\n" +
		".endfunc\n"
	assert.Equal(t, want, fn.String())
}

func TestProgramStringJoinsFunctionsWithBlankLine(t *testing.T) {
	f1 := &Function{Name: "f", ReturnType: "void", Instrs: []Instruction{Ret(Operand{})}}
	f2 := &Function{Name: "g", ReturnType: "void", Instrs: []Instruction{Ret(Operand{})}}
	prog := &Program{Functions: []*Function{f1, f2}}

	out := prog.String()
	assert.Contains(t, out, ".func f(")
	assert.Contains(t, out, ".func g(")
	assert.Contains(t, out, ".endfunc\n\n.func g")
}
