package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionTextualForms(t *testing.T) {
	cases := []struct {
		name string
		in   Instruction
		want string
	}{
		{"binary", Binary("+", Local("a"), LitInt(1), Temp(0)), "t0 = %a + #1"},
		{"unary", Unary("neg", Local("a"), Temp(0)), "t0 = neg %a"},
		{"move", Move(LitInt(5), Local("x")), "move #5, %x"},
		{"label", Label("Ltop1"), "label Ltop1:"},
		{"goto", Goto("Ltop1"), "goto Ltop1"},
		{"ifgoto", IfGoto(Local("c"), "L1"), "if %c goto L1"},
		{"iffalse", IfFalse(Local("c"), "L1"), "ifFalse %c goto L1"},
		{"param", Param(Local("a")), "param %a"},
		{"call-void", Call("f", 1, Operand{}), "call f, 1"},
		{"call-value", Call("f", 1, Temp(0)), "call f, 1 -> t0"},
		{"ret-void", Ret(Operand{}), "ret"},
		{"ret-value", Ret(Temp(0)), "ret t0"},
		{"new", New("Point", Temp(0)), "t0 = new Point"},
		{"getf", GetF(Temp(0), "x", Temp(1)), `t1 = getf t0, "x"`},
		{"setf", SetF(Temp(0), "x", LitInt(1)), `setf t0, "x", #1`},
		{"newarr", NewArr("integer", LitInt(3), Temp(0)), "t0 = newarr integer, #3"},
		{"aload", ALoad(Temp(0), LitInt(1), Temp(1)), "t1 = aload t0, #1"},
		{"astore", AStore(Temp(0), LitInt(1), LitInt(2)), "astore t0, #1, #2"},
		{"print", Print(LitString("hi")), `print #"hi"`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.in.String())
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, Goto("L1").IsTerminal())
	assert.True(t, Ret(Operand{}).IsTerminal())
	assert.True(t, IfGoto(LitBool(true), "L1").IsTerminal())
	assert.False(t, IfGoto(Local("c"), "L1").IsTerminal())
	assert.False(t, IfFalse(Local("c"), "L1").IsTerminal())
	assert.False(t, Binary("+", LitInt(1), LitInt(2), Temp(0)).IsTerminal())
}
