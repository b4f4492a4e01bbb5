package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElideRedundantGoto(t *testing.T) {
	fn := &Function{Instrs: []Instruction{
		Goto("L1"),
		Label("L1"),
		Ret(Operand{}),
	}}
	fn.Peephole()
	assert.Equal(t, []Instruction{Label("L1"), Ret(Operand{})}, fn.Instrs)
}

func TestFuseIfFalseGoto(t *testing.T) {
	fn := &Function{Instrs: []Instruction{
		IfFalse(Local("c"), "L1"),
		Goto("L2"),
		Label("L1"),
		Ret(Operand{}),
	}}
	fn.Peephole()
	assert.Equal(t, []Instruction{
		IfGoto(Local("c"), "L2"),
		Label("L1"),
		Ret(Operand{}),
	}, fn.Instrs)
}

func TestEliminateDeadMoves(t *testing.T) {
	fn := &Function{Instrs: []Instruction{
		Binary("+", LitInt(1), LitInt(2), Temp(0)),
		Move(Temp(0), Temp(1)), // t1 never read afterward -> dead
		Ret(Operand{}),
	}}
	fn.Peephole()
	assert.Equal(t, []Instruction{
		Binary("+", LitInt(1), LitInt(2), Temp(0)),
		Ret(Operand{}),
	}, fn.Instrs)
}

func TestEliminateDeadMovesKeepsLiveTemp(t *testing.T) {
	fn := &Function{Instrs: []Instruction{
		Binary("+", LitInt(1), LitInt(2), Temp(0)),
		Move(Temp(0), Temp(1)),
		Ret(Temp(1)),
	}}
	fn.Peephole()
	assert.Equal(t, []Instruction{
		Binary("+", LitInt(1), LitInt(2), Temp(0)),
		Move(Temp(0), Temp(1)),
		Ret(Temp(1)),
	}, fn.Instrs)
}

// PeepholeIdempotent is one of spec.md §8's testable properties:
// running Peephole a second time on already-peepholed output must be a
// no-op.
func TestPeepholeIdempotent(t *testing.T) {
	fn := &Function{Instrs: []Instruction{
		IfFalse(Local("c"), "L1"),
		Goto("L2"),
		Label("L1"),
		Binary("+", LitInt(1), LitInt(2), Temp(0)),
		Move(Temp(0), Temp(1)),
		Goto("L3"),
		Label("L3"),
		Ret(Temp(0)),
	}}
	fn.Peephole()
	once := append([]Instruction(nil), fn.Instrs...)

	fn.Peephole()
	assert.Equal(t, once, fn.Instrs)
}
