package tac

import "fmt"

// Instruction is the tagged-variant instruction set of spec.md §3.4.
// Only the fields relevant to Op are meaningful, mirroring the
// reference mir.Instruction's single OpCode+Operands shape but kept as
// distinct named fields since each kind's textual form differs enough
// that a flat operand list would just be re-decoded at print time.
type Instruction struct {
	Op Op

	// Binary / Unary
	BinOp string // "+", "-", "*", "/", "%", "<", "<=", ">", ">=", "==", "!="
	UnOp  string // "neg", "not"
	A, B  Operand
	Dst   Operand

	// Move
	Src Operand

	// Label / Goto / IfGoto / IfFalse
	Label string
	Cond  Operand

	// Param / Print / Ret
	Arg Operand

	// Call
	FuncName string
	NArgs    int

	// New / GetF / SetF / NewArr / ALoad / AStore
	ClassName string
	Field     string
	ElemType  string
	Obj       Operand
	Val       Operand
	Idx       Operand
	Size      Operand
}

// Op enumerates the instruction kinds of spec.md §3.4.
type Op int

const (
	OpBinary Op = iota
	OpUnary
	OpMove
	OpLabel
	OpGoto
	OpIfGoto
	OpIfFalse
	OpParam
	OpCall
	OpRet
	OpNew
	OpGetF
	OpSetF
	OpNewArr
	OpALoad
	OpAStore
	OpPrint
)

// IsTerminal reports whether the instruction unconditionally transfers
// or ends control flow, per spec.md §3.4's terminal-instruction note --
// the generator uses this to suppress a redundant fall-through goto.
func (in Instruction) IsTerminal() bool {
	switch in.Op {
	case OpGoto, OpRet:
		return true
	case OpIfGoto:
		return in.Cond == LitBool(true)
	default:
		return false
	}
}

// String renders the instruction's textual form per spec.md §3.4's
// table, without leading indentation -- the caller (Function.String)
// applies the two-space indent uniformly.
func (in Instruction) String() string {
	switch in.Op {
	case OpBinary:
		return fmt.Sprintf("%s = %s %s %s", in.Dst, in.A, in.BinOp, in.B)
	case OpUnary:
		return fmt.Sprintf("%s = %s %s", in.Dst, in.UnOp, in.A)
	case OpMove:
		return fmt.Sprintf("move %s, %s", in.Src, in.Dst)
	case OpLabel:
		return fmt.Sprintf("label %s:", in.Label)
	case OpGoto:
		return fmt.Sprintf("goto %s", in.Label)
	case OpIfGoto:
		return fmt.Sprintf("if %s goto %s", in.Cond, in.Label)
	case OpIfFalse:
		return fmt.Sprintf("ifFalse %s goto %s", in.Cond, in.Label)
	case OpParam:
		return fmt.Sprintf("param %s", in.Arg)
	case OpCall:
		if in.Dst.Empty() {
			return fmt.Sprintf("call %s, %d", in.FuncName, in.NArgs)
		}
		return fmt.Sprintf("call %s, %d -> %s", in.FuncName, in.NArgs, in.Dst)
	case OpRet:
		if in.Arg.Empty() {
			return "ret"
		}
		return fmt.Sprintf("ret %s", in.Arg)
	case OpNew:
		return fmt.Sprintf("%s = new %s", in.Dst, in.ClassName)
	case OpGetF:
		return fmt.Sprintf("%s = getf %s, %q", in.Dst, in.Obj, in.Field)
	case OpSetF:
		return fmt.Sprintf("setf %s, %q, %s", in.Obj, in.Field, in.Val)
	case OpNewArr:
		return fmt.Sprintf("%s = newarr %s, %s", in.Dst, in.ElemType, in.Size)
	case OpALoad:
		return fmt.Sprintf("%s = aload %s, %s", in.Dst, in.Obj, in.Idx)
	case OpAStore:
		return fmt.Sprintf("astore %s, %s, %s", in.Obj, in.Idx, in.Val)
	case OpPrint:
		return fmt.Sprintf("print %s", in.Arg)
	default:
		return "<invalid instruction>"
	}
}

// Binary, Unary, Move, Label, Goto, IfGoto, IfFalse, Param, Call, Ret,
// New, GetF, SetF, NewArr, ALoad, AStore, and Print are constructors
// for each instruction kind, kept short and flat since Instruction has
// no behavior beyond String().

func Binary(op string, a, b, dst Operand) Instruction {
	return Instruction{Op: OpBinary, BinOp: op, A: a, B: b, Dst: dst}
}

func Unary(op string, a, dst Operand) Instruction {
	return Instruction{Op: OpUnary, UnOp: op, A: a, Dst: dst}
}

func Move(src, dst Operand) Instruction {
	return Instruction{Op: OpMove, Src: src, Dst: dst}
}

func Label(name string) Instruction {
	return Instruction{Op: OpLabel, Label: name}
}

func Goto(label string) Instruction {
	return Instruction{Op: OpGoto, Label: label}
}

func IfGoto(cond Operand, label string) Instruction {
	return Instruction{Op: OpIfGoto, Cond: cond, Label: label}
}

func IfFalse(cond Operand, label string) Instruction {
	return Instruction{Op: OpIfFalse, Cond: cond, Label: label}
}

func Param(arg Operand) Instruction {
	return Instruction{Op: OpParam, Arg: arg}
}

func Call(fname string, nargs int, dst Operand) Instruction {
	return Instruction{Op: OpCall, FuncName: fname, NArgs: nargs, Dst: dst}
}

func Ret(arg Operand) Instruction {
	return Instruction{Op: OpRet, Arg: arg}
}

func New(className string, dst Operand) Instruction {
	return Instruction{Op: OpNew, ClassName: className, Dst: dst}
}

func GetF(obj Operand, field string, dst Operand) Instruction {
	return Instruction{Op: OpGetF, Obj: obj, Field: field, Dst: dst}
}

func SetF(obj Operand, field string, val Operand) Instruction {
	return Instruction{Op: OpSetF, Obj: obj, Field: field, Val: val}
}

func NewArr(elemType string, size, dst Operand) Instruction {
	return Instruction{Op: OpNewArr, ElemType: elemType, Size: size, Dst: dst}
}

func ALoad(arr, idx, dst Operand) Instruction {
	return Instruction{Op: OpALoad, Obj: arr, Idx: idx, Dst: dst}
}

func AStore(arr, idx, val Operand) Instruction {
	return Instruction{Op: OpAStore, Obj: arr, Idx: idx, Val: val}
}

func Print(arg Operand) Instruction {
	return Instruction{Op: OpPrint, Arg: arg}
}
