package tac

import (
	"strconv"

	"compiscript/internal/ast"
	"compiscript/internal/types"
)

// genExpr lowers e and returns the operand holding its value, emitting
// whatever instructions are needed onto the current function.
// Literals are returned directly per spec.md §4.4 ("no materialization
// to temps unless needed").
func (g *Generator) genExpr(e ast.Expr) Operand {
	switch n := e.(type) {
	case *ast.Literal:
		return g.genLiteral(n)
	case *ast.Identifier:
		return g.resolve(n.Name)
	case *ast.This:
		return g.resolve("this")
	case *ast.Unary:
		return g.genUnary(n)
	case *ast.Binary:
		return g.genBinary(n)
	case *ast.Ternary:
		return g.genTernary(n)
	case *ast.Index:
		return g.genIndex(n)
	case *ast.Member:
		return g.genMember(n)
	case *ast.Call:
		return g.genCall(n)
	case *ast.New:
		return g.genNew(n)
	case *ast.ArrayLit:
		return g.genArrayLit(n)
	case *ast.Assign:
		return g.genAssign(n)
	default:
		panic("tac: unhandled expression node in generator")
	}
}

// genLiteral renders a lexical literal into its operand form. The
// lexer already decodes string escapes into Literal.Text, so no
// further unquoting is needed here.
func (g *Generator) genLiteral(n *ast.Literal) Operand {
	switch n.Kind {
	case ast.LitInt:
		v, _ := strconv.ParseInt(n.Text, 10, 64)
		return LitInt(v)
	case ast.LitFloat:
		v, _ := strconv.ParseFloat(n.Text, 64)
		return LitFloat(v)
	case ast.LitBool:
		return LitBool(n.Text == "true")
	case ast.LitString:
		return LitString(n.Text)
	default:
		return LitNull
	}
}

func (g *Generator) genUnary(n *ast.Unary) Operand {
	a := g.genExpr(n.X)
	dst := g.newTemp()
	op := "not"
	if n.Op == "-" {
		op = "neg"
	}
	g.emit(Unary(op, a, dst))
	return dst
}

func (g *Generator) genBinary(n *ast.Binary) Operand {
	switch n.Op {
	case "&&":
		return g.genShortCircuit(n, false)
	case "||":
		return g.genShortCircuit(n, true)
	}
	a := g.genExpr(n.L)
	b := g.genExpr(n.R)
	dst := g.newTemp()
	g.emit(Binary(n.Op, a, b, dst))
	return dst
}

// genShortCircuit lowers `&&` (orMode == false) and `||` (orMode ==
// true) per spec.md §4.4's short-circuit shape.
func (g *Generator) genShortCircuit(n *ast.Binary, orMode bool) Operand {
	res := g.newTemp()
	a := g.genExpr(n.L)

	shortLabel := g.newLabel("scShort")
	endLabel := g.newLabel("scEnd")
	if orMode {
		g.emit(IfGoto(a, shortLabel))
	} else {
		g.emit(IfFalse(a, shortLabel))
	}

	b := g.genExpr(n.R)
	g.emit(Move(b, res))
	g.emit(Goto(endLabel))

	g.emit(Label(shortLabel))
	g.emit(Move(LitBool(orMode), res))
	g.emit(Label(endLabel))
	return res
}

func (g *Generator) genTernary(n *ast.Ternary) Operand {
	res := g.newTemp()
	cond := g.genExpr(n.Cond)
	elseLabel := g.newLabel("ternElse")

	g.emit(IfFalse(cond, elseLabel))
	thenVal := g.genExpr(n.Then)
	g.emit(Move(thenVal, res))

	// Same terminal-branch elision as genIf, for consistency -- a
	// ternary's branches are expressions, so in practice the move above
	// is never itself terminal, but the check keeps the two lowerings
	// in lockstep rather than relying on that.
	thenTerminal := g.lastTerminal()
	var endLabel string
	if !thenTerminal {
		endLabel = g.newLabel("ternEnd")
		g.emit(Goto(endLabel))
	}

	g.emit(Label(elseLabel))
	elseVal := g.genExpr(n.Else)
	g.emit(Move(elseVal, res))
	if !thenTerminal {
		g.emit(Label(endLabel))
	}
	return res
}

func (g *Generator) genIndex(n *ast.Index) Operand {
	arr := g.genExpr(n.X)
	idx := g.genExpr(n.Idx)
	dst := g.newTemp()
	g.emit(ALoad(arr, idx, dst))
	return dst
}

func (g *Generator) genMember(n *ast.Member) Operand {
	obj := g.genExpr(n.X)
	dst := g.newTemp()
	g.emit(GetF(obj, n.Field, dst))
	return dst
}

func (g *Generator) genCall(n *ast.Call) Operand {
	switch callee := n.Callee.(type) {
	case *ast.Member:
		return g.genMethodCall(n, callee)
	case *ast.Identifier:
		return g.genFreeCall(n, callee)
	default:
		panic("tac: call target is neither an identifier nor a member expression")
	}
}

func (g *Generator) genFreeCall(n *ast.Call, callee *ast.Identifier) Operand {
	args := make([]Operand, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.genExpr(a)
	}
	for _, a := range args {
		g.emit(Param(a))
	}

	retType := callee.Type()
	if sig, ok := retType.(types.FuncSig); ok && types.Equals(sig.Return, types.TVoid) {
		g.emit(Call(callee.Name, len(args), Operand{}))
		return LitVoid
	}
	dst := g.newTemp()
	g.emit(Call(callee.Name, len(args), dst))
	return dst
}

func (g *Generator) genMethodCall(n *ast.Call, callee *ast.Member) Operand {
	recv := g.genExpr(callee.X)
	g.emit(Param(recv))

	args := make([]Operand, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.genExpr(a)
	}
	for _, a := range args {
		g.emit(Param(a))
	}

	className := callee.X.Type().(*types.Class).Name
	owner, _ := g.declaringClass(className, callee.Field)
	fname := owner + "." + callee.Field

	sig := callee.Type().(types.FuncSig)
	if types.Equals(sig.Return, types.TVoid) {
		g.emit(Call(fname, len(args)+1, Operand{}))
		return LitVoid
	}
	dst := g.newTemp()
	g.emit(Call(fname, len(args)+1, dst))
	return dst
}

func (g *Generator) genNew(n *ast.New) Operand {
	dst := g.newTemp()
	g.emit(New(n.Class, dst))

	owner, hasCtor := g.declaringClass(n.Class, "constructor")
	if !hasCtor {
		// No constructor anywhere in the chain; the checker only
		// permits this when `new` is called with zero arguments.
		return dst
	}

	g.emit(Param(dst))
	args := make([]Operand, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.genExpr(a)
	}
	for _, a := range args {
		g.emit(Param(a))
	}
	g.emit(Call(owner+".constructor", len(args)+1, Operand{}))
	return dst
}

func (g *Generator) genArrayLit(n *ast.ArrayLit) Operand {
	dst := g.newTemp()
	elemType := "void"
	if arr, ok := n.Type().(types.Array); ok {
		elemType = reprType(arr.Elem)
	}
	g.emit(NewArr(elemType, LitInt(int64(len(n.Elems))), dst))
	for i, el := range n.Elems {
		v := g.genExpr(el)
		g.emit(AStore(dst, LitInt(int64(i)), v))
	}
	if dst.Kind == OpTemp {
		g.arrLen[dst.Text] = len(n.Elems)
	}
	return dst
}

func (g *Generator) genAssign(n *ast.Assign) Operand {
	val := g.genExpr(n.Value)

	switch target := n.Target.(type) {
	case *ast.Identifier:
		slot := g.resolve(target.Name)
		g.emit(Move(val, slot))
		g.propagateArrLen(slot, n.Value)
		return slot
	case *ast.Member:
		obj := g.genExpr(target.X)
		g.emit(SetF(obj, target.Field, val))
		return val
	case *ast.Index:
		arr := g.genExpr(target.X)
		idx := g.genExpr(target.Idx)
		g.emit(AStore(arr, idx, val))
		return val
	default:
		panic("tac: invalid assignment target reached the generator")
	}
}

// propagateArrLen keeps the arr_len side map current when a local is
// reassigned: a fresh array literal refreshes its known length,
// anything else invalidates it (spec.md §4.4's side map is for
// "potential bounds folding", so a stale entry must not survive).
func (g *Generator) propagateArrLen(slot Operand, rhs ast.Expr) {
	if lit, ok := rhs.(*ast.ArrayLit); ok {
		g.arrLen[slot.Text] = len(lit.Elems)
		return
	}
	delete(g.arrLen, slot.Text)
}
