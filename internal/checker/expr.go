package checker

import (
	"compiscript/internal/ast"
	"compiscript/internal/report"
	"compiscript/internal/symbols"
	"compiscript/internal/types"
)

// checkExpr types an expression per spec.md §4.3's expression typing
// rules, storing the result on the node via ast.Expr.SetType so the TAC
// generator can read it back without re-deriving it.
func (c *Checker) checkExpr(e ast.Expr) types.Type {
	var t types.Type
	switch n := e.(type) {
	case *ast.Literal:
		t = c.checkLiteral(n)
	case *ast.Identifier:
		t = c.checkIdentifier(n)
	case *ast.This:
		t = c.checkThis(n)
	case *ast.Unary:
		t = c.checkUnary(n)
	case *ast.Binary:
		t = c.checkBinary(n)
	case *ast.Ternary:
		t = c.checkTernary(n)
	case *ast.Index:
		t = c.checkIndex(n)
	case *ast.Member:
		t = c.checkMember(n)
	case *ast.Call:
		t = c.checkCall(n)
	case *ast.New:
		t = c.checkNew(n)
	case *ast.ArrayLit:
		t = c.checkArrayLit(n)
	case *ast.Assign:
		t = c.checkAssign(n)
	default:
		report.Abort(e.Pos(), report.TypeMismatch, "internal: unhandled expression node")
	}
	e.SetType(t)
	return t
}

func (c *Checker) checkLiteral(n *ast.Literal) types.Type {
	switch n.Kind {
	case ast.LitInt:
		return types.TInt
	case ast.LitFloat:
		return types.TFloat
	case ast.LitBool:
		return types.TBool
	case ast.LitString:
		return types.TString
	default:
		return types.TNull
	}
}

func (c *Checker) checkIdentifier(n *ast.Identifier) types.Type {
	sym, ok := c.table.Lookup(n.Name)
	if !ok {
		c.bag.Error(n.Pos(), report.UnknownSymbol, "undefined symbol: `%s`", n.Name)
		return types.TVoid
	}
	return sym.Type
}

func (c *Checker) checkThis(n *ast.This) types.Type {
	cls := c.table.CurrentClass()
	if cls == nil {
		c.bag.Error(n.Pos(), report.UnknownSymbol, "`this` is only valid inside a method")
		return types.TVoid
	}
	return cls.AsClassType()
}

func (c *Checker) checkUnary(n *ast.Unary) types.Type {
	xt := c.checkExpr(n.X)
	if n.Op == "-" {
		if !types.Numeric(xt) {
			c.bag.Error(n.Pos(), report.NotNumeric, "unary `-` requires a numeric operand, got %s", xt.Repr())
			return types.TInt
		}
		return xt
	}
	// "!"
	if !types.Equals(xt, types.TBool) {
		c.bag.Error(n.Pos(), report.NotBoolean, "unary `!` requires a boolean operand, got %s", xt.Repr())
	}
	return types.TBool
}

func (c *Checker) checkBinary(n *ast.Binary) types.Type {
	lt := c.checkExpr(n.L)
	rt := c.checkExpr(n.R)

	switch n.Op {
	case "+", "-", "*", "/", "%":
		_, result, err := types.PromoteBinary(lt, rt, n.Op)
		if err != nil {
			c.bag.Error(n.Pos(), report.NotNumeric, "%s", err)
			return types.TInt
		}
		return result
	case "<", "<=", ">", ">=":
		if !types.ComparableOrdered(lt) || !types.ComparableOrdered(rt) {
			c.bag.Error(n.Pos(), report.NotComparable, "operands of `%s` must be comparable, got %s and %s", n.Op, lt.Repr(), rt.Repr())
			return types.TBool
		}
		res, err := types.UnifyRelational(lt, rt)
		if err != nil {
			c.bag.Error(n.Pos(), report.NotComparable, "%s", err)
		}
		return res
	case "==", "!=":
		if !c.equalityCompatible(lt, rt) {
			c.bag.Error(n.Pos(), report.TypeMismatch, "cannot compare %s with %s", lt.Repr(), rt.Repr())
		}
		return types.TBool
	case "&&", "||":
		if !types.Equals(lt, types.TBool) {
			c.bag.Error(n.L.Pos(), report.NotBoolean, "left operand of `%s` must be boolean, got %s", n.Op, lt.Repr())
		}
		if !types.Equals(rt, types.TBool) {
			c.bag.Error(n.R.Pos(), report.NotBoolean, "right operand of `%s` must be boolean, got %s", n.Op, rt.Repr())
		}
		return types.TBool
	default:
		report.Abort(n.Pos(), report.TypeMismatch, "internal: unknown binary operator %q", n.Op)
		return types.TVoid
	}
}

// equalityCompatible implements spec.md §4.3's equality rule: both
// sides of the same promoted domain, or one Null with the other a
// reference type.
func (c *Checker) equalityCompatible(a, b types.Type) bool {
	if types.Equals(a, b) {
		return true
	}
	if types.Numeric(a) && types.Numeric(b) {
		return true
	}
	aNull := types.Equals(a, types.TNull)
	bNull := types.Equals(b, types.TNull)
	if aNull && types.IsReference(b) {
		return true
	}
	if bNull && types.IsReference(a) {
		return true
	}
	return false
}

func (c *Checker) checkTernary(n *ast.Ternary) types.Type {
	ct := c.checkExpr(n.Cond)
	if !types.Equals(ct, types.TBool) {
		c.bag.Error(n.Cond.Pos(), report.NotBoolean, "ternary condition must be boolean, got %s", ct.Repr())
	}
	at := c.checkExpr(n.Then)
	bt := c.checkExpr(n.Else)
	joined, err := types.Join(at, bt, c.lookupClassTypeRaw)
	if err != nil {
		c.bag.Error(n.Pos(), report.TypeMismatch, "%s", err)
		return at
	}
	return joined
}

func (c *Checker) lookupClassTypeRaw(name string) (*types.Class, bool) {
	return c.lookupClassType(name)
}

func (c *Checker) checkIndex(n *ast.Index) types.Type {
	xt := c.checkExpr(n.X)
	it := c.checkExpr(n.Idx)
	if !types.Equals(it, types.TInt) {
		c.bag.Error(n.Idx.Pos(), report.TypeMismatch, "array index must be integer, got %s", it.Repr())
	}
	arr, ok := xt.(types.Array)
	if !ok {
		c.bag.Error(n.X.Pos(), report.TypeMismatch, "cannot index non-array type %s", xt.Repr())
		return types.TVoid
	}
	return arr.Elem
}

func (c *Checker) checkMember(n *ast.Member) types.Type {
	xt := c.checkExpr(n.X)
	cls, ok := xt.(*types.Class)
	if !ok {
		c.bag.Error(n.X.Pos(), report.TypeMismatch, "cannot access member `%s` on non-class type %s", n.Field, xt.Repr())
		return types.TVoid
	}
	typ, ok := types.MemberLookup(cls, n.Field, c.lookupClassTypeRaw)
	if !ok {
		c.bag.Error(n.Pos(), report.UnknownMember, "class `%s` has no member `%s`", cls.Name, n.Field)
		return types.TVoid
	}
	return typ
}

func (c *Checker) checkCall(n *ast.Call) types.Type {
	switch callee := n.Callee.(type) {
	case *ast.Identifier:
		return c.checkFreeCall(n, callee)
	case *ast.Member:
		return c.checkMethodCall(n, callee)
	default:
		c.bag.Error(n.Pos(), report.TypeMismatch, "expression is not callable")
		return types.TVoid
	}
}

func (c *Checker) checkFreeCall(n *ast.Call, callee *ast.Identifier) types.Type {
	sym, ok := c.table.Lookup(callee.Name)
	if !ok {
		c.bag.Error(callee.Pos(), report.UnknownSymbol, "undefined symbol: `%s`", callee.Name)
		c.checkArgsLoose(n.Args)
		return types.TVoid
	}
	if sym.Kind != symbols.KindFunction {
		c.bag.Error(callee.Pos(), report.TypeMismatch, "`%s` is not callable", callee.Name)
		c.checkArgsLoose(n.Args)
		return types.TVoid
	}
	callee.SetType(sym.Type)

	sig := sym.FuncSig()
	c.checkArity(n, callee.Name, sig.Params, n.Args)
	return sig.Return
}

func (c *Checker) checkMethodCall(n *ast.Call, callee *ast.Member) types.Type {
	recvType := c.checkExpr(callee.X)
	cls, ok := recvType.(*types.Class)
	if !ok {
		c.bag.Error(callee.X.Pos(), report.TypeMismatch, "cannot call method on non-class type %s", recvType.Repr())
		c.checkArgsLoose(n.Args)
		return types.TVoid
	}
	member, ok := types.MemberLookup(cls, callee.Field, c.lookupClassTypeRaw)
	if !ok {
		c.bag.Error(callee.Pos(), report.UnknownMember, "class `%s` has no member `%s`", cls.Name, callee.Field)
		c.checkArgsLoose(n.Args)
		return types.TVoid
	}
	sig, ok := member.(types.FuncSig)
	if !ok {
		c.bag.Error(callee.Pos(), report.TypeMismatch, "`%s.%s` is not a method", cls.Name, callee.Field)
		c.checkArgsLoose(n.Args)
		return types.TVoid
	}
	callee.SetType(sig)
	c.checkArity(n, callee.Field, sig.Params, n.Args)
	return sig.Return
}

func (c *Checker) checkArity(n *ast.Call, name string, params []types.Type, args []ast.Expr) {
	if len(args) != len(params) {
		c.bag.Error(n.Pos(), report.ArityMismatch, "`%s` expects %d argument(s), got %d", name, len(params), len(args))
	}
	for i, arg := range args {
		at := c.checkExpr(arg)
		if i < len(params) && !types.Assignable(at, params[i], c.lookupClassTypeRaw) {
			c.bag.Error(arg.Pos(), report.TypeMismatch, "argument %d: cannot assign %s to %s", i+1, at.Repr(), params[i].Repr())
		}
	}
}

func (c *Checker) checkArgsLoose(args []ast.Expr) {
	for _, a := range args {
		c.checkExpr(a)
	}
}

func (c *Checker) checkNew(n *ast.New) types.Type {
	clsSym, ok := c.table.LookupClass(n.Class)
	if !ok {
		c.bag.Error(n.Pos(), report.UnknownSymbol, "unknown class `%s`", n.Class)
		c.checkArgsLoose(n.Args)
		return types.TVoid
	}
	clsType := clsSym.AsClassType()

	ctor, ok := c.resolveConstructor(n.Class)
	if !ok {
		if len(n.Args) != 0 {
			c.bag.Error(n.Pos(), report.BadConstructor, "class `%s` has no constructor; expected 0 arguments, got %d", n.Class, len(n.Args))
		}
		c.checkArgsLoose(n.Args)
		return clsType
	}

	sig := ctor.FuncSig()
	if len(n.Args) != len(sig.Params) {
		c.bag.Error(n.Pos(), report.BadConstructor, "constructor of `%s` expects %d argument(s), got %d", n.Class, len(sig.Params), len(n.Args))
	}
	for i, arg := range n.Args {
		at := c.checkExpr(arg)
		if i < len(sig.Params) && !types.Assignable(at, sig.Params[i], c.lookupClassTypeRaw) {
			c.bag.Error(arg.Pos(), report.BadConstructor, "constructor argument %d: cannot assign %s to %s", i+1, at.Repr(), sig.Params[i].Repr())
		}
	}
	return clsType
}

func (c *Checker) checkArrayLit(n *ast.ArrayLit) types.Type {
	if len(n.Elems) == 0 {
		// Empty array literals have no element to infer from; spec.md
		// is silent here. We fall back to Null as a sentinel element
		// type -- types.Assignable special-cases Array{Elem: Null} so
		// it is assignable to any concretely-elemented array type, but
		// it is usable in no other context, mirroring how `null`
		// behaves against reference types.
		return types.Array{Elem: types.TNull}
	}
	elemType := c.checkExpr(n.Elems[0])
	for _, e := range n.Elems[1:] {
		et := c.checkExpr(e)
		if !types.Equals(et, elemType) && !types.Assignable(et, elemType, c.lookupClassTypeRaw) {
			c.bag.Error(e.Pos(), report.TypeMismatch, "array element type mismatch: expected %s, got %s", elemType.Repr(), et.Repr())
		}
	}
	return types.Array{Elem: elemType}
}

func (c *Checker) checkAssign(n *ast.Assign) types.Type {
	if !isLValue(n.Target) {
		c.bag.Error(n.Target.Pos(), report.InvalidLValue, "left-hand side of assignment is not assignable")
		c.checkExpr(n.Value)
		return types.TVoid
	}

	if ident, ok := n.Target.(*ast.Identifier); ok {
		sym, ok := c.table.Lookup(ident.Name)
		if !ok {
			c.bag.Error(ident.Pos(), report.UnknownSymbol, "undefined symbol: `%s`", ident.Name)
			c.checkExpr(n.Value)
			return types.TVoid
		}
		if sym.IsConst {
			c.bag.Error(ident.Pos(), report.AssignToConst, "cannot assign to const `%s`", ident.Name)
		}
	}

	lt := c.checkExpr(n.Target)
	rt := c.checkExpr(n.Value)
	if !types.Assignable(rt, lt, c.lookupClassTypeRaw) {
		c.bag.Error(n.Pos(), report.TypeMismatch, "cannot assign %s to %s", rt.Repr(), lt.Repr())
	}
	return lt
}

// isLValue implements spec.md's InvalidLValue rule: an identifier
// (non-const, checked separately), `obj.field`, or `arr[i]`.
func isLValue(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.Member, *ast.Index:
		return true
	default:
		return false
	}
}
