package checker

import (
	"fmt"

	"compiscript/internal/ast"
	"compiscript/internal/report"
	"compiscript/internal/symbols"
	"compiscript/internal/types"
)

// bodyPass type-checks every top-level declaration's body and every
// bare top-level statement, in source order (spec.md §4.3). Each
// top-level construct gets its own report.Recover boundary so one
// malformed declaration can't derail the rest of the pass.
func (c *Checker) bodyPass(decls []ast.Node) {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.FuncDecl:
			c.checkTopLevelFunc(n)
		case *ast.ClassDecl:
			c.checkClassBody(n)
		default:
			c.checkTopLevelStmt(d)
		}
	}
}

func (c *Checker) checkTopLevelFunc(fd *ast.FuncDecl) {
	defer report.Recover(c.bag)

	sym, _ := c.table.Lookup(fd.Name)
	c.checkFuncBody(fd, sym)
}

func (c *Checker) checkTopLevelStmt(n ast.Node) {
	defer report.Recover(c.bag)
	c.checkStmt(n)
}

func (c *Checker) checkClassBody(cd *ast.ClassDecl) {
	clsSym, _ := c.table.LookupClass(cd.Name)

	c.table.PushClass(clsSym)
	defer c.table.Pop()

	for _, m := range cd.Methods {
		func() {
			defer report.Recover(c.bag)
			msym := clsSym.OwnMethods[m.Fn.Name]
			c.checkFuncBody(m.Fn, msym)
		}()
	}
}

// checkFuncBody checks a function or method's body against its already
// declared signature (sym). When sym is nil the body is still checked
// for diagnostics but return-type validation is skipped. A duplicate
// declaration does not yield nil: its caller resolves the name to the
// first symbol declared under it, and the body is checked against that.
func (c *Checker) checkFuncBody(fd *ast.FuncDecl, sym *symbols.Symbol) {
	if sym != nil {
		c.table.PushFunction(sym)
	} else {
		c.table.Push(symbols.ScopeFunction)
	}
	defer c.table.Pop()

	var retType types.Type = types.TVoid
	if sym != nil {
		retType = sym.Return
		for _, p := range sym.Params {
			c.table.Declare(&symbols.Symbol{
				Name:        p.Name,
				Kind:        symbols.KindParameter,
				Pos:         p.Pos,
				Type:        p.Type,
				SlotIndex:   p.SlotIndex,
				Initialized: true,
			})
		}
	}

	c.table.PushReturnContext(retType)
	defer c.table.PopReturnContext()

	mustReturn := c.checkBlock(fd.Body, false)
	if sym != nil && !types.Equals(retType, types.TVoid) && !mustReturn {
		c.bag.Error(fd.Pos(), report.MissingReturn, "function `%s` does not return a value on every path", fd.Name)
	}
}

// checkBlock type-checks every statement in b and returns whether the
// block is guaranteed to return on every control-flow path (spec.md
// §4.3's must-return analysis). Statements after the first one that is
// guaranteed to return are reported once as DeadCode.
func (c *Checker) checkBlock(b *ast.Block, pushScope bool) bool {
	if pushScope {
		c.table.Push(symbols.ScopeBlock)
		defer c.table.Pop()
	}
	return c.checkStmtList(b.Stmts)
}

func (c *Checker) checkStmtList(stmts []ast.Node) bool {
	mustReturn := false
	warnedDead := false
	for _, s := range stmts {
		if mustReturn && !warnedDead {
			c.bag.Warn(s.Pos(), report.DeadCode, "unreachable code after a path that always returns")
			warnedDead = true
		}
		if c.checkStmt(s) {
			mustReturn = true
		}
	}
	return mustReturn
}

// checkStmt type-checks a single statement and reports whether it
// guarantees a return on every path through it.
func (c *Checker) checkStmt(n ast.Node) bool {
	switch s := n.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(s)
		return false
	case *ast.If:
		return c.checkIf(s)
	case *ast.While:
		c.checkWhile(s)
		return false
	case *ast.DoWhile:
		return c.checkDoWhile(s)
	case *ast.For:
		c.checkFor(s)
		return false
	case *ast.Foreach:
		c.checkForeach(s)
		return false
	case *ast.Switch:
		return c.checkSwitch(s)
	case *ast.Break:
		c.checkBreak(s)
		return false
	case *ast.Continue:
		c.checkContinue(s)
		return false
	case *ast.Return:
		c.checkReturn(s)
		return true
	case *ast.ExprStmt:
		c.checkExpr(s.X)
		return false
	case *ast.Print:
		c.checkExpr(s.Value)
		return false
	case *ast.Block:
		return c.checkBlock(s, true)
	default:
		report.Abort(n.Pos(), report.TypeMismatch, "internal: unhandled statement node")
		return false
	}
}

func (c *Checker) checkVarDecl(v *ast.VarDecl) {
	var declared types.Type
	if v.Ann != nil {
		declared = c.resolveType(*v.Ann, v.Pos())
	}

	var initType types.Type
	hasInit := v.Init != nil
	if hasInit {
		initType = c.checkExpr(v.Init)
	}

	if v.IsConst && !hasInit {
		c.bag.Error(v.Pos(), report.TypeMismatch, "const `%s` must be initialized", v.Name)
	}

	switch {
	case declared != nil && hasInit:
		if !types.Assignable(initType, declared, c.lookupClassTypeRaw) {
			c.bag.Error(v.Init.Pos(), report.TypeMismatch, "cannot assign %s to %s `%s`", initType.Repr(), declared.Repr(), v.Name)
		}
	case declared != nil && !hasInit:
		// declared type stands alone
	case declared == nil && hasInit:
		declared = initType
	default:
		c.bag.Error(v.Pos(), report.TypeMismatch, "`%s` needs either a type annotation or an initializer", v.Name)
		declared = types.TVoid
	}

	sym := &symbols.Symbol{
		Name:        v.Name,
		Kind:        symbols.KindVariable,
		Pos:         v.Pos(),
		Type:        declared,
		IsConst:     v.IsConst,
		Initialized: hasInit,
	}
	if !c.table.Declare(sym) {
		symbols.DuplicateSymbolError(c.bag, v.Pos(), v.Name)
	}
}

func (c *Checker) checkIf(s *ast.If) bool {
	ct := c.checkExpr(s.Cond)
	if !types.Equals(ct, types.TBool) {
		c.bag.Error(s.Cond.Pos(), report.NotBoolean, "if condition must be boolean, got %s", ct.Repr())
	}
	thenReturns := c.checkBlock(s.Then, true)
	if s.Else == nil {
		return false
	}
	elseReturns := c.checkBlock(s.Else, true)
	return thenReturns && elseReturns
}

func (c *Checker) checkWhile(s *ast.While) {
	ct := c.checkExpr(s.Cond)
	if !types.Equals(ct, types.TBool) {
		c.bag.Error(s.Cond.Pos(), report.NotBoolean, "while condition must be boolean, got %s", ct.Repr())
	}
	c.table.PushLoop(symbols.LoopContext{
		ContinueLabel: c.newLabel("while_cont"),
		BreakLabel:    c.newLabel("while_brk"),
	})
	defer c.table.PopLoop()
	c.checkBlock(s.Body, true)
}

// checkDoWhile returns true when the body is guaranteed to return,
// since a do-while always executes its body at least once.
func (c *Checker) checkDoWhile(s *ast.DoWhile) bool {
	c.table.PushLoop(symbols.LoopContext{
		ContinueLabel: c.newLabel("do_cont"),
		BreakLabel:    c.newLabel("do_brk"),
	})
	bodyReturns := c.checkBlock(s.Body, true)
	c.table.PopLoop()

	ct := c.checkExpr(s.Cond)
	if !types.Equals(ct, types.TBool) {
		c.bag.Error(s.Cond.Pos(), report.NotBoolean, "do-while condition must be boolean, got %s", ct.Repr())
	}
	return bodyReturns
}

func (c *Checker) checkFor(s *ast.For) {
	c.table.Push(symbols.ScopeBlock)
	defer c.table.Pop()

	if s.Init != nil {
		c.checkStmt(s.Init)
	}
	if s.Cond != nil {
		ct := c.checkExpr(s.Cond)
		if !types.Equals(ct, types.TBool) {
			c.bag.Error(s.Cond.Pos(), report.NotBoolean, "for condition must be boolean, got %s", ct.Repr())
		}
	}
	if s.Step != nil {
		c.checkExpr(s.Step)
	}

	c.table.PushLoop(symbols.LoopContext{
		ContinueLabel: c.newLabel("for_cont"),
		BreakLabel:    c.newLabel("for_brk"),
	})
	defer c.table.PopLoop()
	c.checkBlock(s.Body, true)
}

func (c *Checker) checkForeach(s *ast.Foreach) {
	c.table.Push(symbols.ScopeBlock)
	defer c.table.Pop()

	it := c.checkExpr(s.Iterable)
	arr, ok := it.(types.Array)
	var elem types.Type = types.TVoid
	if !ok {
		c.bag.Error(s.Iterable.Pos(), report.TypeMismatch, "foreach requires an array, got %s", it.Repr())
	} else {
		elem = arr.Elem
	}
	c.table.Declare(&symbols.Symbol{
		Name:        s.Var,
		Kind:        symbols.KindVariable,
		Pos:         s.Pos(),
		Type:        elem,
		Initialized: true,
	})

	c.table.PushLoop(symbols.LoopContext{
		ContinueLabel: c.newLabel("foreach_cont"),
		BreakLabel:    c.newLabel("foreach_brk"),
	})
	defer c.table.PopLoop()
	c.checkBlock(s.Body, false)
}

func (c *Checker) checkSwitch(s *ast.Switch) bool {
	subjType := c.checkExpr(s.Subject)

	c.table.PushLoop(symbols.LoopContext{BreakLabel: c.newLabel("switch_brk"), IsSwitch: true})
	defer c.table.PopLoop()

	hasDefault := false
	allReturn := true
	for i, cs := range s.Cases {
		if cs.IsDefault {
			hasDefault = true
		} else {
			vt := c.checkExpr(cs.Value)
			if !types.Assignable(vt, subjType, c.lookupClassTypeRaw) {
				c.bag.Error(cs.Value.Pos(), report.TypeMismatch, "case value type %s does not match switch subject type %s", vt.Repr(), subjType.Repr())
			}
		}

		c.table.Push(symbols.ScopeBlock)
		caseReturns, endsWithJump := c.checkCaseBody(cs.Body)
		c.table.Pop()

		if !endsWithJump && i != len(s.Cases)-1 {
			c.bag.Error(cs.Pos(), report.FallthroughCase, "case falls through to the next case without `break` or `return`")
		}
		if !caseReturns {
			allReturn = false
		}
	}
	return allReturn && hasDefault
}

func (c *Checker) checkCaseBody(body []ast.Node) (mustReturn, endsWithJump bool) {
	warnedDead := false
	for _, s := range body {
		if mustReturn && !warnedDead {
			c.bag.Warn(s.Pos(), report.DeadCode, "unreachable code after a path that always returns")
			warnedDead = true
		}
		if c.checkStmt(s) {
			mustReturn = true
		}
		switch s.(type) {
		case *ast.Break, *ast.Return:
			endsWithJump = true
		default:
			endsWithJump = false
		}
	}
	return mustReturn, endsWithJump
}

func (c *Checker) checkBreak(s *ast.Break) {
	if _, ok := c.table.BreakTarget(); !ok {
		c.bag.Error(s.Pos(), report.UnboundBreakContinue, "`break` outside of any loop or switch")
	}
}

func (c *Checker) checkContinue(s *ast.Continue) {
	if _, ok := c.table.ContinueTarget(); !ok {
		c.bag.Error(s.Pos(), report.UnboundBreakContinue, "`continue` outside of any loop")
	}
}

func (c *Checker) checkReturn(s *ast.Return) {
	expected, ok := c.table.CurrentReturnType()
	if !ok {
		c.bag.Error(s.Pos(), report.MissingReturn, "`return` outside of any function")
		if s.Value != nil {
			c.checkExpr(s.Value)
		}
		return
	}

	if s.Value == nil {
		if !types.Equals(expected, types.TVoid) {
			c.bag.Error(s.Pos(), report.TypeMismatch, "missing return value, expected %s", expected.Repr())
		}
		return
	}

	vt := c.checkExpr(s.Value)
	if types.Equals(expected, types.TVoid) {
		c.bag.Error(s.Value.Pos(), report.TypeMismatch, "function returns void, but a value was provided")
		return
	}
	if !types.Assignable(vt, expected, c.lookupClassTypeRaw) {
		c.bag.Error(s.Value.Pos(), report.TypeMismatch, "cannot return %s as %s", vt.Repr(), expected.Repr())
	}
}

// newLabel hands out a unique label name for a loop or switch frame.
// The checker only uses these to tell loop contexts apart on the stack
// -- the TAC generator mints its own labels during lowering.
func (c *Checker) newLabel(prefix string) string {
	c.labelSeq++
	return fmt.Sprintf("%s_%d", prefix, c.labelSeq)
}
