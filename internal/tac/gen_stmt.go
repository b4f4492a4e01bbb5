package tac

import (
	"compiscript/internal/ast"
)

func (g *Generator) genBlock(b *ast.Block, pushScope bool) {
	if pushScope {
		g.pushScope()
		defer g.popScope()
	}
	for _, s := range b.Stmts {
		g.genStmt(s)
	}
}

func (g *Generator) genStmt(n ast.Node) {
	switch s := n.(type) {
	case *ast.VarDecl:
		g.genVarDecl(s)
	case *ast.If:
		g.genIf(s)
	case *ast.While:
		g.genWhile(s)
	case *ast.DoWhile:
		g.genDoWhile(s)
	case *ast.For:
		g.genFor(s)
	case *ast.Foreach:
		g.genForeach(s)
	case *ast.Switch:
		g.genSwitch(s)
	case *ast.Break:
		g.emit(Goto(g.currentLoop().breakLabel))
	case *ast.Continue:
		g.emit(Goto(g.continueTarget()))
	case *ast.Return:
		g.genReturn(s)
	case *ast.ExprStmt:
		g.genExpr(s.X)
	case *ast.Print:
		v := g.genExpr(s.Value)
		g.emit(Print(v))
	case *ast.Block:
		g.genBlock(s, true)
	default:
		panic("tac: unhandled statement node in generator")
	}
}

func (g *Generator) genVarDecl(v *ast.VarDecl) {
	if v.Init == nil {
		g.bindLocal(v.Name)
		return
	}
	val := g.genExpr(v.Init)
	slot := g.bindLocal(v.Name)
	g.emit(Move(val, slot))
	g.propagateArrLen(slot, v.Init)
}

func (g *Generator) genIf(s *ast.If) {
	cond := g.genExpr(s.Cond)

	if s.Else == nil {
		endLabel := g.newLabel("ifEnd")
		g.emit(IfFalse(cond, endLabel))
		g.genBlock(s.Then, true)
		g.emit(Label(endLabel))
		return
	}

	elseLabel := g.newLabel("ifElse")
	g.emit(IfFalse(cond, elseLabel))
	g.genBlock(s.Then, true)

	// Elide the bridging goto (and its matching end label) when the
	// then-branch already ends control flow -- spec.md §4.4: "Elide
	// Lelse/unconditional goto if a branch is ... terminal."
	thenTerminal := g.lastTerminal()
	var endLabel string
	if !thenTerminal {
		endLabel = g.newLabel("ifEnd")
		g.emit(Goto(endLabel))
	}

	g.emit(Label(elseLabel))
	g.genBlock(s.Else, true)
	if !thenTerminal {
		g.emit(Label(endLabel))
	}
}

func (g *Generator) genWhile(s *ast.While) {
	top := g.newLabel("whileTop")
	end := g.newLabel("whileEnd")

	g.emit(Label(top))
	cond := g.genExpr(s.Cond)
	g.emit(IfFalse(cond, end))

	g.pushLoop(loopCtx{continueLabel: top, breakLabel: end})
	g.genBlock(s.Body, true)
	g.popLoop()

	g.emit(Goto(top))
	g.emit(Label(end))
}

func (g *Generator) genDoWhile(s *ast.DoWhile) {
	top := g.newLabel("doTop")
	end := g.newLabel("doEnd")

	g.emit(Label(top))
	g.pushLoop(loopCtx{continueLabel: top, breakLabel: end})
	g.genBlock(s.Body, true)
	g.popLoop()

	cond := g.genExpr(s.Cond)
	g.emit(IfGoto(cond, top))
	g.emit(Label(end))
}

func (g *Generator) genFor(s *ast.For) {
	g.pushScope()
	defer g.popScope()

	if s.Init != nil {
		g.genStmt(s.Init)
	}

	top := g.newLabel("forTop")
	cont := g.newLabel("forCont")
	end := g.newLabel("forEnd")

	g.emit(Label(top))
	if s.Cond != nil {
		cond := g.genExpr(s.Cond)
		g.emit(IfFalse(cond, end))
	}

	g.pushLoop(loopCtx{continueLabel: cont, breakLabel: end})
	g.genBlock(s.Body, true)
	g.popLoop()

	g.emit(Label(cont))
	if s.Step != nil {
		g.genExpr(s.Step)
	}
	g.emit(Goto(top))
	g.emit(Label(end))
}

// genForeach desugars to an integer-indexed for loop over the
// iterable's statically known length, per spec.md §4.4. This
// instruction set has no runtime array-length primitive, so the bound
// must come from the arr_len side map (populated when the iterable is
// a local last assigned from an array literal) or, when the iterable
// is itself an inline array literal, from its element count directly.
// An iterable the generator cannot size statically lowers to a
// zero-iteration loop -- see DESIGN.md for the reasoning.
func (g *Generator) genForeach(s *ast.Foreach) {
	g.pushScope()
	defer g.popScope()

	length := 0
	var arrOperand Operand
	if lit, ok := s.Iterable.(*ast.ArrayLit); ok {
		length = len(lit.Elems)
		arrOperand = g.genExpr(lit)
	} else {
		arrOperand = g.genExpr(s.Iterable)
		if arrOperand.Kind == OpLocal || arrOperand.Kind == OpTemp {
			length = g.arrLen[arrOperand.Text]
		}
	}

	idxSlot := g.bindLocal("$idx")
	g.emit(Move(LitInt(0), idxSlot))

	varSlot := g.bindLocal(s.Var)

	top := g.newLabel("feTop")
	cont := g.newLabel("feCont")
	end := g.newLabel("feEnd")

	g.emit(Label(top))
	cmp := g.newTemp()
	g.emit(Binary("<", idxSlot, LitInt(int64(length)), cmp))
	g.emit(IfFalse(cmp, end))

	g.emit(ALoad(arrOperand, idxSlot, varSlot))

	g.pushLoop(loopCtx{continueLabel: cont, breakLabel: end})
	g.genBlock(s.Body, true)
	g.popLoop()

	g.emit(Label(cont))
	next := g.newTemp()
	g.emit(Binary("+", idxSlot, LitInt(1), next))
	g.emit(Move(next, idxSlot))
	g.emit(Goto(top))
	g.emit(Label(end))
}

func (g *Generator) genSwitch(s *ast.Switch) {
	subj := g.genExpr(s.Subject)
	end := g.newLabel("swEnd")

	caseLabels := make([]string, len(s.Cases))
	defaultLabel := ""
	for i, cs := range s.Cases {
		if cs.IsDefault {
			caseLabels[i] = g.newLabel("swDefault")
			defaultLabel = caseLabels[i]
			continue
		}
		caseLabels[i] = g.newLabel("swCase")
		val := g.genExpr(cs.Value)
		cmp := g.newTemp()
		g.emit(Binary("==", subj, val, cmp))
		g.emit(IfGoto(cmp, caseLabels[i]))
	}
	if defaultLabel != "" {
		g.emit(Goto(defaultLabel))
	} else {
		g.emit(Goto(end))
	}

	g.pushLoop(loopCtx{breakLabel: end, isSwitch: true})
	for i, cs := range s.Cases {
		g.emit(Label(caseLabels[i]))
		g.pushScope()
		for _, st := range cs.Body {
			g.genStmt(st)
		}
		g.popScope()
	}
	g.popLoop()

	g.emit(Label(end))
}

func (g *Generator) genReturn(s *ast.Return) {
	if s.Value == nil {
		g.emit(Ret(Operand{}))
		return
	}
	v := g.genExpr(s.Value)
	g.emit(Ret(v))
}

func (g *Generator) pushLoop(ctx loopCtx) {
	g.loops = append(g.loops, ctx)
}

func (g *Generator) popLoop() {
	g.loops = g.loops[:len(g.loops)-1]
}

func (g *Generator) currentLoop() loopCtx {
	return g.loops[len(g.loops)-1]
}

// continueTarget skips over switch frames, mirroring
// symbols.Table.ContinueTarget: a switch does not introduce its own
// continue target.
func (g *Generator) continueTarget() string {
	for i := len(g.loops) - 1; i >= 0; i-- {
		if !g.loops[i].isSwitch {
			return g.loops[i].continueLabel
		}
	}
	panic("tac: continue outside any loop reached the generator")
}
