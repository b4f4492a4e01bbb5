package tac

import (
	"strconv"

	"compiscript/internal/ast"
	"compiscript/internal/symbols"
	"compiscript/internal/types"
)

// Generator lowers a checked AST into a Program. It walks the same
// tree the checker walked and assumes the input is well-formed --
// spec.md §4.4: "assumes inputs are well-formed."
//
// Grounded on the reference compiler's lower.Lowerer: a single struct
// that mints temporaries/labels and appends onto a live instruction
// slice as it recurses, reset fresh for every function body.
type Generator struct {
	table *symbols.Table

	fn       *Function
	tempSeq  int
	labelSeq int
	loops    []loopCtx

	// scopes mirrors the checker's block nesting during generation so
	// that a shadowing inner declaration gets its own storage slot
	// instead of colliding with an outer local of the same source
	// name. Each frame maps a source name to the slot Operand bound to
	// it in that block.
	scopes    []map[string]Operand
	slotSeq   int
	usedNames map[string]bool

	// arrLen tracks the statically known length of a local whose most
	// recent assignment was a NewArr with a literal size or an array
	// literal, keyed by slot text, per spec.md §4.4's "arr_len[var] =
	// N" side map. It is the only mechanism this instruction set gives
	// foreach to find an iteration bound, since the ISA has no runtime
	// array-length instruction (see DESIGN.md's foreach note).
	arrLen map[string]int
}

type loopCtx struct {
	continueLabel string
	breakLabel    string
	isSwitch      bool
}

// Generate lowers every top-level function, class method, and bare
// top-level statement in prog into a tac.Program. Bare top-level
// statements are collected into a synthesized `main` function, per
// spec.md §3.4 ("plus a global main-equivalent entry if top-level
// statements exist").
func Generate(prog *ast.Program, table *symbols.Table) *Program {
	g := &Generator{table: table}
	out := &Program{}

	var mainStmts []ast.Node
	for _, d := range prog.Decls {
		switch n := d.(type) {
		case *ast.FuncDecl:
			sym, _ := table.Lookup(n.Name)
			out.Functions = append(out.Functions, g.genFunction(n.Name, n, sym, ""))
		case *ast.ClassDecl:
			clsSym, _ := table.LookupClass(n.Name)
			for _, m := range n.Methods {
				msym := clsSym.OwnMethods[m.Fn.Name]
				qualified := n.Name + "." + m.Fn.Name
				out.Functions = append(out.Functions, g.genFunction(qualified, m.Fn, msym, n.Name))
			}
		default:
			mainStmts = append(mainStmts, d)
		}
	}

	if len(mainStmts) > 0 {
		out.Functions = append(out.Functions, g.genMain(mainStmts))
	}

	for _, fn := range out.Functions {
		fn.Peephole()
	}

	return out
}

func (g *Generator) resetForFunction(name string) {
	g.fn = &Function{Name: name, ReturnType: "void"}
	g.tempSeq = 0
	g.labelSeq = 0
	g.loops = nil
	g.scopes = nil
	g.slotSeq = 0
	g.usedNames = map[string]bool{}
	g.arrLen = map[string]int{}
	g.pushScope()
}

func (g *Generator) genFunction(qualifiedName string, fd *ast.FuncDecl, sym *symbols.Symbol, owningClass string) *Function {
	g.resetForFunction(qualifiedName)

	if owningClass != "" {
		slot := g.bindLocal("this")
		g.fn.Params = append(g.fn.Params, slot.Text)
	}
	for _, p := range fd.Params {
		slot := g.bindLocal(p.Name)
		g.fn.Params = append(g.fn.Params, slot.Text)
	}
	if sym != nil {
		g.fn.ReturnType = reprType(sym.Return)
	}

	g.genBlock(fd.Body, false)
	g.terminateImplicitly()
	return g.fn
}

func (g *Generator) genMain(stmts []ast.Node) *Function {
	g.resetForFunction("main")
	for _, s := range stmts {
		g.genStmt(s)
	}
	g.terminateImplicitly()
	return g.fn
}

// terminateImplicitly appends a bare `ret` when the body's last
// instruction doesn't already end control flow -- a Void function or
// main falling off the end of its statement list has nothing else to
// emit.
func (g *Generator) terminateImplicitly() {
	if !g.lastTerminal() {
		g.emit(Ret(Operand{}))
	}
}

// lastTerminal reports whether the most recently emitted instruction in
// the current function already ends control flow, so a caller can elide
// a redundant fall-through goto or label -- spec.md §4.4.
func (g *Generator) lastTerminal() bool {
	return len(g.fn.Instrs) > 0 && g.fn.Instrs[len(g.fn.Instrs)-1].IsTerminal()
}

func (g *Generator) emit(in Instruction) {
	g.fn.Instrs = append(g.fn.Instrs, in)
}

func (g *Generator) newTemp() Operand {
	t := Temp(g.tempSeq)
	g.tempSeq++
	return t
}

func (g *Generator) newLabel(hint string) string {
	g.labelSeq++
	return "L" + hint + strconv.Itoa(g.labelSeq)
}

func (g *Generator) pushScope() {
	g.scopes = append(g.scopes, map[string]Operand{})
}

func (g *Generator) popScope() {
	g.scopes = g.scopes[:len(g.scopes)-1]
}

// bindLocal allocates a fresh storage slot for a newly declared local
// and binds it in the innermost scope. The slot reuses the source name
// verbatim the first time it's seen in the function; a shadowing
// re-declaration gets a numeric suffix so it never aliases the outer
// binding's storage.
func (g *Generator) bindLocal(name string) Operand {
	slotName := name
	if g.usedNames[name] {
		g.slotSeq++
		slotName = name + "$" + strconv.Itoa(g.slotSeq)
	}
	g.usedNames[name] = true
	g.fn.Locals++

	slot := Local(slotName)
	g.scopes[len(g.scopes)-1][name] = slot
	return slot
}

// resolve finds the slot bound to name in the nearest enclosing scope.
// Every identifier reaching here was already validated by the checker,
// so an unresolved name indicates a generator bug, not malformed input.
func (g *Generator) resolve(name string) Operand {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if slot, ok := g.scopes[i][name]; ok {
			return slot
		}
	}
	panic("tac: unresolved identifier `" + name + "` reached the generator")
}

// reprType renders a checked types.Type as the nominal return-type
// string spec.md §6's `.func` header expects.
func reprType(t types.Type) string {
	if t == nil {
		return "void"
	}
	return t.Repr()
}

// declaringClass walks className's parent chain to find which ancestor
// actually declares method -- calls in this instruction set have no
// vtable, so they are statically bound to the class that owns the
// method body, matching a non-virtual dispatch model (see DESIGN.md).
// ok is false when no ancestor declares method at all (a class with no
// constructor of its own or any parent's, which the checker permits
// only when it is invoked with zero arguments).
func (g *Generator) declaringClass(className, method string) (owner string, ok bool) {
	name := className
	for name != "" {
		sym, found := g.table.LookupClass(name)
		if !found {
			return "", false
		}
		if _, has := sym.OwnMethods[method]; has {
			return name, true
		}
		name = sym.Parent
	}
	return "", false
}
