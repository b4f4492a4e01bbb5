package symbols

import (
	"compiscript/internal/report"
	"compiscript/internal/types"
)

// LoopContext carries the labels a break/continue inside a loop or
// switch should jump to. Switch statements push a break-only frame
// (ContinueLabel is empty) per spec.md §4.2.
type LoopContext struct {
	ContinueLabel string
	BreakLabel    string
	IsSwitch      bool
}

// Table is the scoped symbol table described by spec.md §4.2: a stack
// of Scopes, a parallel loop-context stack, and current-function/
// current-class lookups used for `this`, `return`, and member
// resolution.
//
// Grounded on the reference walker's localScopes stack, generalized
// from a slice-of-maps (which the reference inlines directly into
// Walker) into scopes with parent pointers of their own. Pop drops the
// closed scope: the Table keeps no popped scope, and the TAC generator
// resolves local names through its own scope stack rather than these.
// Only the global scope and the class registry remain reachable after
// checking.
type Table struct {
	current    *Scope
	loops      []LoopContext
	returnStk  []returnCtx
	nextID     uint64
	classes    map[string]*Symbol
}

type returnCtx struct {
	expected types.Type
}

// NewTable creates a table with a single Global scope pushed.
func NewTable() *Table {
	t := &Table{classes: make(map[string]*Symbol)}
	t.current = newScope(ScopeGlobal, nil)
	return t
}

// Push opens a new scope of the given kind on top of the current one.
func (t *Table) Push(kind ScopeKind) *Scope {
	s := newScope(kind, t.current)
	// Carry the nearest enclosing function/class markers forward so
	// CurrentFunction/CurrentClass see through nested blocks.
	if kind != ScopeFunction {
		s.FnSym = t.currentFuncSym()
	}
	if kind != ScopeClass {
		s.ClsSym = t.currentClassSym()
	}
	t.current = s
	return s
}

// PushFunction opens a Function scope owned by the given Function symbol.
func (t *Table) PushFunction(fn *Symbol) *Scope {
	s := t.Push(ScopeFunction)
	s.FnSym = fn
	return s
}

// PushClass opens a Class scope owned by the given Class symbol.
func (t *Table) PushClass(cls *Symbol) *Scope {
	s := t.Push(ScopeClass)
	s.ClsSym = cls
	return s
}

// Pop closes the current scope, restoring its parent.
func (t *Table) Pop() {
	t.current = t.current.Parent
}

// Current returns the innermost scope.
func (t *Table) Current() *Scope {
	return t.current
}

// nextSymbolID hands out the monotonically increasing, never-reused ID
// spec.md §3.3 requires for stable cross-phase symbol references.
func (t *Table) nextSymbolID() uint64 {
	t.nextID++
	return t.nextID
}

// Declare adds sym to the current scope. It fails with false (and the
// caller is expected to raise DuplicateSymbol) if the name already
// exists in that exact scope -- shadowing across scope boundaries is
// always permitted per spec.md invariant 2.
func (t *Table) Declare(sym *Symbol) bool {
	if _, exists := t.current.Names[sym.Name]; exists {
		return false
	}
	sym.ID = t.nextSymbolID()
	t.current.Names[sym.Name] = sym
	if sym.Kind == KindClass {
		t.classes[sym.Name] = sym
	}
	return true
}

// LookupLocal looks up name in the current scope only.
func (t *Table) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := t.current.Names[name]
	return sym, ok
}

// Lookup walks outward from the current scope through parents,
// returning the first binding found.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for s := t.current; s != nil; s = s.Parent {
		if sym, ok := s.Names[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupClass resolves a class by name regardless of scope nesting --
// classes are always registered globally in the checker's declaration
// pass, so this is a direct map lookup grounded on spec.md's need for
// the type system's member_lookup/Assignable helpers to resolve class
// names independent of the current scope stack.
func (t *Table) LookupClass(name string) (*Symbol, bool) {
	sym, ok := t.classes[name]
	return sym, ok
}

func (t *Table) currentFuncSym() *Symbol {
	for s := t.current; s != nil; s = s.Parent {
		if s.Kind == ScopeFunction {
			return s.FnSym
		}
		if s.FnSym != nil {
			return s.FnSym
		}
	}
	return nil
}

func (t *Table) currentClassSym() *Symbol {
	for s := t.current; s != nil; s = s.Parent {
		if s.Kind == ScopeClass {
			return s.ClsSym
		}
		if s.ClsSym != nil {
			return s.ClsSym
		}
	}
	return nil
}

// CurrentFunction returns the nearest enclosing Function symbol, or nil
// at global scope.
func (t *Table) CurrentFunction() *Symbol {
	return t.currentFuncSym()
}

// CurrentClass returns the nearest enclosing Class symbol, or nil
// outside any class body.
func (t *Table) CurrentClass() *Symbol {
	return t.currentClassSym()
}

// -----------------------------------------------------------------------------
// Loop stack (spec.md §4.2).

// PushLoop pushes a new loop context.
func (t *Table) PushLoop(ctx LoopContext) {
	t.loops = append(t.loops, ctx)
}

// PopLoop pops the innermost loop context.
func (t *Table) PopLoop() {
	t.loops = t.loops[:len(t.loops)-1]
}

// CurrentLoop returns the innermost loop context. The bool is false
// (and the caller should raise UnboundBreakContinue, per spec.md §7)
// when the stack is empty.
func (t *Table) CurrentLoop() (LoopContext, bool) {
	if len(t.loops) == 0 {
		return LoopContext{}, false
	}
	return t.loops[len(t.loops)-1], true
}

// BreakTarget returns the label the innermost loop or switch's `break`
// should jump to (spec.md §4.2: switch pushes a break-only frame, so
// `break` always targets the nearest frame regardless of kind).
func (t *Table) BreakTarget() (string, bool) {
	ctx, ok := t.CurrentLoop()
	if !ok {
		return "", false
	}
	return ctx.BreakLabel, true
}

// ContinueTarget returns the label `continue` should jump to: the
// nearest enclosing loop frame, skipping over any switch frames in
// between (a switch does not introduce its own continue target).
func (t *Table) ContinueTarget() (string, bool) {
	for i := len(t.loops) - 1; i >= 0; i-- {
		if !t.loops[i].IsSwitch {
			return t.loops[i].ContinueLabel, true
		}
	}
	return "", false
}

// -----------------------------------------------------------------------------
// Return context (spec.md §4.2): each function push records the type a
// `return` statement inside it must produce.

// PushReturnContext records the expected return type for a newly
// entered function body.
func (t *Table) PushReturnContext(expected types.Type) {
	t.returnStk = append(t.returnStk, returnCtx{expected: expected})
}

// PopReturnContext discards the innermost return context.
func (t *Table) PopReturnContext() {
	t.returnStk = t.returnStk[:len(t.returnStk)-1]
}

// CurrentReturnType returns the expected return type of the nearest
// enclosing function, or (nil, false) if `return` is not currently
// valid (used outside any function).
func (t *Table) CurrentReturnType() (types.Type, bool) {
	if len(t.returnStk) == 0 {
		return nil, false
	}
	return t.returnStk[len(t.returnStk)-1].expected, true
}

// -----------------------------------------------------------------------------
// Diagnostics helper re-exported for convenience at call sites that
// only have a *Table in scope.

// DuplicateSymbolError is a convenience wrapper for the common
// Declare-then-report pattern.
func DuplicateSymbolError(bag *report.Bag, pos report.Position, name string) {
	bag.Error(pos, report.DuplicateSymbol, "symbol `%s` already declared in this scope", name)
}
