// Package checker implements the Compiscript semantic analyzer: the
// two-pass declaration/body walk of spec.md §4.3 over a parsed
// internal/ast.Program, producing a populated symbol table and a
// diagnostic bag.
//
// Grounded on the reference compiler's walk.Walker (its localScopes
// stack generalized here into internal/symbols.Table, its lookup/
// defineLocal/pushScope/popScope helpers, and its per-declaration
// report.CatchErrors recovery boundary).
package checker

import (
	"compiscript/internal/ast"
	"compiscript/internal/report"
	"compiscript/internal/symbols"
	"compiscript/internal/types"
)

// Checker walks a Program, populating a symbols.Table and a
// report.Bag. It is the sole owner of both for the duration of one
// compile, per spec.md §5 (single-threaded, synchronous, no shared
// state across invocations).
type Checker struct {
	bag   *report.Bag
	table *symbols.Table

	// labelSeq hands out unique loop/switch frame labels during the
	// body pass; see (*Checker).newLabel.
	labelSeq int
}

// Result is everything the TAC generator needs from a successful check.
type Result struct {
	Bag   *report.Bag
	Table *symbols.Table
}

// Check runs the full two-pass semantic analysis over prog and returns
// the diagnostic bag and populated symbol table. The caller should
// consult Result.Bag.AnyErrors() before attempting TAC generation, per
// spec.md §4.5.
func Check(prog *ast.Program) Result {
	c := &Checker{bag: &report.Bag{}, table: symbols.NewTable()}
	c.registerBuiltins()

	// Declaration pass: hoist all top-level functions and classes so
	// mutual recursion and forward references resolve (spec.md §4.3).
	c.declarePass(prog.Decls)

	// Body pass: type-check every top-level statement (including
	// function/class bodies) in source order.
	c.bodyPass(prog.Decls)

	return Result{Bag: c.bag, Table: c.table}
}

// registerBuiltins declares the single builtin `print` (spec.md §3.2),
// even though `print` is realized as its own ast.Print statement node
// rather than an ordinary call -- the builtin symbol still exists so
// diagnostics and tooling can refer to it uniformly.
func (c *Checker) registerBuiltins() {
	c.table.Declare(&symbols.Symbol{
		Name: "print",
		Kind: symbols.KindBuiltin,
		Type: types.FuncSig{Params: []types.Type{types.TVoid}, Return: types.TVoid},
	})
}

func (c *Checker) lookupClassType(name string) (*types.Class, bool) {
	sym, ok := c.table.LookupClass(name)
	if !ok {
		return nil, false
	}
	return sym.AsClassType(), true
}
