package symbols

import (
	"testing"

	"compiscript/internal/report"
	"compiscript/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestDeclareAndLookup(t *testing.T) {
	tab := NewTable()

	x := &Symbol{Name: "x", Kind: KindVariable, Type: types.TInt}
	assert.True(t, tab.Declare(x))

	// Duplicate in the same scope fails.
	dup := &Symbol{Name: "x", Kind: KindVariable, Type: types.TInt}
	assert.False(t, tab.Declare(dup))

	sym, ok := tab.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, x, sym)

	_, ok = tab.Lookup("y")
	assert.False(t, ok)
}

func TestShadowingAcrossScopes(t *testing.T) {
	tab := NewTable()

	outer := &Symbol{Name: "x", Kind: KindVariable, Type: types.TInt}
	tab.Declare(outer)

	tab.Push(ScopeBlock)
	inner := &Symbol{Name: "x", Kind: KindVariable, Type: types.TString}
	assert.True(t, tab.Declare(inner)) // shadowing permitted

	sym, _ := tab.Lookup("x")
	assert.Equal(t, inner, sym)

	tab.Pop()
	sym, _ = tab.Lookup("x")
	assert.Equal(t, outer, sym)
}

func TestLoopStack(t *testing.T) {
	tab := NewTable()

	_, ok := tab.CurrentLoop()
	assert.False(t, ok)

	tab.PushLoop(LoopContext{ContinueLabel: "Ltest", BreakLabel: "Lend"})
	ctx, ok := tab.CurrentLoop()
	assert.True(t, ok)
	assert.Equal(t, "Ltest", ctx.ContinueLabel)

	tab.PopLoop()
	_, ok = tab.CurrentLoop()
	assert.False(t, ok)
}

func TestReturnContext(t *testing.T) {
	tab := NewTable()

	_, ok := tab.CurrentReturnType()
	assert.False(t, ok)

	tab.PushReturnContext(types.TInt)
	rt, ok := tab.CurrentReturnType()
	assert.True(t, ok)
	assert.Equal(t, types.TInt, rt)

	tab.PopReturnContext()
	_, ok = tab.CurrentReturnType()
	assert.False(t, ok)
}

func TestCurrentFunctionAndClassSeeThroughBlocks(t *testing.T) {
	tab := NewTable()

	cls := &Symbol{Name: "Counter", Kind: KindClass}
	tab.Declare(cls)
	tab.PushClass(cls)

	fn := &Symbol{Name: "inc", Kind: KindFunction, EnclosingClass: "Counter"}
	tab.Declare(fn)
	tab.PushFunction(fn)

	tab.Push(ScopeBlock)
	assert.Equal(t, fn, tab.CurrentFunction())
	assert.Equal(t, cls, tab.CurrentClass())
	tab.Pop()

	tab.Pop() // function scope
	assert.Nil(t, tab.CurrentFunction())
	assert.Equal(t, cls, tab.CurrentClass())
}

func TestDuplicateSymbolErrorHelper(t *testing.T) {
	bag := &report.Bag{}
	DuplicateSymbolError(bag, report.Position{Line: 1, Col: 2}, "x")
	assert.True(t, bag.AnyErrors())
	assert.Equal(t, report.DuplicateSymbol, bag.All()[0].Code)
}
