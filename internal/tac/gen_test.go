package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compiscript/internal/checker"
	"compiscript/internal/syntax"
)

// compile runs the full pipeline (parse -> check -> generate) and
// fails the test if parsing errors or the checker reports any error
// diagnostic -- mirroring spec.md §4.5's "TAC generation is skipped
// whenever AnyErrors() is true" gate.
func compile(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := syntax.Parse(src)
	require.NoError(t, err)

	result := checker.Check(prog)
	require.False(t, result.Bag.AnyErrors(), "unexpected diagnostics: %v", result.Bag.All())

	return Generate(prog, result.Table)
}

// TestSimplePrint mirrors Scenario S1: printing a local initialized
// from a literal lowers to a move into the local and a print
// instruction, with no diagnostics.
func TestSimplePrint(t *testing.T) {
	out := compile(t, `
		let x: integer = 10;
		print(x);
	`)

	require.Len(t, out.Functions, 1)
	main := out.Functions[0]
	assert.Equal(t, "main", main.Name)

	var sawMove, sawPrint bool
	for _, in := range main.Instrs {
		if in.Op == OpMove {
			sawMove = true
		}
		if in.Op == OpPrint {
			sawPrint = true
		}
	}
	assert.True(t, sawMove)
	assert.True(t, sawPrint)
}

// TestRecursiveFactorial mirrors Scenario S2: a recursive function
// generates a self-call and terminates every path with `ret`.
func TestRecursiveFactorial(t *testing.T) {
	out := compile(t, `
		function factorial(n: integer): integer {
			if (n <= 1) {
				return 1;
			} else {
				return n * factorial(n - 1);
			}
		}
	`)

	require.Len(t, out.Functions, 1)
	fn := out.Functions[0]
	assert.Equal(t, "factorial", fn.Name)
	assert.Equal(t, "integer", fn.ReturnType)

	var sawSelfCall bool
	for _, in := range fn.Instrs {
		if in.Op == OpCall && in.FuncName == "factorial" {
			sawSelfCall = true
		}
	}
	assert.True(t, sawSelfCall)
	assert.True(t, fn.Instrs[len(fn.Instrs)-1].Op == OpRet || fn.Instrs[len(fn.Instrs)-1].Op == OpLabel)
}

// TestIfElseBothBranchesReturnElidesBridgingGoto mirrors spec.md §4.4's
// terminal-branch elision rule: when the then-branch already ends
// control flow, genIf must not emit an unreachable goto right after it.
func TestIfElseBothBranchesReturnElidesBridgingGoto(t *testing.T) {
	out := compile(t, `
		function f(n: integer): integer {
			if (n > 0) {
				return 1;
			} else {
				return 0;
			}
		}
	`)

	require.Len(t, out.Functions, 1)
	fn := out.Functions[0]

	for i, in := range fn.Instrs {
		if in.Op == OpRet && i+1 < len(fn.Instrs) {
			assert.NotEqual(t, OpGoto, fn.Instrs[i+1].Op, "goto directly after ret at index %d", i)
		}
	}
}

// TestShortCircuitEvaluatesRightOperandOnce mirrors Scenario S3: the
// right operand of `&&`/`||` is lowered exactly once, guarded by a
// conditional branch rather than evaluated unconditionally.
func TestShortCircuitEvaluatesRightOperandOnce(t *testing.T) {
	out := compile(t, `
		function f(a: boolean, b: boolean): boolean {
			return a && b;
		}
	`)

	require.Len(t, out.Functions, 1)
	fn := out.Functions[0]

	moveCount := 0
	for _, in := range fn.Instrs {
		if in.Op == OpMove {
			moveCount++
		}
	}
	// Exactly two moves: one for the short-circuit-false path, one for
	// the right-operand-evaluated path, per genShortCircuit's shape.
	assert.Equal(t, 2, moveCount)

	var sawIfFalse bool
	for _, in := range fn.Instrs {
		if in.Op == OpIfFalse {
			sawIfFalse = true
		}
	}
	assert.True(t, sawIfFalse)
}

// TestMethodCallEmitsThisParamThenCall mirrors Scenario S4: a method
// call on an object parameterizes the receiver first, then emits a
// call to the class-qualified method name.
func TestMethodCallEmitsThisParamThenCall(t *testing.T) {
	out := compile(t, `
		class Counter {
			let count: integer;

			constructor() {
				this.count = 0;
			}

			function increment(): void {
				this.count = this.count + 1;
			}
		}

		let c: Counter = new Counter();
		c.increment();
	`)

	var mainFn *Function
	for _, fn := range out.Functions {
		if fn.Name == "main" {
			mainFn = fn
		}
	}
	require.NotNil(t, mainFn)

	// paramIdx ends up at the last param before the increment call,
	// which must be the receiver since increment takes no arguments.
	var paramIdx, callIdx = -1, -1
	for i, in := range mainFn.Instrs {
		if in.Op == OpParam && callIdx == -1 {
			paramIdx = i
		}
		if in.Op == OpCall && in.FuncName == "Counter.increment" {
			callIdx = i
		}
	}
	require.NotEqual(t, -1, callIdx)
	require.NotEqual(t, -1, paramIdx)
	assert.Less(t, paramIdx, callIdx)
	assert.Equal(t, Local("c"), mainFn.Instrs[paramIdx].Arg)
}

// TestForeachOverLiteralArrayDesugarsToIndexedLoop mirrors Scenario S5.
func TestForeachOverLiteralArrayDesugarsToIndexedLoop(t *testing.T) {
	out := compile(t, `
		foreach (v in [1, 2, 3]) {
			print(v);
		}
	`)

	require.Len(t, out.Functions, 1)
	main := out.Functions[0]

	var sawALoad, sawCompare bool
	for _, in := range main.Instrs {
		if in.Op == OpALoad {
			sawALoad = true
		}
		if in.Op == OpBinary && in.BinOp == "<" {
			sawCompare = true
		}
	}
	assert.True(t, sawALoad)
	assert.True(t, sawCompare)
}

// TestDiagnosticOnlySkipsGeneration mirrors Scenario S6: for source with
// semantic errors the checker reports error diagnostics without
// crashing, so AnyErrors() -- the gate the CLI checks before calling
// Generate -- is true.
func TestDiagnosticOnlySkipsGeneration(t *testing.T) {
	prog, err := syntax.Parse(`
		function f(): integer {
			let x: integer = "not a number";
			return true;
		}
	`)
	require.NoError(t, err)

	result := checker.Check(prog)
	assert.True(t, result.Bag.AnyErrors())
	assert.NotEmpty(t, result.Bag.All())
}
