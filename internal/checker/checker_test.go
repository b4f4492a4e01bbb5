package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compiscript/internal/report"
	"compiscript/internal/syntax"
)

func check(t *testing.T, src string) Result {
	t.Helper()
	prog, err := syntax.Parse(src)
	require.NoError(t, err)
	return Check(prog)
}

func codes(diags []report.Diagnostic) []report.Code {
	out := make([]report.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestCleanProgramHasNoDiagnostics(t *testing.T) {
	r := check(t, `
		function add(a: integer, b: integer): integer {
			return a + b;
		}
	`)
	assert.Empty(t, r.Bag.All())
}

func TestUnknownSymbol(t *testing.T) {
	r := check(t, `print(doesNotExist);`)
	assert.Contains(t, codes(r.Bag.All()), report.UnknownSymbol)
}

func TestDuplicateSymbolInSameScope(t *testing.T) {
	r := check(t, `
		let x: integer = 1;
		let x: integer = 2;
	`)
	assert.Contains(t, codes(r.Bag.All()), report.DuplicateSymbol)
}

func TestAssignToConst(t *testing.T) {
	r := check(t, `
		const x: integer = 1;
		x = 2;
	`)
	assert.Contains(t, codes(r.Bag.All()), report.AssignToConst)
}

func TestArityMismatch(t *testing.T) {
	r := check(t, `
		function f(a: integer): void {}
		f(1, 2);
	`)
	assert.Contains(t, codes(r.Bag.All()), report.ArityMismatch)
}

func TestMissingReturn(t *testing.T) {
	r := check(t, `
		function f(): integer {
			let x: integer = 1;
		}
	`)
	assert.Contains(t, codes(r.Bag.All()), report.MissingReturn)
}

func TestMissingReturnNotRaisedWhenIfElseBothReturn(t *testing.T) {
	r := check(t, `
		function f(n: integer): integer {
			if (n > 0) {
				return 1;
			} else {
				return 0;
			}
		}
	`)
	assert.NotContains(t, codes(r.Bag.All()), report.MissingReturn)
}

func TestDeadCodeAfterReturn(t *testing.T) {
	r := check(t, `
		function f(): integer {
			return 1;
			print(1);
		}
	`)
	assert.Contains(t, codes(r.Bag.All()), report.DeadCode)
	for _, d := range r.Bag.All() {
		if d.Code == report.DeadCode {
			assert.Equal(t, report.SeverityWarning, d.Severity)
		}
	}
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	r := check(t, `break;`)
	assert.Contains(t, codes(r.Bag.All()), report.UnboundBreakContinue)
}

func TestContinueSkipsSwitchToFindEnclosingLoop(t *testing.T) {
	r := check(t, `
		for (let i: integer = 0; i < 10; i = i + 1) {
			switch (i) {
				case 1:
					continue;
				default:
					break;
			}
		}
	`)
	assert.NotContains(t, codes(r.Bag.All()), report.UnboundBreakContinue)
}

func TestFallthroughCaseIsError(t *testing.T) {
	r := check(t, `
		switch (1) {
			case 1:
				print(1);
			case 2:
				print(2);
				break;
			default:
				break;
		}
	`)
	var found bool
	for _, d := range r.Bag.All() {
		if d.Code == report.FallthroughCase {
			found = true
			assert.Equal(t, report.SeverityError, d.Severity)
		}
	}
	assert.True(t, found)
}

func TestSwitchMustReturnRequiresDefaultAndAllCasesReturning(t *testing.T) {
	r := check(t, `
		function f(n: integer): integer {
			switch (n) {
				case 1:
					return 1;
				default:
					return 0;
			}
		}
	`)
	assert.NotContains(t, codes(r.Bag.All()), report.MissingReturn)
}

func TestNotBooleanConditionOnIf(t *testing.T) {
	r := check(t, `
		if (1) {
			print(1);
		}
	`)
	assert.Contains(t, codes(r.Bag.All()), report.NotBoolean)
}

func TestForeachRequiresArray(t *testing.T) {
	r := check(t, `
		let x: integer = 1;
		foreach (v in x) {
			print(v);
		}
	`)
	assert.Contains(t, codes(r.Bag.All()), report.TypeMismatch)
}

func TestShadowingAcrossScopesIsPermitted(t *testing.T) {
	r := check(t, `
		let x: integer = 1;
		{
			let x: string = "hi";
			print(x);
		}
		print(x);
	`)
	assert.NotContains(t, codes(r.Bag.All()), report.DuplicateSymbol)
}

func TestUnknownMemberOnClass(t *testing.T) {
	r := check(t, `
		class Point {
			let x: integer;
		}
		let p: Point = new Point();
		print(p.y);
	`)
	assert.Contains(t, codes(r.Bag.All()), report.UnknownMember)
}

// TestClassTypedFieldDeclaredBeforeItsOwnClass exercises a field whose
// annotation names a class declared later in the same program: the
// annotation resolves A's field type before B's own member declaration
// has run, which must not leave B's resolved class type stuck empty.
func TestClassTypedFieldDeclaredBeforeItsOwnClass(t *testing.T) {
	r := check(t, `
		class A {
			let b: B;
		}
		class B {
			let n: integer;
		}
		let a: A = new A();
		print(a.b.n);
	`)
	assert.NotContains(t, codes(r.Bag.All()), report.UnknownMember)
}

// TestSelfTypedFieldResolvesMembers covers a field whose type is its own
// enclosing class, resolved while that very class is still mid-declaration.
func TestSelfTypedFieldResolvesMembers(t *testing.T) {
	r := check(t, `
		class Node {
			let next: Node;
			let v: integer;
		}
		let n: Node = new Node();
		print(n.next.v);
	`)
	assert.NotContains(t, codes(r.Bag.All()), report.UnknownMember)
}

// TestSelfReturningMethodResolvesMembers covers a method whose return
// type names its own enclosing class.
func TestSelfReturningMethodResolvesMembers(t *testing.T) {
	r := check(t, `
		class Box {
			let v: integer;

			function self(): Box {
				return this;
			}
		}
		let b: Box = new Box();
		print(b.self().v);
	`)
	assert.NotContains(t, codes(r.Bag.All()), report.UnknownMember)
}
