package types

import "fmt"

// classChain walks from a named class up through its parents, calling
// visit on each until visit returns true or the chain is exhausted.
// lookup resolves a class name to its declaration; it is supplied by
// the caller (the checker owns the class registry) so this package
// stays free of any dependency on the symbol table.
func classChain(name string, lookup func(string) (*Class, bool), visit func(*Class) bool) bool {
	seen := map[string]bool{}
	for name != "" {
		if seen[name] {
			// Acyclic per spec invariant; defensively stop rather than loop.
			return false
		}
		seen[name] = true

		c, ok := lookup(name)
		if !ok {
			return false
		}
		if visit(c) {
			return true
		}
		name = c.Parent
	}
	return false
}

// Extends reports whether class `a` transitively extends class `b`
// (including a == b).
func Extends(a, b string, lookup func(string) (*Class, bool)) bool {
	if a == b {
		return true
	}
	return classChain(a, lookup, func(c *Class) bool {
		return c.Name == b
	})
}

// Assignable implements spec §3.1's assignable predicate.
func Assignable(from, to Type, lookup func(string) (*Class, bool)) bool {
	if Equals(from, to) {
		return true
	}

	if fp, ok := from.(Primitive); ok && fp.K == Int {
		if tp, ok := to.(Primitive); ok && tp.K == Float {
			return true
		}
	}

	if fp, ok := from.(Primitive); ok && fp.K == Null && IsReference(to) {
		return true
	}

	if fc, ok := from.(*Class); ok {
		if tc, ok := to.(*Class); ok {
			return Extends(fc.Name, tc.Name, lookup)
		}
	}

	// An empty array literal has no element to infer a type from and
	// checkArrayLit falls back to Array{Elem: TNull} as a sentinel; it
	// should be assignable to any concretely-elemented array type, the
	// same way a bare `null` is assignable to any reference type.
	if fa, ok := from.(Array); ok {
		if _, ok := to.(Array); ok {
			if fp, ok := fa.Elem.(Primitive); ok && fp.K == Null {
				return true
			}
		}
	}

	return false
}

// PromoteBinary implements spec §3.1's promote_binary. op distinguishes
// `+` (which admits String on either side) from the other arithmetic
// operators. It returns the common operand type both sides should be
// treated as and the result type of the operation, or an error
// describing why no promotion applies.
func PromoteBinary(a, b Type, op string) (common, result Type, err error) {
	ap, aok := a.(Primitive)
	bp, bok := b.(Primitive)

	if op == "+" {
		if aok && ap.K == String || bok && bp.K == String {
			return TString, TString, nil
		}
	}

	if !aok || !bok || !Numeric(a) || !Numeric(b) {
		return nil, nil, fmt.Errorf("operands of %q must be numeric, got %s and %s", op, a.Repr(), b.Repr())
	}

	if ap.K == Float || bp.K == Float {
		return TFloat, TFloat, nil
	}
	return TInt, TInt, nil
}

// UnifyRelational implements spec §4.1's unify_relational: both sides
// must be comparable_ordered and mutually compatible under promotion.
func UnifyRelational(a, b Type) (Type, error) {
	if !ComparableOrdered(a) || !ComparableOrdered(b) {
		return nil, fmt.Errorf("operands must be comparable, got %s and %s", a.Repr(), b.Repr())
	}

	ap := a.(Primitive)
	bp := b.(Primitive)
	if ap.K == String || bp.K == String {
		if ap.K != String || bp.K != String {
			return nil, fmt.Errorf("cannot compare %s with %s", a.Repr(), b.Repr())
		}
		return TBool, nil
	}

	// both numeric, promotion always succeeds
	return TBool, nil
}

// Join computes the result type of a ternary's two branches: they must
// be mutually assignable, and the join is whichever side the other is
// assignable to (widening toward Float when both are numeric).
//
// This resolves an implementation detail spec.md leaves implicit --
// see SPEC_FULL.md's [TYPE SYSTEM] section for the reasoning.
func Join(a, b Type, lookup func(string) (*Class, bool)) (Type, error) {
	if Equals(a, b) {
		return a, nil
	}

	if Numeric(a) && Numeric(b) {
		_, result, err := PromoteBinary(a, b, "+")
		return result, err
	}

	if Assignable(a, b, lookup) {
		return b, nil
	}
	if Assignable(b, a, lookup) {
		return a, nil
	}

	return nil, fmt.Errorf("branches of incompatible type: %s and %s", a.Repr(), b.Repr())
}

// MemberLookup walks the parent chain of a class type looking for a
// field or method named `name`, returning the first match's type.
func MemberLookup(c *Class, name string, lookup func(string) (*Class, bool)) (Type, bool) {
	var found Type
	ok := classChain(c.Name, lookup, func(cur *Class) bool {
		for _, f := range cur.Fields {
			if f.Name == name {
				found = f.Type
				return true
			}
		}
		if m, ok := cur.Methods[name]; ok {
			found = m
			return true
		}
		return false
	})
	return found, ok
}
