package ast

// LiteralKind tags the lexical form of a Literal node.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitString
	LitNull
)

// Literal is a literal value, typed by its lexical form (spec.md §4.3).
type Literal struct {
	ExprBase
	Kind LiteralKind
	Text string // raw lexeme, e.g. "42", "3.14", "true", `"hola"`
}

// Identifier is a bare name reference, resolved by the checker via
// symbol table lookup.
type Identifier struct {
	ExprBase
	Name string
}

// This is the implicit receiver reference, legal only inside a method.
type This struct {
	ExprBase
}

// Unary is `-x` or `!x`.
type Unary struct {
	ExprBase
	Op   string // "-" or "!"
	X    Expr
}

// Binary is any of the arithmetic, relational, equality, or logical
// binary operators.
type Binary struct {
	ExprBase
	Op   string
	L, R Expr
}

// Ternary is `c ? a : b`.
type Ternary struct {
	ExprBase
	Cond, Then, Else Expr
}

// Call is a function or method invocation. Callee is either an
// Identifier (free function call) or a Member (method call, where
// Member.X is the receiver expression).
type Call struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// Member is `e.f`, either a field access or (as the Callee of a Call) a
// method reference with an implicit receiver.
type Member struct {
	ExprBase
	X     Expr
	Field string
}

// Index is `a[i]`.
type Index struct {
	ExprBase
	X   Expr
	Idx Expr
}

// New is `new C(args...)`.
type New struct {
	ExprBase
	Class string
	Args  []Expr
}

// ArrayLit is `[e1, ..., eN]`.
type ArrayLit struct {
	ExprBase
	Elems []Expr
}

// Assign is `lvalue = E`. Target must be an Identifier, Member, or
// Index per spec.md's InvalidLValue rule.
type Assign struct {
	ExprBase
	Target Expr
	Value  Expr
}
