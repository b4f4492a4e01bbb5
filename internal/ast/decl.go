package ast

// TypeAnnot is a parsed type annotation, before resolution to a
// types.Type by the checker: a base name (`integer`, `Counter`, ...)
// with an array depth (`integer[][]` has ArrayDepth 2).
type TypeAnnot struct {
	Name       string
	ArrayDepth int
}

// Param is a single function/method parameter declaration.
type Param struct {
	Base
	Name string
	Ann  TypeAnnot
}

// VarDecl is `let name: T = E;` (ConstDecl reuses this node with
// IsConst set -- spec.md's grammar treats let/const identically save
// for the mutability and mandatory-initializer rules).
type VarDecl struct {
	StmtBase
	Name    string
	Ann     *TypeAnnot // nil if the type is to be inferred from Init
	Init    Expr        // nil if absent (only legal when !IsConst)
	IsConst bool
}

// FuncDecl is a top-level or class-method function declaration.
type FuncDecl struct {
	StmtBase
	Name    string
	Params  []Param
	RetAnn  *TypeAnnot // nil means Void
	Body    *Block
}

// FieldDecl is a class field declaration (`let v: integer;`).
type FieldDecl struct {
	StmtBase
	Name string
	Ann  TypeAnnot
}

// MethodDecl is a class method declaration, including `constructor`.
type MethodDecl struct {
	StmtBase
	Fn *FuncDecl
}

// ClassDecl is a class declaration with an optional parent name.
type ClassDecl struct {
	StmtBase
	Name    string
	Parent  string // "" if none
	Fields  []*FieldDecl
	Methods []*MethodDecl
}
