// Package ast defines the Compiscript parse tree: the node kinds
// spec.md §6 enumerates, as tagged struct variants rather than a
// dynamic-dispatch class hierarchy, per the design note in spec.md §9
// ("Implement via tagged variants and exhaustive matching rather than
// dynamic dispatch on node classes").
//
// Grounded on the reference compiler's ast package (ASTNode/ASTBase,
// the Expr interface with Type()/SetType()/Category, and its Block/
// IfTree/statement node shapes).
package ast

import (
	"compiscript/internal/report"
	"compiscript/internal/types"
)

// Node is the parent interface for every tree node.
type Node interface {
	Pos() report.Position
}

// Base carries the source position shared by every node.
type Base struct {
	P report.Position
}

func (b Base) Pos() report.Position { return b.P }

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// StmtBase gives a statement its Base and the stmtNode marker.
type StmtBase struct{ Base }

func (StmtBase) stmtNode() {}

// Expr is the parent interface for expression nodes. Type/SetType are
// populated by the checker during the body pass and read back by the
// TAC generator, mirroring the reference's ExprBase.
type Expr interface {
	Node
	exprNode()
	Type() types.Type
	SetType(types.Type)
}

// ExprBase gives an expression its Base, the exprNode marker, and its
// checked type.
type ExprBase struct {
	Base
	Typ types.Type
}

func (ExprBase) exprNode()                {}
func (e *ExprBase) Type() types.Type      { return e.Typ }
func (e *ExprBase) SetType(t types.Type)  { e.Typ = t }

// Program is the root of a parsed source file: an ordered list of
// top-level declarations and statements.
type Program struct {
	Base
	Decls []Node
}
