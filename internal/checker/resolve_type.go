package checker

import (
	"compiscript/internal/ast"
	"compiscript/internal/report"
	"compiscript/internal/types"
)

// resolveType converts a parsed type annotation into a checked types.Type,
// reporting UnknownSymbol for an unresolvable class name. Array depth is
// applied outermost-last: `integer[][]` resolves to Array(Array(Int)).
func (c *Checker) resolveType(ann ast.TypeAnnot, pos report.Position) types.Type {
	var base types.Type
	switch ann.Name {
	case "integer":
		base = types.TInt
	case "float":
		base = types.TFloat
	case "boolean":
		base = types.TBool
	case "string":
		base = types.TString
	case "void":
		base = types.TVoid
	case "null":
		base = types.TNull
	default:
		if cls, ok := c.lookupClassType(ann.Name); ok {
			base = cls
		} else {
			c.bag.Error(pos, report.UnknownSymbol, "unknown type `%s`", ann.Name)
			base = types.TVoid
		}
	}

	for i := 0; i < ann.ArrayDepth; i++ {
		base = types.Array{Elem: base}
	}
	return base
}
