// Package symbols implements the Compiscript symbol table: a lexically
// scoped stack of frames holding variable, parameter, function, class,
// and builtin symbols, plus the parallel loop and return-context
// stacks the checker consults for break/continue and return validation.
//
// Grounded on the reference compiler's walk.Walker scope stack
// (localScopes []map[string]*common.Symbol, pushScope/popScope, and
// reverse-order shadowing lookup) and its depm.Symbol record, factored
// into a standalone package because spec.md §4.2 specifies the symbol
// table as its own component with its own operation list.
package symbols

import (
	"compiscript/internal/report"
	"compiscript/internal/types"
)

// Kind enumerates the five symbol variants of spec.md §3.2.
type Kind int

const (
	KindVariable Kind = iota
	KindParameter
	KindFunction
	KindClass
	KindBuiltin
)

// Symbol is the tagged union of all five symbol variants. Only the
// fields relevant to Kind are meaningful; this mirrors the reference's
// single depm.Symbol struct carrying a DefKind discriminator rather
// than five separate Go types, which keeps scope maps homogeneous.
type Symbol struct {
	ID   uint64
	Name string
	Kind Kind
	Pos  report.Position
	Type types.Type

	// Variable / Parameter
	IsConst     bool
	Initialized bool
	SlotIndex   int // Parameter only

	// Function
	Params         []*Symbol // Parameter symbols, in order
	Return         types.Type
	EnclosingClass string // "" if a free function
	IsConstructor  bool

	// Class
	Parent     string
	OwnFields  []types.Field
	OwnMethods map[string]*Symbol // name -> Function symbol
}

// AsClassType returns the nominal Class type this symbol represents;
// only meaningful when Kind == KindClass.
//
// Rebuilt from OwnFields/OwnMethods on every call rather than cached:
// AsClassType is reachable mid-declaration-pass (a type annotation
// naming a class triggers it via resolveType before that class's own
// declareClassMembers has run), and a one-shot cache would freeze in
// whatever was populated at that earlier, incomplete point. The maps
// involved are small enough that rebuilding is not worth the staleness
// risk.
func (s *Symbol) AsClassType() *types.Class {
	methods := make(map[string]types.FuncSig, len(s.OwnMethods))
	for name, m := range s.OwnMethods {
		params := make([]types.Type, len(m.Params))
		for i, p := range m.Params {
			params[i] = p.Type
		}
		methods[name] = types.FuncSig{Params: params, Return: m.Return}
	}
	return &types.Class{
		Name:    s.Name,
		Parent:  s.Parent,
		Fields:  s.OwnFields,
		Methods: methods,
	}
}

// FuncSig returns the callable signature of a Function symbol.
func (s *Symbol) FuncSig() types.FuncSig {
	params := make([]types.Type, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Type
	}
	return types.FuncSig{Params: params, Return: s.Return}
}
