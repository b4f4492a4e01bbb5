package checker

import (
	"compiscript/internal/ast"
	"compiscript/internal/report"
	"compiscript/internal/symbols"
	"compiscript/internal/types"
)

// declarePass hoists every function and class in decls (spec.md §4.3:
// "so that mutual recursion and forward references resolve"). It runs
// in two sub-passes over classes: first every class name is declared
// bare so parent references and type annotations can resolve forward,
// then each class's fields and method signatures are filled in.
func (c *Checker) declarePass(decls []ast.Node) {
	var classDecls []*ast.ClassDecl

	for _, d := range decls {
		if cd, ok := d.(*ast.ClassDecl); ok {
			sym := &symbols.Symbol{Name: cd.Name, Kind: symbols.KindClass, Pos: cd.Pos(), Parent: cd.Parent, OwnMethods: map[string]*symbols.Symbol{}}
			if !c.table.Declare(sym) {
				symbols.DuplicateSymbolError(c.bag, cd.Pos(), cd.Name)
				continue
			}
			classDecls = append(classDecls, cd)
		}
	}

	for _, d := range decls {
		if fd, ok := d.(*ast.FuncDecl); ok {
			c.declareFunc(fd, "")
		}
	}

	for _, cd := range classDecls {
		c.declareClassMembers(cd)
	}

	for _, cd := range classDecls {
		c.checkClassAcyclic(cd)
	}
}

func (c *Checker) declareFunc(fd *ast.FuncDecl, enclosingClass string) *symbols.Symbol {
	params := make([]*symbols.Symbol, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = &symbols.Symbol{
			Name:      p.Name,
			Kind:      symbols.KindParameter,
			Pos:       p.Pos(),
			Type:      c.resolveType(p.Ann, p.Pos()),
			SlotIndex: i,
		}
	}

	ret := types.Type(types.TVoid)
	if fd.RetAnn != nil {
		ret = c.resolveType(*fd.RetAnn, fd.Pos())
	}

	sym := &symbols.Symbol{
		Name:           fd.Name,
		Kind:           symbols.KindFunction,
		Pos:            fd.Pos(),
		Params:         params,
		Return:         ret,
		EnclosingClass: enclosingClass,
		IsConstructor:  fd.Name == "constructor",
	}
	sym.Type = sym.FuncSig()

	if !c.table.Declare(sym) {
		symbols.DuplicateSymbolError(c.bag, fd.Pos(), fd.Name)
	}
	return sym
}

func (c *Checker) declareClassMembers(cd *ast.ClassDecl) {
	clsSym, _ := c.table.LookupClass(cd.Name)

	c.table.PushClass(clsSym)
	defer c.table.Pop()

	for _, f := range cd.Fields {
		typ := c.resolveType(f.Ann, f.Pos())
		clsSym.OwnFields = append(clsSym.OwnFields, types.Field{Name: f.Name, Type: typ})
		for _, existing := range clsSym.OwnFields[:len(clsSym.OwnFields)-1] {
			if existing.Name == f.Name {
				c.bag.Error(f.Pos(), report.DuplicateSymbol, "field `%s` already declared in class `%s`", f.Name, cd.Name)
				break
			}
		}
	}

	for _, m := range cd.Methods {
		if _, exists := clsSym.OwnMethods[m.Fn.Name]; exists {
			c.bag.Error(m.Pos(), report.DuplicateSymbol, "method `%s` already declared in class `%s`", m.Fn.Name, cd.Name)
			continue
		}
		msym := c.declareMethodSig(m.Fn, cd.Name)
		clsSym.OwnMethods[m.Fn.Name] = msym
	}
}

// resolveConstructor finds the effective constructor for a class,
// walking the parent chain per spec.md §4.3 ("must define a
// `constructor` method or inherit one").
func (c *Checker) resolveConstructor(className string) (*symbols.Symbol, bool) {
	name := className
	for name != "" {
		sym, ok := c.table.LookupClass(name)
		if !ok {
			return nil, false
		}
		if ctor, ok := sym.OwnMethods["constructor"]; ok {
			return ctor, true
		}
		name = sym.Parent
	}
	return nil, false
}

// declareMethodSig registers a method's signature without checking its
// body -- bodies are checked in the body pass, after every class is
// fully known (spec.md §4.3).
func (c *Checker) declareMethodSig(fd *ast.FuncDecl, enclosingClass string) *symbols.Symbol {
	params := make([]*symbols.Symbol, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = &symbols.Symbol{
			Name:      p.Name,
			Kind:      symbols.KindParameter,
			Pos:       p.Pos(),
			Type:      c.resolveType(p.Ann, p.Pos()),
			SlotIndex: i,
		}
	}
	ret := types.Type(types.TVoid)
	if fd.RetAnn != nil {
		ret = c.resolveType(*fd.RetAnn, fd.Pos())
	}
	return &symbols.Symbol{
		Name:           fd.Name,
		Kind:           symbols.KindFunction,
		Pos:            fd.Pos(),
		Params:         params,
		Return:         ret,
		EnclosingClass: enclosingClass,
		IsConstructor:  fd.Name == "constructor",
	}
}

// checkClassAcyclic verifies the parent chain terminates, per spec.md
// invariant 3. A cycle or an unresolvable parent name is reported once
// at the class that declares it.
func (c *Checker) checkClassAcyclic(cd *ast.ClassDecl) {
	if cd.Parent == "" {
		return
	}
	seen := map[string]bool{cd.Name: true}
	name := cd.Parent
	for name != "" {
		if seen[name] {
			c.bag.Error(cd.Pos(), report.UnknownSymbol, "class `%s` has a cyclic inheritance chain", cd.Name)
			return
		}
		seen[name] = true

		sym, ok := c.table.LookupClass(name)
		if !ok {
			c.bag.Error(cd.Pos(), report.UnknownSymbol, "unknown parent class `%s`", name)
			return
		}
		name = sym.Parent
	}
}
