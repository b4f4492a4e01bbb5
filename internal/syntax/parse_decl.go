package syntax

import (
	"compiscript/internal/ast"
)

// parseTypeAnnot parses `integer`, `Counter`, `integer[]`, `integer[][]`, ...
func (p *Parser) parseTypeAnnot() (ast.TypeAnnot, error) {
	name, err := p.expect(TokIdent, "type name")
	if err != nil {
		return ast.TypeAnnot{}, err
	}
	ann := ast.TypeAnnot{Name: name.Text}
	for p.is(TokLBracket) {
		if _, err := p.expect(TokLBracket, "["); err != nil {
			return ast.TypeAnnot{}, err
		}
		if _, err := p.expect(TokRBracket, "]"); err != nil {
			return ast.TypeAnnot{}, err
		}
		ann.ArrayDepth++
	}
	return ann, nil
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(TokLParen, "("); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.is(TokRParen) {
		if len(params) > 0 {
			if _, err := p.expect(TokComma, ","); err != nil {
				return nil, err
			}
		}
		name, err := p.expect(TokIdent, "parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokColon, ":"); err != nil {
			return nil, err
		}
		ann, err := p.parseTypeAnnot()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Base: ast.Base{P: name.Pos}, Name: name.Text, Ann: ann})
	}
	if _, err := p.expect(TokRParen, ")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFuncDecl() (*ast.FuncDecl, error) {
	kw, err := p.expect(TokFunction, "function")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdent, "function name")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	var retAnn *ast.TypeAnnot
	if _, ok, err := p.accept(TokColon); err != nil {
		return nil, err
	} else if ok {
		ann, err := p.parseTypeAnnot()
		if err != nil {
			return nil, err
		}
		retAnn = &ann
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}},
		Name:     name.Text,
		Params:   params,
		RetAnn:   retAnn,
		Body:     body,
	}, nil
}

func (p *Parser) parseClassDecl() (*ast.ClassDecl, error) {
	kw, err := p.expect(TokClass, "class")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdent, "class name")
	if err != nil {
		return nil, err
	}

	parent := ""
	if _, ok, err := p.accept(TokColon); err != nil {
		return nil, err
	} else if ok {
		parentName, err := p.expect(TokIdent, "parent class name")
		if err != nil {
			return nil, err
		}
		parent = parentName.Text
	}

	if _, err := p.expect(TokLBrace, "{"); err != nil {
		return nil, err
	}

	cd := &ast.ClassDecl{
		StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}},
		Name:     name.Text,
		Parent:   parent,
	}

	for !p.is(TokRBrace) {
		if p.is(TokLet) || p.is(TokConst) {
			fd, err := p.parseFieldDecl()
			if err != nil {
				return nil, err
			}
			cd.Fields = append(cd.Fields, fd)
		} else if p.is(TokFunction) || p.is(TokConstructor) {
			md, err := p.parseMethodDecl()
			if err != nil {
				return nil, err
			}
			cd.Methods = append(cd.Methods, md)
		} else {
			return nil, p.fail("expected field or method declaration in class body, got %q", p.tok.Text)
		}
	}

	if _, err := p.expect(TokRBrace, "}"); err != nil {
		return nil, err
	}

	return cd, nil
}

func (p *Parser) parseFieldDecl() (*ast.FieldDecl, error) {
	kw := p.tok
	if _, ok, err := p.accept(TokLet); err != nil {
		return nil, err
	} else if !ok {
		if _, err := p.expect(TokConst, "let or const"); err != nil {
			return nil, err
		}
	}
	name, err := p.expect(TokIdent, "field name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokColon, ":"); err != nil {
		return nil, err
	}
	ann, err := p.parseTypeAnnot()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemi, ";"); err != nil {
		return nil, err
	}
	return &ast.FieldDecl{StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}}, Name: name.Text, Ann: ann}, nil
}

func (p *Parser) parseMethodDecl() (*ast.MethodDecl, error) {
	if p.is(TokConstructor) {
		kw, err := p.expect(TokConstructor, "constructor")
		if err != nil {
			return nil, err
		}
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		fn := &ast.FuncDecl{
			StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}},
			Name:     "constructor",
			Params:   params,
			Body:     body,
		}
		return &ast.MethodDecl{StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}}, Fn: fn}, nil
	}

	fn, err := p.parseFuncDecl()
	if err != nil {
		return nil, err
	}
	return &ast.MethodDecl{StmtBase: ast.StmtBase{Base: fn.Base}, Fn: fn}, nil
}
