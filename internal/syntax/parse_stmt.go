package syntax

import (
	"compiscript/internal/ast"
)

func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(TokLBrace, "{")
	if err != nil {
		return nil, err
	}
	blk := &ast.Block{StmtBase: ast.StmtBase{Base: ast.Base{P: open.Pos}}}
	for !p.is(TokRBrace) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, stmt)
	}
	if _, err := p.expect(TokRBrace, "}"); err != nil {
		return nil, err
	}
	return blk, nil
}

func (p *Parser) parseStmt() (ast.Node, error) {
	switch p.tok.Kind {
	case TokLet, TokConst:
		return p.parseVarDecl()
	case TokIf:
		return p.parseIf()
	case TokWhile:
		return p.parseWhile()
	case TokDo:
		return p.parseDoWhile()
	case TokFor, TokForeach:
		return p.parseForOrForeach()
	case TokSwitch:
		return p.parseSwitch()
	case TokBreak:
		kw, err := p.expect(TokBreak, "break")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokSemi, ";"); err != nil {
			return nil, err
		}
		return &ast.Break{StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}}}, nil
	case TokContinue:
		kw, err := p.expect(TokContinue, "continue")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokSemi, ";"); err != nil {
			return nil, err
		}
		return &ast.Continue{StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}}}, nil
	case TokReturn:
		return p.parseReturn()
	case TokPrint:
		return p.parsePrint()
	case TokLBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	isConst := p.is(TokConst)
	kw := p.tok
	if isConst {
		if _, err := p.expect(TokConst, "const"); err != nil {
			return nil, err
		}
	} else {
		if _, err := p.expect(TokLet, "let"); err != nil {
			return nil, err
		}
	}

	name, err := p.expect(TokIdent, "variable name")
	if err != nil {
		return nil, err
	}

	var ann *ast.TypeAnnot
	if _, ok, err := p.accept(TokColon); err != nil {
		return nil, err
	} else if ok {
		a, err := p.parseTypeAnnot()
		if err != nil {
			return nil, err
		}
		ann = &a
	}

	var init ast.Expr
	if _, ok, err := p.accept(TokAssign); err != nil {
		return nil, err
	} else if ok {
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokSemi, ";"); err != nil {
		return nil, err
	}

	return &ast.VarDecl{
		StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}},
		Name:     name.Text,
		Ann:      ann,
		Init:     init,
		IsConst:  isConst,
	}, nil
}

func (p *Parser) parseIf() (*ast.If, error) {
	kw, err := p.expect(TokIf, "if")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen, ")"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	node := &ast.If{StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}}, Cond: cond, Then: then}

	if _, ok, err := p.accept(TokElse); err != nil {
		return nil, err
	} else if ok {
		if p.is(TokIf) {
			inner, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			node.Else = &ast.Block{Stmts: []ast.Node{inner}}
		} else {
			elseBlk, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			node.Else = elseBlk
		}
	}

	return node, nil
}

func (p *Parser) parseWhile() (*ast.While, error) {
	kw, err := p.expect(TokWhile, "while")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseDoWhile() (*ast.DoWhile, error) {
	kw, err := p.expect(TokDo, "do")
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokWhile, "while"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen, ")"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemi, ";"); err != nil {
		return nil, err
	}
	return &ast.DoWhile{StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}}, Body: body, Cond: cond}, nil
}

// parseForOrForeach parses `foreach (x in a)`, and after `for` tells
// `for (x in a)` apart from a classic C-style `for (init; cond; step)`
// by lookahead past the identifier. After `foreach` only the `x in a`
// form is accepted.
func (p *Parser) parseForOrForeach() (ast.Node, error) {
	isForeach := p.is(TokForeach)
	kw, err := p.advanceTok()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen, "("); err != nil {
		return nil, err
	}

	if p.is(TokIdent) {
		save := p.save()
		name, _ := p.expect(TokIdent, "identifier")
		if p.is(TokIn) {
			if _, err := p.expect(TokIn, "in"); err != nil {
				return nil, err
			}
			iterable, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokRParen, ")"); err != nil {
				return nil, err
			}
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			return &ast.Foreach{
				StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}},
				Var:      name.Text,
				Iterable: iterable,
				Body:     body,
			}, nil
		}
		p.restore(save)
	}
	if isForeach {
		return nil, p.fail("expected `name in array` after foreach, got %q", p.tok.Text)
	}

	forNode := &ast.For{StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}}}

	if !p.is(TokSemi) {
		if p.is(TokLet) || p.is(TokConst) {
			init, err := p.parseVarDecl()
			if err != nil {
				return nil, err
			}
			forNode.Init = init
		} else {
			x, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokSemi, ";"); err != nil {
				return nil, err
			}
			forNode.Init = &ast.ExprStmt{StmtBase: ast.StmtBase{Base: ast.Base{P: x.Pos()}}, X: x}
		}
	} else {
		if _, err := p.expect(TokSemi, ";"); err != nil {
			return nil, err
		}
	}

	if !p.is(TokSemi) {
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		forNode.Cond = cond
	}
	if _, err := p.expect(TokSemi, ";"); err != nil {
		return nil, err
	}

	if !p.is(TokRParen) {
		step, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		forNode.Step = step
	}
	if _, err := p.expect(TokRParen, ")"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	forNode.Body = body
	return forNode, nil
}

func (p *Parser) parseSwitch() (*ast.Switch, error) {
	kw, err := p.expect(TokSwitch, "switch")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen, "("); err != nil {
		return nil, err
	}
	subject, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen, ")"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLBrace, "{"); err != nil {
		return nil, err
	}

	sw := &ast.Switch{StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}}, Subject: subject}

	for !p.is(TokRBrace) {
		if p.is(TokCase) {
			ckw, err := p.expect(TokCase, "case")
			if err != nil {
				return nil, err
			}
			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokColon, ":"); err != nil {
				return nil, err
			}
			var body []ast.Node
			for !p.is(TokCase) && !p.is(TokDefault) && !p.is(TokRBrace) {
				stmt, err := p.parseStmt()
				if err != nil {
					return nil, err
				}
				body = append(body, stmt)
			}
			sw.Cases = append(sw.Cases, ast.Case{Base: ast.Base{P: ckw.Pos}, Value: val, Body: body})
		} else if p.is(TokDefault) {
			dkw, err := p.expect(TokDefault, "default")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokColon, ":"); err != nil {
				return nil, err
			}
			var body []ast.Node
			for !p.is(TokCase) && !p.is(TokDefault) && !p.is(TokRBrace) {
				stmt, err := p.parseStmt()
				if err != nil {
					return nil, err
				}
				body = append(body, stmt)
			}
			sw.Cases = append(sw.Cases, ast.Case{Base: ast.Base{P: dkw.Pos}, IsDefault: true, Body: body})
		} else {
			return nil, p.fail("expected case or default in switch body, got %q", p.tok.Text)
		}
	}

	if _, err := p.expect(TokRBrace, "}"); err != nil {
		return nil, err
	}

	return sw, nil
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	kw, err := p.expect(TokReturn, "return")
	if err != nil {
		return nil, err
	}
	var val ast.Expr
	if !p.is(TokSemi) {
		val, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokSemi, ";"); err != nil {
		return nil, err
	}
	return &ast.Return{StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}}, Value: val}, nil
}

func (p *Parser) parsePrint() (*ast.Print, error) {
	kw, err := p.expect(TokPrint, "print")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen, "("); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen, ")"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemi, ";"); err != nil {
		return nil, err
	}
	return &ast.Print{StmtBase: ast.StmtBase{Base: ast.Base{P: kw.Pos}}, Value: val}, nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemi, ";"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{StmtBase: ast.StmtBase{Base: ast.Base{P: x.Pos()}}, X: x}, nil
}
