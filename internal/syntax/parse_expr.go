package syntax

import (
	"compiscript/internal/ast"
)

// Precedence, low to high: assign, ternary, ||, &&, equality,
// relational, additive, multiplicative, unary, postfix, primary.
// Assignment is right-associative and handled at the top since `=` is
// only legal as a full expression-statement's expression in
// Compiscript (spec.md's Assignment statement).

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssign()
}

func (p *Parser) parseAssign() (ast.Expr, error) {
	lhs, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if _, ok, err := p.accept(TokAssign); err != nil {
		return nil, err
	} else if ok {
		rhs, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{ExprBase: ast.ExprBase{Base: ast.Base{P: lhs.Pos()}}, Target: lhs, Value: rhs}, nil
	}
	return lhs, nil
}

func (p *Parser) parseTernary() (ast.Expr, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if _, ok, err := p.accept(TokQuestion); err != nil {
		return nil, err
	} else if ok {
		then, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokColon, ":"); err != nil {
			return nil, err
		}
		els, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &ast.Ternary{ExprBase: ast.ExprBase{Base: ast.Base{P: cond.Pos()}}, Cond: cond, Then: then, Else: els}, nil
	}
	return cond, nil
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	lhs, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.is(TokOr) {
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		rhs, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{ExprBase: ast.ExprBase{Base: ast.Base{P: lhs.Pos()}}, Op: "||", L: lhs, R: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	lhs, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.is(TokAnd) {
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		rhs, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{ExprBase: ast.ExprBase{Base: ast.Base{P: lhs.Pos()}}, Op: "&&", L: lhs, R: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	lhs, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.is(TokEq) || p.is(TokNeq) {
		op := "=="
		if p.is(TokNeq) {
			op = "!="
		}
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		rhs, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{ExprBase: ast.ExprBase{Base: ast.Base{P: lhs.Pos()}}, Op: op, L: lhs, R: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.is(TokLt) || p.is(TokLte) || p.is(TokGt) || p.is(TokGte) {
		op := map[Kind]string{TokLt: "<", TokLte: "<=", TokGt: ">", TokGte: ">="}[p.tok.Kind]
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{ExprBase: ast.ExprBase{Base: ast.Base{P: lhs.Pos()}}, Op: op, L: lhs, R: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.is(TokPlus) || p.is(TokMinus) {
		op := "+"
		if p.is(TokMinus) {
			op = "-"
		}
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{ExprBase: ast.ExprBase{Base: ast.Base{P: lhs.Pos()}}, Op: op, L: lhs, R: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.is(TokStar) || p.is(TokSlash) || p.is(TokPercent) {
		op := map[Kind]string{TokStar: "*", TokSlash: "/", TokPercent: "%"}[p.tok.Kind]
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{ExprBase: ast.ExprBase{Base: ast.Base{P: lhs.Pos()}}, Op: op, L: lhs, R: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.is(TokMinus) || p.is(TokNot) {
		op := "-"
		if p.is(TokNot) {
			op = "!"
		}
		start := p.tok.Pos
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{ExprBase: ast.ExprBase{Base: ast.Base{P: start}}, Op: op, X: x}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.tok.Kind {
		case TokDot:
			if _, err := p.advanceTok(); err != nil {
				return nil, err
			}
			field, err := p.expect(TokIdent, "field or method name")
			if err != nil {
				return nil, err
			}
			x = &ast.Member{ExprBase: ast.ExprBase{Base: ast.Base{P: x.Pos()}}, X: x, Field: field.Text}
		case TokLBracket:
			if _, err := p.advanceTok(); err != nil {
				return nil, err
			}
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokRBracket, "]"); err != nil {
				return nil, err
			}
			x = &ast.Index{ExprBase: ast.ExprBase{Base: ast.Base{P: x.Pos()}}, X: x, Idx: idx}
		case TokLParen:
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			x = &ast.Call{ExprBase: ast.ExprBase{Base: ast.Base{P: x.Pos()}}, Callee: x, Args: args}
		default:
			return x, nil
		}
	}
}

func (p *Parser) parseArgs() ([]ast.Expr, error) {
	if _, err := p.expect(TokLParen, "("); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.is(TokRParen) {
		if len(args) > 0 {
			if _, err := p.expect(TokComma, ","); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.expect(TokRParen, ")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.tok
	switch tok.Kind {
	case TokIntLit:
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		return &ast.Literal{ExprBase: ast.ExprBase{Base: ast.Base{P: tok.Pos}}, Kind: ast.LitInt, Text: tok.Text}, nil
	case TokFloatLit:
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		return &ast.Literal{ExprBase: ast.ExprBase{Base: ast.Base{P: tok.Pos}}, Kind: ast.LitFloat, Text: tok.Text}, nil
	case TokStringLit:
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		return &ast.Literal{ExprBase: ast.ExprBase{Base: ast.Base{P: tok.Pos}}, Kind: ast.LitString, Text: tok.Text}, nil
	case TokTrue, TokFalse:
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		return &ast.Literal{ExprBase: ast.ExprBase{Base: ast.Base{P: tok.Pos}}, Kind: ast.LitBool, Text: tok.Text}, nil
	case TokNull:
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		return &ast.Literal{ExprBase: ast.ExprBase{Base: ast.Base{P: tok.Pos}}, Kind: ast.LitNull, Text: "null"}, nil
	case TokThis:
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		return &ast.This{ExprBase: ast.ExprBase{Base: ast.Base{P: tok.Pos}}}, nil
	case TokIdent:
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		return &ast.Identifier{ExprBase: ast.ExprBase{Base: ast.Base{P: tok.Pos}}, Name: tok.Text}, nil
	case TokNew:
		return p.parseNew()
	case TokLBracket:
		return p.parseArrayLit()
	case TokLParen:
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen, ")"); err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, p.fail("unexpected token %q in expression", tok.Text)
	}
}

func (p *Parser) parseNew() (ast.Expr, error) {
	kw, err := p.expect(TokNew, "new")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdent, "class name")
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &ast.New{ExprBase: ast.ExprBase{Base: ast.Base{P: kw.Pos}}, Class: name.Text, Args: args}, nil
}

func (p *Parser) parseArrayLit() (ast.Expr, error) {
	open, err := p.expect(TokLBracket, "[")
	if err != nil {
		return nil, err
	}
	var elems []ast.Expr
	for !p.is(TokRBracket) {
		if len(elems) > 0 {
			if _, err := p.expect(TokComma, ","); err != nil {
				return nil, err
			}
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.expect(TokRBracket, "]"); err != nil {
		return nil, err
	}
	return &ast.ArrayLit{ExprBase: ast.ExprBase{Base: ast.Base{P: open.Pos}}, Elems: elems}, nil
}

// advanceTok is a convenience wrapper for unconditionally consuming the
// current token when its kind has already been checked by the caller.
func (p *Parser) advanceTok() (Token, error) {
	tok := p.tok
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}
