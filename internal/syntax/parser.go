package syntax

import (
	"fmt"

	"compiscript/internal/ast"
	"compiscript/internal/report"
)

// Parser implements a recursive-descent parser producing an
// internal/ast.Program. Grounded on the reference compiler's syntax
// parser (single current-token lookahead, `next`/`has`/`want` style
// helpers), scaled to Compiscript's smaller grammar.
type Parser struct {
	lex *Lexer
	tok Token
}

// ParseError is returned on the first malformed construct encountered;
// the parser does not attempt error recovery (unlike the checker, which
// must collect every diagnostic -- parsing is an external collaborator
// per spec.md §1/§6, so a single fail-fast error is sufficient here).
type ParseError struct {
	Pos report.Position
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// NewParser creates a parser over src.
func NewParser(src string) (*Parser, error) {
	p := &Parser{lex: NewLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) fail(format string, args ...interface{}) error {
	return &ParseError{Pos: p.tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) is(k Kind) bool { return p.tok.Kind == k }

// parserState snapshots enough state to backtrack past speculative
// lookahead: the lexer's scan position plus the current token.
type parserState struct {
	lex lexState
	tok Token
}

func (p *Parser) save() parserState {
	return parserState{lex: p.lex.save(), tok: p.tok}
}

func (p *Parser) restore(s parserState) {
	p.lex.restore(s.lex)
	p.tok = s.tok
}

func (p *Parser) accept(k Kind) (Token, bool, error) {
	if p.tok.Kind != k {
		return Token{}, false, nil
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return Token{}, false, err
	}
	return tok, true, nil
}

func (p *Parser) expect(k Kind, what string) (Token, error) {
	tok, ok, err := p.accept(k)
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, p.fail("expected %s, got %q", what, p.tok.Text)
	}
	return tok, nil
}

// Parse parses an entire source file into a Program.
func Parse(src string) (*ast.Program, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.is(TokEOF) {
		decl, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, decl)
	}
	return prog, nil
}

func (p *Parser) parseTopLevel() (ast.Node, error) {
	switch p.tok.Kind {
	case TokFunction:
		return p.parseFuncDecl()
	case TokClass:
		return p.parseClassDecl()
	default:
		return p.parseStmt()
	}
}
