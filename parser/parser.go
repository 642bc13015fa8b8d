// Package parser implements a hand-written Pratt parser for expressions
// plus recursive-descent parsing of statements and blocks, producing an
// ast.Meta tree from a token.Lexer.
package parser

import (
	"github.com/redgush/flycatcher/ast"
	"github.com/redgush/flycatcher/report"
	"github.com/redgush/flycatcher/source"
	"github.com/redgush/flycatcher/token"
)

// Parser consumes a Lexer and reports diagnostics through a *report.Report
// passed in at construction, never through module-level state.
type Parser struct {
	lexer      *token.Lexer
	report     *report.Report
	successful bool
}

// New returns a Parser over file's tokens, reporting through r.
func New(file *source.File, r *report.Report) *Parser {
	return &Parser{
		lexer:      token.NewLexer(file),
		report:     r,
		successful: true,
	}
}

// Successful reports whether parsing so far has avoided any diagnostic of
// severity Error or worse.
func (p *Parser) Successful() bool { return p.successful }

func (p *Parser) fail() { p.successful = false }

func (p *Parser) errorDiag(err report.Diagnose) { p.report.ErrorDiag(err); p.fail() }

// peek returns the next token without consuming it, and whether one exists.
func (p *Parser) peek() (token.Token, bool) { return p.lexer.Peek() }

// next consumes and returns the next token.
func (p *Parser) next() (token.Token, bool) { return p.lexer.Next() }

// eofSpan returns a zero-width span just past the end of the source, used
// to anchor "unexpected end of file" diagnostics.
func (p *Parser) eofSpan() source.Span {
	file := p.lexer.File()
	end := len(file.Text())
	return source.Span{File: file, Start: end, End: end}
}

// takeDocs drains any doc comments buffered since the last call.
func (p *Parser) takeDocs() []string { return p.lexer.TakeDocs() }

// Parse parses the whole file as a sequence of top-level statements,
// exactly like the body of a Block, but without requiring braces.
func (p *Parser) Parse() []ast.Meta {
	var out []ast.Meta
	for {
		if _, ok := p.peek(); !ok {
			break
		}
		stmt, ok := p.parseStatement()
		if ok {
			out = append(out, stmt)
		}
	}
	return out
}

// parseStatement parses one expression/statement, consuming a trailing
// `;` if present and recording it on the node's Semicolon flag. A
// standalone `;` is an empty statement and is skipped (returns ok=false
// without emitting a diagnostic).
func (p *Parser) parseStatement() (ast.Meta, bool) {
	tok, ok := p.peek()
	if !ok {
		return ast.Meta{}, false
	}

	if tok.Kind == token.Semicolon {
		p.next()
		return ast.Meta{}, false
	}

	if tok.Kind == token.DocComment {
		// Lexer already buffers doc comments out of the token stream; a
		// bare DocComment token kind reaching here would mean one was
		// produced somewhere an item can't follow it. Not reachable via
		// the public Lexer API today, kept defensively.
		p.next()
		p.errorDiag(ErrDocCommentForbidden{At: tok.Span})
		return ast.Meta{}, false
	}

	docs := p.takeDocs()

	var m ast.Meta
	switch tok.Kind {
	case token.KwIf:
		m, ok = p.parseIfStatement()
	case token.KwWhile:
		m, ok = p.parseWhileStatement()
	case token.KwDeclare:
		m, ok = p.parseDeclare()
	case token.KwPub:
		m, ok = p.parsePubPriv(true)
	case token.KwPriv:
		m, ok = p.parsePubPriv(false)
	case token.ConstructIdentifier:
		m, ok = p.parseConstruct()
	case token.KwReturn:
		m, ok = p.parseReturn()
	case token.KwContinue:
		m, ok = p.parseContinue()
	case token.KwBreak:
		m, ok = p.parseBreak()
	case token.LCurly:
		m, ok = p.parseBlockExpr()
	default:
		m, ok = p.parseExpr(0)
	}
	if !ok {
		return ast.Meta{}, false
	}
	m.DocComments = docs

	if semi, ok := p.peek(); ok && semi.Kind == token.Semicolon {
		p.next()
		m.Semicolon = true
	}

	return m, true
}

// parseBlock parses `{ statement* }`. The opening `{` must already have
// been consumed by the caller; open is that token, used for the
// "block opened here" secondary label on an unclosed block.
func (p *Parser) parseBlock(open token.Token) ([]ast.Meta, bool) {
	var body []ast.Meta
	for {
		tok, ok := p.peek()
		if !ok {
			p.errorDiag(ErrUnclosedBlock{Open: open, At: p.eofSpan()})
			return body, false
		}
		if tok.Kind == token.RCurly {
			p.next()
			return body, true
		}
		stmt, ok := p.parseStatement()
		if ok {
			body = append(body, stmt)
		}
	}
}

