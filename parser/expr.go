package parser

import (
	"strconv"
	"strings"

	"github.com/redgush/flycatcher/ast"
	"github.com/redgush/flycatcher/source"
	"github.com/redgush/flycatcher/token"
)

// opcodeForToken maps a token kind to the Opcode it denotes as either a
// prefix, infix, or postfix operator. Not every token kind maps to an
// opcode (e.g. keywords, literals).
func opcodeForToken(k token.Kind) (ast.Opcode, bool) {
	switch k {
	case token.Period:
		return ast.OpDot, true
	case token.LBracket:
		return ast.OpSubscript, true
	case token.LParen:
		return ast.OpCall, true
	case token.Exclamation:
		return ast.OpNot, true
	case token.Asterisk:
		return ast.OpMul, true
	case token.Slash:
		return ast.OpDiv, true
	case token.Percent:
		return ast.OpMod, true
	case token.Plus:
		return ast.OpAdd, true
	case token.Minus:
		return ast.OpSub, true
	case token.ShiftRight:
		return ast.OpShr, true
	case token.ShiftLeft:
		return ast.OpShl, true
	case token.Gt:
		return ast.OpGt, true
	case token.Lt:
		return ast.OpLt, true
	case token.GtEq:
		return ast.OpGtEq, true
	case token.LtEq:
		return ast.OpLtEq, true
	case token.EqEq:
		return ast.OpEq, true
	case token.NotEq:
		return ast.OpNotEq, true
	case token.Ampersand:
		return ast.OpBitAnd, true
	case token.Caret:
		return ast.OpBitXor, true
	case token.Pipe:
		return ast.OpBitOr, true
	case token.AndAnd:
		return ast.OpAndAnd, true
	case token.OrOr:
		return ast.OpOrOr, true
	case token.Colon:
		return ast.OpColon, true
	case token.Equals:
		return ast.OpAssign, true
	default:
		return ast.OpInvalid, false
	}
}

// parseExpr is the Pratt loop: parse a primary or prefix expression, then
// repeatedly fold in postfix and infix operators whose binding power is at
// least minBP.
func (p *Parser) parseExpr(minBP uint8) (ast.Meta, bool) {
	lhs, ok := p.parsePrimaryOrPrefix(minBP)
	if !ok {
		return ast.Meta{}, false
	}

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		op, isOp := opcodeForToken(tok.Kind)
		if !isOp {
			break
		}

		if bp, ok := ast.PostfixBindingPower(op); ok && bp >= minBP {
			p.next()
			lhs, ok = p.buildPostfix(op, tok, lhs)
			if !ok {
				return lhs, false
			}
			continue
		}

		if left, right, ok := ast.InfixBindingPower(op); ok && left >= minBP {
			opTok := tok
			p.next()

			rhs, ok := p.parseExpr(right)
			if !ok {
				at := p.eofSpan()
				if t2, ok2 := p.peek(); ok2 {
					at = t2.Span
				}
				p.errorDiag(ErrMissingOperand{Operator: opTok, At: at})
				return lhs, false
			}

			span := source.Join(lhs.Span, rhs.Span)
			lhs = ast.Meta{Span: span, Item: ast.Binary{Op: op, Left: lhs, Right: rhs}}
			continue
		}

		break
	}

	return lhs, true
}

// buildPostfix finishes parsing a postfix operator whose opening token has
// already been consumed.
func (p *Parser) buildPostfix(op ast.Opcode, opTok token.Token, lhs ast.Meta) (ast.Meta, bool) {
	switch op {
	case ast.OpSubscript:
		if close, ok := p.peek(); ok && close.Kind == token.RBracket {
			p.next()
			return ast.Meta{Span: source.Join(lhs.Span, close.Span), Item: ast.Subscript{Target: lhs}}, true
		}

		inner, ok := p.parseExpr(0)
		if !ok {
			p.errorDiag(ErrUnclosedSubscript{Open: opTok, At: p.currentOrEOF()})
			return lhs, false
		}

		close, ok := p.expect(token.RBracket)
		if !ok {
			p.errorDiag(ErrUnclosedSubscript{Open: opTok, At: p.currentOrEOF()})
			return lhs, false
		}

		return ast.Meta{Span: source.Join(lhs.Span, close.Span), Item: ast.Subscript{Target: lhs, Inner: &inner}}, true

	case ast.OpCall:
		args, close, ok := p.parseDelimitedList(opTok, token.RParen, "`)`")
		if !ok {
			return lhs, false
		}
		return ast.Meta{Span: source.Join(lhs.Span, close.Span), Item: ast.Call{Target: lhs, Args: args}}, true

	default:
		return lhs, false
	}
}

// currentOrEOF returns the span of the next token if one exists, else a
// zero-width span at end of file.
func (p *Parser) currentOrEOF() source.Span {
	if tok, ok := p.peek(); ok {
		return tok.Span
	}
	return p.eofSpan()
}

// expect consumes the next token if it has kind k, returning ok=false
// (without consuming) otherwise.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind != k {
		return token.Token{}, false
	}
	p.next()
	return tok, true
}

// parseDelimitedList parses a comma-separated, optionally trailing-comma
// list terminated by close, used for call arguments, array literals, and
// parameter lists. open anchors the "list opened here" diagnostic label.
func (p *Parser) parseDelimitedList(open token.Token, close token.Kind, closeText string) ([]ast.Meta, token.Token, bool) {
	var items []ast.Meta

	if tok, ok := p.peek(); ok && tok.Kind == close {
		p.next()
		return items, tok, true
	}

	for {
		item, ok := p.parseExpr(0)
		if !ok {
			p.errorDiag(ErrUnclosedList{Open: open, Close: closeText, At: p.currentOrEOF()})
			return items, token.Token{}, false
		}
		items = append(items, item)

		tok, ok := p.peek()
		if !ok {
			p.errorDiag(ErrUnclosedList{Open: open, Close: closeText, At: p.eofSpan()})
			return items, token.Token{}, false
		}

		switch {
		case tok.Kind == token.Comma:
			p.next()
			if t2, ok2 := p.peek(); ok2 && t2.Kind == close {
				p.next()
				return items, t2, true
			}
		case tok.Kind == close:
			p.next()
			return items, tok, true
		default:
			p.errorDiag(ErrUnclosedList{Open: open, Close: closeText, At: tok.Span})
			return items, token.Token{}, false
		}
	}
}

func prefixOpcode(k token.Kind) (ast.Opcode, bool) {
	op, ok := opcodeForToken(k)
	if !ok {
		return ast.OpInvalid, false
	}
	if _, isPrefix := ast.PrefixBindingPower(op); !isPrefix {
		return ast.OpInvalid, false
	}
	return op, true
}

// parsePrimaryOrPrefix parses a prefix-operator expression or a primary
// value: identifier, boolean, number, string, array literal, parenthesized
// expression, or an if/while used as a value.
func (p *Parser) parsePrimaryOrPrefix(minBP uint8) (ast.Meta, bool) {
	tok, ok := p.peek()
	if !ok {
		p.errorDiag(ErrUnexpectedEOF{At: p.eofSpan(), What: "an expression"})
		return ast.Meta{}, false
	}

	if op, isPrefix := prefixOpcode(tok.Kind); isPrefix {
		bp, _ := ast.PrefixBindingPower(op)
		p.next()
		operand, ok := p.parseExpr(bp)
		if !ok {
			p.errorDiag(ErrMissingOperand{Operator: tok, At: p.currentOrEOF()})
			return ast.Meta{}, false
		}
		return ast.Meta{Span: source.Join(tok.Span, operand.Span), Item: ast.Unary{Op: op, Operand: operand}}, true
	}

	switch tok.Kind {
	case token.Identifier:
		p.next()
		return ast.Meta{Span: tok.Span, Item: ast.Identifier{Name: tok.Text()}}, true

	case token.KwTrue, token.KwFalse:
		p.next()
		return ast.Meta{Span: tok.Span, Item: ast.Boolean{Value: tok.Kind == token.KwTrue}}, true

	case token.Number:
		p.next()
		return p.buildNumberLiteral(tok)

	case token.String:
		p.next()
		return ast.Meta{Span: tok.Span, Item: ast.String{Value: tok.Text()}}, true

	case token.InvalidString:
		p.next()
		p.errorDiag(ErrUnclosedString{Token: tok})
		return ast.Meta{}, false

	case token.LBracket:
		p.next()
		elems, _, ok := p.parseDelimitedList(tok, token.RBracket, "`]`")
		if !ok {
			return ast.Meta{}, false
		}
		last := tok.Span
		if n := len(elems); n > 0 {
			last = elems[n-1].Span
		}
		return ast.Meta{Span: source.Join(tok.Span, last), Item: ast.Array{Elements: elems}}, true

	case token.LParen:
		p.next()
		inner, ok := p.parseExpr(0)
		if !ok {
			return ast.Meta{}, false
		}
		close, ok := p.expect(token.RParen)
		if !ok {
			p.errorDiag(ErrUnexpectedToken{Token: p.peekOrZero(), Want: "`)`"})
			return inner, false
		}
		inner.Span = source.Join(tok.Span, close.Span)
		inner.Parenthesized = true
		return inner, true

	case token.KwIf:
		return p.parseIfStatement()

	case token.KwWhile:
		return p.parseWhileStatement()

	case token.Invalid:
		p.next()
		p.errorDiag(ErrInvalidCharacter{Token: tok})
		return ast.Meta{}, false

	default:
		p.next()
		p.errorDiag(ErrValueExpected{Token: tok})
		return ast.Meta{}, false
	}
}

func (p *Parser) peekOrZero() token.Token {
	tok, _ := p.peek()
	return tok
}

// buildNumberLiteral converts a Number token's text into an Integer or
// Float node per spec's "integer iff it contains none of '.', 'e', 'E'"
// rule, emitting E0007 if an integer-shaped literal overflows u64.
func (p *Parser) buildNumberLiteral(tok token.Token) (ast.Meta, bool) {
	text := tok.Text()
	if !strings.ContainsAny(text, ".eE") {
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			p.errorDiag(ErrIntegerTooLarge{Token: tok})
			return ast.Meta{}, false
		}
		return ast.Meta{Span: tok.Span, Item: ast.Integer{Value: v}}, true
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// lexNumber's grammar produces only well-formed float shapes, so
		// this fails only for a literal outside float64's range (e.g.
		// "1e400").
		p.errorDiag(ErrUnexpectedToken{Token: tok, Want: "a valid number"})
		return ast.Meta{}, false
	}
	return ast.Meta{Span: tok.Span, Item: ast.Float{Value: f}}, true
}
