package parser

import (
	"github.com/redgush/flycatcher/ast"
	"github.com/redgush/flycatcher/source"
	"github.com/redgush/flycatcher/token"
)

// parseIfStatement parses `if expr { block } (else if expr { block })* (else { block })?`.
// The caller has already peeked (not consumed) the `if` keyword.
func (p *Parser) parseIfStatement() (ast.Meta, bool) {
	kw, _ := p.next() // `if`

	expr, ok := p.parseCondition(kw)
	if !ok {
		return ast.Meta{}, false
	}

	open, ok := p.expect(token.LCurly)
	if !ok {
		p.errorDiag(ErrUnexpectedToken{Token: p.peekOrZero(), Want: "`{`"})
		return ast.Meta{}, false
	}
	block, ok := p.parseBlock(open)
	if !ok {
		return ast.Meta{}, false
	}

	end := blockEnd(open, block)
	var branches []ast.Meta

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != token.KwElse {
			break
		}
		p.next() // `else`

		nextTok, ok := p.peek()
		if !ok {
			p.errorDiag(ErrExpectedBlockOrIf{Else: tok, At: p.eofSpan()})
			return ast.Meta{}, false
		}

		switch nextTok.Kind {
		case token.KwIf:
			branchKw, _ := p.next() // `if`
			branchExpr, ok := p.parseCondition(branchKw)
			if !ok {
				return ast.Meta{}, false
			}
			branchOpen, ok := p.expect(token.LCurly)
			if !ok {
				p.errorDiag(ErrUnexpectedToken{Token: p.peekOrZero(), Want: "`{`"})
				return ast.Meta{}, false
			}
			branchBlock, ok := p.parseBlock(branchOpen)
			if !ok {
				return ast.Meta{}, false
			}
			branch := ast.Meta{Span: source.Join(branchKw.Span, blockEnd(branchOpen, branchBlock)), Item: ast.If{Expr: branchExpr, Block: branchBlock}}
			end = branch.Span
			branches = append(branches, branch)

		case token.LCurly:
			p.next()
			elseOpen := nextTok
			elseBlock, ok := p.parseBlock(elseOpen)
			if !ok {
				return ast.Meta{}, false
			}
			elseEnd := blockEnd(elseOpen, elseBlock)
			end = elseEnd
			branches = append(branches, ast.Meta{Span: elseEnd, Item: ast.Block{Body: elseBlock}})
			// A trailing `else {}` ends the chain.
			return ast.Meta{
				Span: source.Join(kw.Span, end),
				Item: ast.If{Expr: expr, Block: block, Branches: branches},
			}, true

		default:
			p.errorDiag(ErrExpectedBlockOrIf{Else: tok, At: nextTok.Span})
			return ast.Meta{}, false
		}
	}

	return ast.Meta{
		Span: source.Join(kw.Span, end),
		Item: ast.If{Expr: expr, Block: block, Branches: branches},
	}, true
}

// parseWhileStatement parses `while expr { block }`.
func (p *Parser) parseWhileStatement() (ast.Meta, bool) {
	kw, _ := p.next() // `while`

	expr, ok := p.parseCondition(kw)
	if !ok {
		return ast.Meta{}, false
	}

	open, ok := p.expect(token.LCurly)
	if !ok {
		p.errorDiag(ErrUnexpectedToken{Token: p.peekOrZero(), Want: "`{`"})
		return ast.Meta{}, false
	}
	block, ok := p.parseBlock(open)
	if !ok {
		return ast.Meta{}, false
	}

	return ast.Meta{
		Span: source.Join(kw.Span, blockEnd(open, block)),
		Item: ast.While{Expr: expr, Block: block},
	}, true
}

// parseCondition parses the condition expression after an `if`/`while`
// keyword, reporting E0010 if none is present.
func (p *Parser) parseCondition(kw token.Token) (ast.Meta, bool) {
	if tok, ok := p.peek(); !ok || tok.Kind == token.LCurly {
		p.errorDiag(ErrMissingCondition{Keyword: kw})
		return ast.Meta{}, false
	}
	return p.parseExpr(0)
}

// blockEnd returns the span of a block's last statement, or of its opening
// `{` when the block is empty; the closing `}` is not included.
func blockEnd(open token.Token, body []ast.Meta) source.Span {
	if len(body) == 0 {
		return open.Span
	}
	return body[len(body)-1].Span
}

// parseBlockExpr parses a standalone `{ ... }` used as a statement or
// expression primary (an explicit nested scope).
func (p *Parser) parseBlockExpr() (ast.Meta, bool) {
	open, _ := p.next()
	body, ok := p.parseBlock(open)
	if !ok {
		return ast.Meta{}, false
	}
	return ast.Meta{Span: source.Join(open.Span, blockEnd(open, body)), Item: ast.Block{Body: body}}, true
}

// parsePubPriv parses `pub <stmt>` / `priv <stmt>`.
func (p *Parser) parsePubPriv(pub bool) (ast.Meta, bool) {
	kw, _ := p.next()
	inner, ok := p.parseStatement()
	if !ok {
		p.errorDiag(ErrUnexpectedEOF{At: p.currentOrEOF(), What: "a declaration"})
		return ast.Meta{}, false
	}
	span := source.Join(kw.Span, inner.Span)
	if pub {
		return ast.Meta{Span: span, Item: ast.Pub{Inner: inner}}, true
	}
	return ast.Meta{Span: span, Item: ast.Priv{Inner: inner}}, true
}

// parseDeclare parses `declare name(arguments) returns?` — an external
// function signature with no body.
func (p *Parser) parseDeclare() (ast.Meta, bool) {
	kw, _ := p.next() // `declare`

	name, ok := p.expect(token.Identifier)
	if !ok {
		p.errorDiag(ErrUnexpectedToken{Token: p.peekOrZero(), Want: "a name"})
		return ast.Meta{}, false
	}

	open, ok := p.expect(token.LParen)
	if !ok {
		p.errorDiag(ErrUnexpectedToken{Token: p.peekOrZero(), Want: "`(`"})
		return ast.Meta{}, false
	}
	args, close, ok := p.parseDelimitedList(open, token.RParen, "`)`")
	if !ok {
		return ast.Meta{}, false
	}

	end := close.Span
	var returns *ast.Meta
	if tok, ok := p.peek(); ok && tok.Kind == token.Colon {
		p.next()
		ret, ok := p.parseTypeExpr()
		if !ok {
			return ast.Meta{}, false
		}
		end = ret.Span
		returns = &ret
	}

	return ast.Meta{
		Span: source.Join(kw.Span, end),
		Item: ast.Declare{Name: name.Text(), Arguments: args, Returns: returns},
	}, true
}

// parseConstruct parses the three `@Name ...` construct forms:
// FunctionConstruct, ClassConstruct, and VariableConstruct, disambiguated
// by what follows the construct+name pair.
func (p *Parser) parseConstruct() (ast.Meta, bool) {
	construct, _ := p.next() // @Name

	name, ok := p.expect(token.Identifier)
	if !ok {
		p.errorDiag(ErrUnexpectedToken{Token: p.peekOrZero(), Want: "a name"})
		return ast.Meta{}, false
	}

	tok, ok := p.peek()
	if !ok {
		p.errorDiag(ErrUnexpectedEOF{At: p.eofSpan(), What: "a construct body"})
		return ast.Meta{}, false
	}

	switch tok.Kind {
	case token.LParen:
		p.next()
		args, _, ok := p.parseDelimitedList(tok, token.RParen, "`)`")
		if !ok {
			return ast.Meta{}, false
		}
		var returns *ast.Meta
		if rt, ok := p.peek(); ok && rt.Kind == token.Colon {
			p.next()
			ret, ok := p.parseTypeExpr()
			if !ok {
				return ast.Meta{}, false
			}
			returns = &ret
		}
		open, ok := p.expect(token.LCurly)
		if !ok {
			p.errorDiag(ErrUnexpectedToken{Token: p.peekOrZero(), Want: "`{`"})
			return ast.Meta{}, false
		}
		block, ok := p.parseBlock(open)
		if !ok {
			return ast.Meta{}, false
		}
		return ast.Meta{
			Span: source.Join(construct.Span, blockEnd(open, block)),
			Item: ast.FunctionConstruct{
				Construct: construct.Text(), Name: name.Text(),
				Returns: returns, Arguments: args, Block: block,
			},
		}, true

	case token.LCurly:
		p.next()
		block, ok := p.parseBlock(tok)
		if !ok {
			return ast.Meta{}, false
		}
		return ast.Meta{
			Span: source.Join(construct.Span, blockEnd(tok, block)),
			Item: ast.ClassConstruct{Construct: construct.Text(), Name: name.Text(), Block: block},
		}, true

	case token.Equals:
		p.next()
		value, ok := p.parseExpr(0)
		if !ok {
			p.errorDiag(ErrMissingOperand{Operator: tok, At: p.currentOrEOF()})
			return ast.Meta{}, false
		}
		return ast.Meta{
			Span: source.Join(construct.Span, value.Span),
			Item: ast.VariableConstruct{Construct: construct.Text(), Name: name.Text(), Value: value},
		}, true

	default:
		p.errorDiag(ErrUnexpectedToken{Token: tok, Want: "`(`, `{`, or `=`"})
		return ast.Meta{}, false
	}
}

// parseTypeExpr parses a type annotation using the restricted type-context
// precedence table (spec's second precedence table): only `.`, `+`, `:`
// are infix, and `[`/`<` are postfix (subscript and template argument
// list respectively).
func (p *Parser) parseTypeExpr() (ast.Meta, bool) {
	return p.parseTypeExprBP(0)
}

func (p *Parser) parseTypeExprBP(minBP uint8) (ast.Meta, bool) {
	tok, ok := p.peek()
	if !ok {
		p.errorDiag(ErrUnexpectedEOF{At: p.eofSpan(), What: "a type"})
		return ast.Meta{}, false
	}
	if tok.Kind != token.Identifier {
		p.errorDiag(ErrUnexpectedToken{Token: tok, Want: "a type name"})
		return ast.Meta{}, false
	}
	p.next()
	lhs := ast.Meta{Span: tok.Span, Item: ast.Identifier{Name: tok.Text()}}

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		op, isOp := opcodeForToken(tok.Kind)
		if !isOp {
			break
		}

		if bp, ok := ast.TypePostfixBindingPower(op); ok && bp >= minBP {
			if op == ast.OpLt {
				p.next()
				args, _, ok := p.parseTypeArgList(tok)
				if !ok {
					return lhs, false
				}
				last := tok.Span
				if n := len(args); n > 0 {
					last = args[n-1].Span
				}
				lhs = ast.Meta{Span: source.Join(lhs.Span, last), Item: ast.Template{Target: lhs, Args: args}}
				continue
			}
			if op == ast.OpSubscript {
				p.next()
				close, ok := p.expect(token.RBracket)
				if !ok {
					p.errorDiag(ErrUnclosedSubscript{Open: tok, At: p.currentOrEOF()})
					return lhs, false
				}
				lhs = ast.Meta{Span: source.Join(lhs.Span, close.Span), Item: ast.Subscript{Target: lhs}}
				continue
			}
		}

		if left, right, ok := ast.TypeInfixBindingPower(op); ok && left >= minBP {
			p.next()
			rhs, ok := p.parseTypeExprBP(right)
			if !ok {
				return lhs, false
			}
			lhs = ast.Meta{Span: source.Join(lhs.Span, rhs.Span), Item: ast.Binary{Op: op, Left: lhs, Right: rhs}}
			continue
		}

		break
	}

	return lhs, true
}

// parseTypeArgList parses `<T1, T2, ...>` for a template application.
func (p *Parser) parseTypeArgList(open token.Token) ([]ast.Meta, token.Token, bool) {
	var args []ast.Meta
	for {
		arg, ok := p.parseTypeExpr()
		if !ok {
			p.errorDiag(ErrUnclosedList{Open: open, Close: "`>`", At: p.currentOrEOF()})
			return args, token.Token{}, false
		}
		args = append(args, arg)

		tok, ok := p.peek()
		if !ok {
			p.errorDiag(ErrUnclosedList{Open: open, Close: "`>`", At: p.eofSpan()})
			return args, token.Token{}, false
		}
		if tok.Kind == token.Comma {
			p.next()
			continue
		}
		if tok.Kind == token.Gt {
			p.next()
			return args, tok, true
		}
		p.errorDiag(ErrUnclosedList{Open: open, Close: "`>`", At: tok.Span})
		return args, token.Token{}, false
	}
}

// parseJumpOperand parses the optional expression operand shared by
// return/continue/break: present unless the next token ends the
// statement (`;`, `}`, or EOF).
func (p *Parser) parseJumpOperand() (*ast.Meta, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind == token.Semicolon || tok.Kind == token.RCurly {
		return nil, true
	}
	val, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	return &val, true
}

func (p *Parser) parseReturn() (ast.Meta, bool) {
	kw, _ := p.next()
	val, ok := p.parseJumpOperand()
	if !ok {
		return ast.Meta{}, false
	}
	span := kw.Span
	if val != nil {
		span = source.Join(kw.Span, val.Span)
	}
	return ast.Meta{Span: span, Item: ast.Return{Value: val}}, true
}

func (p *Parser) parseContinue() (ast.Meta, bool) {
	kw, _ := p.next()
	val, ok := p.parseJumpOperand()
	if !ok {
		return ast.Meta{}, false
	}
	span := kw.Span
	if val != nil {
		span = source.Join(kw.Span, val.Span)
	}
	return ast.Meta{Span: span, Item: ast.Continue{Label: val}}, true
}

func (p *Parser) parseBreak() (ast.Meta, bool) {
	kw, _ := p.next()
	val, ok := p.parseJumpOperand()
	if !ok {
		return ast.Meta{}, false
	}
	span := kw.Span
	if val != nil {
		span = source.Join(kw.Span, val.Span)
	}
	return ast.Meta{Span: span, Item: ast.Break{Value: val}}, true
}
